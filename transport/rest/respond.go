package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"shopapi/pkg/domain/model"
	"shopapi/pkg/validate"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Error("failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		log.WithError(err).Error("failed to write HTTP response")
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Error: message})
}

// respondWithViolations aborts a request before any service call, listing
// every broken constraint.
func respondWithViolations(w http.ResponseWriter, op string, violations validate.Violations) {
	details := violations.Messages()
	log.WithFields(log.Fields{
		"transport": "http",
		"operation": op,
		"details":   details,
	}).Warn("request validation failed")

	respondWithJSON(w, http.StatusBadRequest, errorResponse{
		Error:   "Invalid request parameters",
		Details: details,
	})
}

// handleServiceError logs the failure and maps it by its error tag.
func handleServiceError(w http.ResponseWriter, op string, err error) {
	log.WithFields(log.Fields{
		"transport": "http",
		"operation": op,
	}).WithError(err).Error("request failed")

	if errors.Is(err, model.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
