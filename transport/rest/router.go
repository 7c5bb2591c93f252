// Package rest adapts HTTP requests onto the service layer. Handlers bind
// path/query/body values, run the shared validators, call the service and
// serialize the result as camelCase JSON.
package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"shopapi/pkg/domain/model"
	"shopapi/pkg/domain/service"
)

func Router(users service.UserService, products service.ProductService) http.Handler {
	uh := &userHandler{users: users}
	ph := &productHandler{products: products}

	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	s := r.PathPrefix("/api/v1").Subrouter()

	s.HandleFunc("/users", uh.listUsers).Methods(http.MethodGet)
	s.HandleFunc("/users", uh.createUser).Methods(http.MethodPost)
	s.HandleFunc("/users/{id}", uh.getUser).Methods(http.MethodGet)
	s.HandleFunc("/users/{id}", uh.updateUser).Methods(http.MethodPut)
	s.HandleFunc("/users/{id}", uh.deleteUser).Methods(http.MethodDelete)

	s.HandleFunc("/products", ph.searchProducts).Methods(http.MethodGet)
	s.HandleFunc("/products", ph.createProduct).Methods(http.MethodPost)
	s.HandleFunc("/products/{id}", ph.getProduct).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondWithError(w, http.StatusNotFound, "Endpoint not found")
	})

	return logMiddleware(recoverMiddleware(r))
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(model.TimestampLayout),
	})
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}

func recoverMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithFields(log.Fields{
					"method": r.Method,
					"url":    r.URL,
					"panic":  rec,
				}).Error("recovered from panic in http handler")
				respondWithError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		h.ServeHTTP(w, r)
	})
}
