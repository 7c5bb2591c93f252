// Package rpc adapts gRPC unary calls onto the service layer: validate the
// request, map it to a service call, map the result back into the wire shape.
package rpc

import (
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"shopapi/pkg/domain/model"
	"shopapi/pkg/validate"
)

// invalidArgument renders every collected violation into a single
// INVALID_ARGUMENT status, flattened "path: message" entries joined by commas.
func invalidArgument(op string, violations validate.Violations) error {
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = v.Path + ": " + v.Message
	}
	detail := "Invalid request parameters: " + strings.Join(parts, ", ")

	log.WithFields(log.Fields{
		"transport": "grpc",
		"operation": op,
		"details":   parts,
	}).Warn("request validation failed")

	return status.Error(codes.InvalidArgument, detail)
}

// serviceError logs and maps a service-layer failure by its error tag, never
// by message text.
func serviceError(op string, err error) error {
	log.WithFields(log.Fields{
		"transport": "grpc",
		"operation": op,
	}).WithError(err).Error("request failed")

	if errors.Is(err, model.ErrNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
