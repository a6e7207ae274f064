package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/mauv0809/tap-to-win/internal/apperr"
)

const maxBodyBytes = 1 << 20

// respondJSON writes v with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondError maps err to its status code and writes the detail body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger := loggerFromContext(r)
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "op", op, "kind", kind, "error", err)
	} else {
		logger.Warn("Request rejected", "op", op, "kind", kind, "error", err)
	}
	if kind != apperr.Invalid {
		s.Metrics.IncStoreError(op, kind.String())
	}
	respondJSON(w, status, errorResponse{Detail: apperr.Detail(err)})
}

// decodeJSON reads a single JSON document from the request body into v.
// Malformed documents are reported as *badRequestError, type mismatches as
// validation errors.
func decodeJSON(r *http.Request, op string, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return &badRequestError{msg: "Failed to read request body"}
	}
	if len(body) > maxBodyBytes {
		return &badRequestError{msg: "Request body too large"}
	}
	if !json.Valid(body) {
		return &badRequestError{msg: "Invalid JSON"}
	}
	if err := json.Unmarshal(body, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperr.InvalidError(op, fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type))
		}
		return apperr.InvalidError(op, err.Error())
	}
	return nil
}

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }
