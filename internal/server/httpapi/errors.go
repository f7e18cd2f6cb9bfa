package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/messagely/internal/common"
	"github.com/dmitrijs2005/messagely/internal/logging"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// statusFor maps a sentinel error to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthenticated), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError is the single place where failures become responses. Details of
// unexpected errors are logged and replaced with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger logging.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	ctx := r.Context()
	reqID := RequestIDFromContext(ctx)

	switch {
	case status == http.StatusInternalServerError:
		logger.Error(ctx, "request failed", "method", r.Method, "path", r.URL.Path, "request_id", reqID, "error", err)
		msg = "internal server error"
	case status == http.StatusServiceUnavailable:
		logger.Warn(ctx, "request timed out", "method", r.Method, "path", r.URL.Path, "request_id", reqID)
		msg = "request timed out"
	case errors.Is(err, common.ErrInvalidCredentials):
		msg = common.ErrInvalidCredentials.Error()
	case errors.Is(err, common.ErrInvalidToken):
		logger.Debug(ctx, "token rejected", "path", r.URL.Path, "request_id", reqID, "error", err)
		msg = common.ErrInvalidToken.Error()
	}

	writeErrorStatus(w, status, msg)
}

func writeErrorStatus(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Message: msg, Status: status}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
