// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jobboard/jobboard/internal/shared"
)

// RespondError maps service errors to HTTP responses using RFC7807. Client
// errors are logged at warn level, everything else at error level with the
// detail withheld from the response.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	status, title := classify(err)
	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Any("error", err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", attrs...)
		Problem(w, status, title, "internal server error")
		return
	}
	logger.Warn("request rejected", attrs...)
	Problem(w, status, title, shared.UserMessage(err, title))
}

// StatusFor returns the HTTP status RespondError would use for err.
func StatusFor(err error) int {
	status, _ := classify(err)
	return status
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest, "Validation Failed"
	case errors.Is(err, shared.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, shared.ErrConflict):
		return http.StatusBadRequest, "Conflict"
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound, "Not Found"
	default:
		return http.StatusInternalServerError, "Internal Error"
	}
}
