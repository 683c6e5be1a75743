package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sebuszqo/ExpenseTracker/internal/logger"
)

// RespondErrorFunc is the error writer the HTTP host injects into every handler.
type RespondErrorFunc func(w http.ResponseWriter, status int, message string, errors ...[]string)

// HTTPStatus translates a service error into the status code and client message
// the HTTP edge responds with. Unknown errors map to 500 with a generic message.
func HTTPStatus(err error) (int, string) {
	var validationErrors *ValidationErrors
	switch {
	case err == nil:
		return http.StatusOK, ""
	case IsNotFound(err):
		return http.StatusNotFound, capitalize(NotFoundSubject(err)) + " not found"
	case errors.As(err, &validationErrors):
		return http.StatusBadRequest, "Validation errors occurred"
	case IsValidationError(err):
		return http.StatusBadRequest, err.Error()
	case IsConstraintViolation(err):
		return http.StatusConflict, "Request conflicts with existing data"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// RespondServiceError writes err through respondError. It is the only place
// where errors become HTTP responses; only unexpected failures are logged.
func RespondServiceError(log *logger.Logger, respondError RespondErrorFunc, w http.ResponseWriter, err error, action string) {
	status, message := HTTPStatus(err)
	if status >= http.StatusInternalServerError && log != nil {
		log.Error("Request failed", "action", action, "error", err)
	}

	var validationErrors *ValidationErrors
	if errors.As(err, &validationErrors) {
		respondError(w, status, message, validationErrors.Messages())
		return
	}
	respondError(w, status, message)
}

func capitalize(s string) string {
	if s == "" {
		return "Resource"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
