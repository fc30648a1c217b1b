package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/scriptor-api/internal/api/shared"
	"github.com/phrazzld/scriptor-api/internal/domain"
	"github.com/phrazzld/scriptor-api/internal/publish"
)

// MapErrorToStatusCode maps error kinds to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, publish.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		// Provider, transport, and unexpected failures.
		return http.StatusInternalServerError
	}
}

// ErrorMessage builds the client-facing message for err. Validation failures
// get the endpoint's fixed message; other failures carry their detail.
func ErrorMessage(err error, validationMessage string) string {
	switch {
	case err == nil:
		return internalErrorPrefix + "unknown error"
	case errors.Is(err, domain.ErrValidation):
		return validationMessage
	case errors.Is(err, publish.ErrNotConfigured):
		return MsgPublishUnavailable
	case errors.Is(err, domain.ErrTransport):
		return networkErrorPrefix + err.Error()
	default:
		return internalErrorPrefix + err.Error()
	}
}

// HandleAPIError writes the error response for err and logs it.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, validationMessage string) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), ErrorMessage(err, validationMessage), err)
}
