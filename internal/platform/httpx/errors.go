package httpx

import (
	"errors"
	"net/http"

	"github.com/castboard/castboard/internal/shared"
)

// RespondError maps domain errors to the failure envelope.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrMissingAuthHeader),
		errors.Is(err, shared.ErrMalformedAuthHeader),
		errors.Is(err, shared.ErrMalformedToken),
		errors.Is(err, shared.ErrTokenExpired),
		errors.Is(err, shared.ErrTokenUnreadable),
		errors.Is(err, shared.ErrClaimsInvalid):
		Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, shared.ErrPermissionsMissing),
		errors.Is(err, shared.ErrForbidden):
		Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, shared.ErrConflict):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, shared.ErrKeySetUnavailable):
		Error(w, http.StatusServiceUnavailable, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
