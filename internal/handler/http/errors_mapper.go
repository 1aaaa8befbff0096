package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/haneul-lab/cruise-companion/internal/service"
	"github.com/haneul-lab/cruise-companion/internal/utils"
	"github.com/haneul-lab/cruise-companion/models"
)

// Machine-readable error codes returned in the login response envelope.
// Clients branch on these, never on the HTTP status alone.
const (
	codeValidation      = "validation_error"
	codeAuthentication  = "authentication_error"
	codeTrialExpired    = "trial_expired"
	codeAccountDisabled = "account_disabled"
	codeRoleMismatch    = "role_mismatch"
	codeRateLimited     = "rate_limited"
	codeStorage         = "storage_error"
	codeInternal        = "internal_error"
)

// gateErrorCode maps a service-layer rejection to its wire error code and
// HTTP status.
func gateErrorCode(err error) (string, int) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return codeValidation, http.StatusBadRequest
	case errors.Is(err, service.ErrAuthentication):
		return codeAuthentication, http.StatusUnauthorized
	case errors.Is(err, service.ErrTrialExpired):
		return codeTrialExpired, http.StatusForbidden
	case errors.Is(err, service.ErrAccountDisabled):
		return codeAccountDisabled, http.StatusForbidden
	case errors.Is(err, service.ErrRoleMismatch):
		return codeRoleMismatch, http.StatusForbidden
	case errors.Is(err, service.ErrStorage):
		return codeStorage, http.StatusServiceUnavailable
	default:
		return codeInternal, http.StatusInternalServerError
	}
}

// writeGateFailure writes the failure variant of the login envelope.
// retryAfterSeconds is included (and mirrored in the Retry-After header)
// only when positive.
func writeGateFailure(w http.ResponseWriter, code string, status, retryAfterSeconds int) {
	if retryAfterSeconds > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	}
	utils.WriteJSON(w, models.LoginResponse{
		OK:                false,
		ErrorCode:         code,
		RetryAfterSeconds: retryAfterSeconds,
	}, status)
}
