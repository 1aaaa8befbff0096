package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyContact       = errors.New("contact identifier is required")
	ErrEmptyCredential    = errors.New("credential is required")
	ErrContactTooLong     = errors.New("contact identifier is too long")
	ErrDisplayNameTooLong = errors.New("display name is too long")
	ErrCredentialTooLong  = errors.New("credential is too long")
	ErrUnknownLoginMode   = errors.New("unknown login mode hint")
)
