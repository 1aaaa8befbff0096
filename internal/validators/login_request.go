package validators

import (
	"context"

	"github.com/haneul-lab/cruise-companion/models"
)

// Field length ceilings. Generous by design; the point is to stop
// pathological payloads before they reach bcrypt or the database.
const (
	maxDisplayNameLength = 200
	maxContactLength     = 100
	maxCredentialLength  = 256
)

// loginRequestValidator checks the structural shape of a login request.
// Pathway-specific rules (which fields a sentinel requires) belong to the
// credential interpreter, not here.
type loginRequestValidator struct{}

// NewLoginRequestValidator returns a [Validator] accepting models.LoginRequest
// values or pointers to them.
func NewLoginRequestValidator() Validator {
	return &loginRequestValidator{}
}

func (v *loginRequestValidator) Validate(_ context.Context, value any, fields ...string) error {
	var request models.LoginRequest
	switch typed := value.(type) {
	case models.LoginRequest:
		request = typed
	case *models.LoginRequest:
		if typed == nil {
			return ErrUnsupportedType
		}
		request = *typed
	default:
		return ErrUnsupportedType
	}

	if len(fields) == 0 {
		fields = []string{"DisplayName", "Contact", "Credential", "Mode"}
	}

	for _, field := range fields {
		if err := v.validateField(request, field); err != nil {
			return err
		}
	}
	return nil
}

func (v *loginRequestValidator) validateField(request models.LoginRequest, field string) error {
	switch field {
	case "DisplayName":
		if len(request.DisplayName) > maxDisplayNameLength {
			return ErrDisplayNameTooLong
		}
	case "Contact":
		if request.Contact == "" {
			return ErrEmptyContact
		}
		if len(request.Contact) > maxContactLength {
			return ErrContactTooLong
		}
	case "Credential":
		if request.Credential == "" {
			return ErrEmptyCredential
		}
		if len(request.Credential) > maxCredentialLength {
			return ErrCredentialTooLong
		}
	case "Mode":
		switch request.Mode {
		case "", models.ModeCustomer, models.ModeStaff, models.ModePartner:
		default:
			return ErrUnknownLoginMode
		}
	default:
		return ErrUnknownField
	}
	return nil
}
