package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/haneul-lab/cruise-companion/models"
)

func validRequest() models.LoginRequest {
	return models.LoginRequest{
		DisplayName: "Minji",
		Contact:     "555-0100",
		Credential:  "1101",
	}
}

func TestLoginRequestValidator_Validate(t *testing.T) {
	v := NewLoginRequestValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*models.LoginRequest)
		wantErr error
	}{
		{
			name:   "valid request",
			mutate: func(*models.LoginRequest) {},
		},
		{
			name:   "empty display name is fine structurally",
			mutate: func(r *models.LoginRequest) { r.DisplayName = "" },
		},
		{
			name:    "empty contact",
			mutate:  func(r *models.LoginRequest) { r.Contact = "" },
			wantErr: ErrEmptyContact,
		},
		{
			name:    "empty credential",
			mutate:  func(r *models.LoginRequest) { r.Credential = "" },
			wantErr: ErrEmptyCredential,
		},
		{
			name:    "oversized contact",
			mutate:  func(r *models.LoginRequest) { r.Contact = strings.Repeat("5", 101) },
			wantErr: ErrContactTooLong,
		},
		{
			name:    "oversized display name",
			mutate:  func(r *models.LoginRequest) { r.DisplayName = strings.Repeat("a", 201) },
			wantErr: ErrDisplayNameTooLong,
		},
		{
			name:    "oversized credential",
			mutate:  func(r *models.LoginRequest) { r.Credential = strings.Repeat("x", 257) },
			wantErr: ErrCredentialTooLong,
		},
		{
			name:   "known mode hint",
			mutate: func(r *models.LoginRequest) { r.Mode = models.ModePartner },
		},
		{
			name:    "unknown mode hint",
			mutate:  func(r *models.LoginRequest) { r.Mode = "root" },
			wantErr: ErrUnknownLoginMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := validRequest()
			tt.mutate(&request)

			err := v.Validate(ctx, request)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err != tt.wantErr {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoginRequestValidator_Pointer(t *testing.T) {
	v := NewLoginRequestValidator()

	request := validRequest()
	if err := v.Validate(context.Background(), &request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var nilRequest *models.LoginRequest
	if err := v.Validate(context.Background(), nilRequest); err != ErrUnsupportedType {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestLoginRequestValidator_FieldScoping(t *testing.T) {
	v := NewLoginRequestValidator()
	ctx := context.Background()

	request := validRequest()
	request.Credential = ""

	// restricting to Contact skips the broken credential
	if err := v.Validate(ctx, request, "Contact"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := v.Validate(ctx, request, "Credential"); err != ErrEmptyCredential {
		t.Fatalf("expected ErrEmptyCredential, got %v", err)
	}

	if err := v.Validate(ctx, request, "Nope"); err != ErrUnknownField {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}

	if err := v.Validate(ctx, 42); err != ErrUnsupportedType {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}
