package service

import "errors"

// The closed error taxonomy of the entry gate. Every login failure maps to
// exactly one of these; the HTTP layer translates them into wire error
// codes. Matched with [errors.Is].
var (
	// ErrValidation is returned when a required field is missing for the
	// requested pathway (e.g. no display name with the trial credential).
	ErrValidation = errors.New("validation error")

	// ErrAuthentication is returned on any credential or identity
	// mismatch. The message is deliberately generic.
	ErrAuthentication = errors.New("authentication failed")

	// ErrTrialExpired is the special-cased authentication failure raised
	// when a trial account's 72-hour window has elapsed. Raising it also
	// locks the account; the rejection itself is a state change.
	ErrTrialExpired = errors.New("trial period expired")

	// ErrAccountDisabled is the fixed failure for the locked sentinel
	// credential. It is independent of identity and performs no lookup.
	ErrAccountDisabled = errors.New("account disabled")

	// ErrRoleMismatch is returned when the credentials are right but the
	// entry point is wrong (e.g. a staff account at the customer gate).
	ErrRoleMismatch = errors.New("wrong entry point for this account")

	// ErrStorage is returned when the persistence layer fails
	// transiently. Safe to retry once.
	ErrStorage = errors.New("storage unavailable, try again")
)
