package http

import "errors"

// Sentinel errors used by the session middleware when locating the session
// identifier on a request. Callers can match against them with [errors.Is].
var (
	// ErrNoSessionPresented is returned when the request carries neither a
	// session cookie nor an "Authorization" header.
	ErrNoSessionPresented = errors.New("no session presented")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but not a well-formed bearer value.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
)
