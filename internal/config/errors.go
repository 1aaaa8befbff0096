package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidSessionConfigs indicates invalid session settings
	// (for example, a missing token sign key).
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")

	// ErrInvalidGateConfigs indicates invalid entry-gate settings
	// (for example, empty or colliding sentinel values, or a non-positive
	// trial window).
	ErrInvalidGateConfigs = errors.New("invalid gate configuration")

	// ErrInvalidRateLimitConfigs indicates an invalid abuse-guard policy
	// (non-positive limit or window).
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")
)
