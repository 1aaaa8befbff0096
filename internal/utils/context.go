// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, random
// identifiers, HTTP response writing, and anti-forgery token generation
// and validation.
package utils

import (
	"context"

	"github.com/haneul-lab/cruise-companion/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AccountIDCtxKey is the key used to store the account identifier in the
// context. Used together with GetAccountIDFromContext for type-safe
// retrieval of the account ID from context.Context.
var AccountIDCtxKey = contextKey("accountID")

// SessionIDCtxKey is the key used to store the authenticated session
// identifier in the context.
var SessionIDCtxKey = contextKey("sessionID")

// GetAccountIDFromContext retrieves the account identifier from the context.
//
// Returns the account ID of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(int64)
	return accountID, ok
}

// GetSessionIDFromContext retrieves the session identifier from the context.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok
}

// SessionInfoCtxKey is the key under which the auth middleware stores the
// resolved caller contract.
var SessionInfoCtxKey = contextKey("sessionInfo")

// GetSessionInfoFromContext retrieves the resolved session information
// from the context.
func GetSessionInfoFromContext(ctx context.Context) (models.SessionInfo, bool) {
	info, ok := ctx.Value(SessionInfoCtxKey).(models.SessionInfo)
	return info, ok
}
