package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// NewSessionID returns an unguessable session identifier: 32 random bytes
// hex encoded. crypto/rand failures are surfaced rather than degraded to a
// weaker source.
func NewSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// NewReservationCode returns a human-readable booking reference of the
// form CRD-YYYYMMDD-NNNN where NNNN is a random zero-padded number.
// Uniqueness is best-effort.
func NewReservationCode(date time.Time) (string, error) {
	suffix, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("error generating reservation code: %w", err)
	}
	return fmt.Sprintf("CRD-%s-%04d", date.Format("20060102"), suffix.Int64()), nil
}

// NewPartnerCode returns a generated affiliate code of the form
// PRT-<HANDLE>-<HEX4> for the given partner handle.
func NewPartnerCode(handle string) (string, error) {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating partner code: %w", err)
	}
	return fmt.Sprintf("PRT-%s-%s", strings.ToUpper(handle), strings.ToUpper(hex.EncodeToString(buf))), nil
}
