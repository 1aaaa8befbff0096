package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/haneul-lab/cruise-companion/models"
)

// GenerateAntiForgeryToken creates a signed HMAC-SHA256 JWT bound to one
// account, suitable for use as the anti-forgery token handed out with a
// session.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the account ID encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty
// or zero.
func GenerateAntiForgeryToken(issuer string, accountID int64, tokenDuration time.Duration, signKey string) (models.AntiForgeryToken, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.AntiForgeryToken{}, errors.New("invalid params for generating anti-forgery token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(accountID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.AntiForgeryToken{}, fmt.Errorf("error occurred during signing anti-forgery token: %w", err)
	}

	return models.AntiForgeryToken{Token: token, SignedString: tokenString}, nil
}

// ValidateAntiForgeryToken validates the given token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided issuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence and conversion to int64 AccountID
//
// Returns the parsed token with the extracted AccountID, or an error if
// validation fails, claims are missing, or the subject cannot be parsed.
func ValidateAntiForgeryToken(tokenString, signKey, issuer string) (models.AntiForgeryToken, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AntiForgeryToken{}, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return models.AntiForgeryToken{}, fmt.Errorf("error occurred validating and parsing anti-forgery token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return models.AntiForgeryToken{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if subject == "" {
		return models.AntiForgeryToken{}, errors.New("empty subject error")
	}

	accountID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return models.AntiForgeryToken{}, fmt.Errorf("error occurred during converting subject to account id: %w", err)
	}

	return models.AntiForgeryToken{Token: token, AccountID: accountID}, nil
}

// ParseBearerToken extracts the token from a "<scheme> <token>"
// Authorization header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
