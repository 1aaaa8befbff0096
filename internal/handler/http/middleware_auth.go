package http

import (
	"context"
	"net/http"

	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/internal/utils"
)

// withSession is an HTTP middleware that enforces session-based
// authentication.
//
// The session identifier is taken from the session cookie, or, for
// non-browser clients, from a bearer "Authorization" header. It is
// resolved via [service.GateService.ResolveSession] and on success the
// session identifier and the resolved caller contract are stored in the
// request context under [utils.SessionIDCtxKey] and
// [utils.SessionInfoCtxKey] before delegating to the next handler.
//
// Requests without a presentable session identifier, or whose session is
// unknown or expired, are rejected with HTTP 401 Unauthorized.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		sessionID, err := sessionIDFromRequest(r)
		if err != nil {
			log.Warn().Err(err).Msg("request without session identifier")
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		info, err := h.services.GateService.ResolveSession(ctx, sessionID)
		if err != nil {
			log.Warn().Err(err).Msg("session rejected")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx = context.WithValue(ctx, utils.SessionIDCtxKey, sessionID)
		ctx = context.WithValue(ctx, utils.SessionInfoCtxKey, info)
		ctx = context.WithValue(ctx, utils.AccountIDCtxKey, info.AccountID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionIDFromRequest extracts the session identifier from the session
// cookie, falling back to a bearer "Authorization" header.
func sessionIDFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoSessionPresented
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", ErrInvalidAuthorizationHeader
	}
	return token, nil
}
