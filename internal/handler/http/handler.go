package http

import (
	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/internal/service"
)

// SessionCookieName is the cookie carrying the session identifier.
// The same value may alternatively be presented as a bearer token.
const SessionCookieName = "cc_session"

type Handler struct {
	services *service.Services
	limiter  *RateLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter *RateLimiter, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		limiter:  limiter,
		logger:   logger,
	}
}
