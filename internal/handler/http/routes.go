package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// the single entry point, behind the per-address abuse guard
	router.Group(func(r chi.Router) {
		r.Use(h.withRateLimit)
		r.Post("/api/gate/login", h.login)
	})

	// routes requiring a live session
	router.Group(func(r chi.Router) {
		r.Use(h.withSession)
		r.Get("/api/session", h.session)
		r.Post("/api/gate/logout", h.logout)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
