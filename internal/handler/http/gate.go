package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/internal/service"
	"github.com/haneul-lab/cruise-companion/internal/utils"
	"github.com/haneul-lab/cruise-companion/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeGateFailure(w, codeValidation, http.StatusBadRequest, 0)
		return
	}

	result, err := h.services.GateService.Login(ctx, request)
	if err != nil {
		code, status := gateErrorCode(err)
		log.Warn().
			Err(err).
			Str("error_code", code).
			Str("contact", request.Contact).
			Msg("gate rejected login")
		writeGateFailure(w, code, status, 0)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    result.Session.SessionID,
		Path:     "/",
		Expires:  result.Session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSON(w, models.LoginResponse{
		OK:                  true,
		NextRoute:           result.NextRoute,
		SessionToken:        result.Session.SessionID,
		AntiForgeryToken:    result.AntiForgeryToken,
		TrialRemainingHours: result.TrialRemainingHours,
	}, http.StatusOK)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	info, ok := utils.GetSessionInfoFromContext(r.Context())
	if !ok {
		log.Error().Msg("session info missing after auth middleware")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, info, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	sessionID, ok := utils.GetSessionIDFromContext(ctx)
	if !ok {
		log.Error().Msg("session id missing after auth middleware")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.GateService.Logout(ctx, sessionID); err != nil {
		if errors.Is(err, service.ErrAuthentication) || errors.Is(err, service.ErrValidation) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		log.Err(err).Msg("unexpected error occurred during logout")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// expire the cookie on the client too
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}
