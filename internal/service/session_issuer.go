package service

import (
	"context"
	"fmt"
	"time"

	"github.com/haneul-lab/cruise-companion/internal/config"
	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/internal/store"
	"github.com/haneul-lab/cruise-companion/internal/utils"
	"github.com/haneul-lab/cruise-companion/models"
)

// sessionIssuer creates the session record and anti-forgery token once a
// lifecycle transition has succeeded. It is the only component that
// touches login_count and last_active_at, and it runs the idempotent
// reactivate-if-dormant hook on every issuance.
type sessionIssuer struct {
	sessions store.SessionRepository
	accounts store.AccountRepository
	cfg      config.Session
	clock    Clock
	logger   *logger.Logger
}

func newSessionIssuer(sessions store.SessionRepository, accounts store.AccountRepository, cfg config.Session, clock Clock, log *logger.Logger) *sessionIssuer {
	return &sessionIssuer{
		sessions: sessions,
		accounts: accounts,
		cfg:      cfg,
		clock:    clock,
		logger:   log,
	}
}

// Issue creates one session for the account: a fresh unguessable session
// id, a signed anti-forgery token on the same expiry horizon, and the
// account touch (login_count increment, last_active_at).
//
// A new session supersedes earlier ones for routing purposes only; old
// sessions stay valid until their own expiry.
func (s *sessionIssuer) Issue(ctx context.Context, account models.Account) (models.Session, error) {
	log := logger.FromContext(ctx)

	sessionID, err := utils.NewSessionID()
	if err != nil {
		log.Err(err).
			Int64("account_id", account.AccountID).
			Msg("session id generation failed")
		return models.Session{}, fmt.Errorf("session id generation failed: %w", err)
	}

	token, err := utils.GenerateAntiForgeryToken(s.cfg.TokenIssuer, account.AccountID, s.cfg.TTL, s.cfg.TokenSignKey)
	if err != nil {
		log.Err(err).
			Int64("account_id", account.AccountID).
			Msg("anti-forgery token generation failed")
		return models.Session{}, fmt.Errorf("anti-forgery token generation failed: %w", err)
	}

	now := s.clock.Now()
	session := models.Session{
		SessionID: sessionID,
		AccountID: account.AccountID,
		CSRFToken: token.SignedString,
		ExpiresAt: now.Add(s.cfg.TTL),
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if err := s.touch(ctx, account, now); err != nil {
		return models.Session{}, err
	}

	return session, nil
}

// touch records the successful entry on the account row and promotes a
// still-dormant account to active. Safe to call when the account is
// already active.
func (s *sessionIssuer) touch(ctx context.Context, account models.Account, now time.Time) error {
	update := models.AccountUpdate{
		AccountID:     account.AccountID,
		LastActiveAt:  &now,
		IncLoginCount: true,
	}

	if account.Status == models.StatusDormant {
		active := models.StatusActive
		update.Status = &active
		update.ClearTrial = true
		update.ClearLocked = true
	}

	if err := s.accounts.UpdateAccount(ctx, update); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return nil
}
