package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/models"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository] over the "sessions" table.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession persists a freshly issued session row.
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, createSession,
		session.SessionID, session.AccountID, session.CSRFToken, session.ExpiresAt)
	if err != nil {
		log.Err(err).
			Str("func", "*sessionRepository.CreateSession").
			Int64("account_id", session.AccountID).
			Msg("error creating session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindSessionByID retrieves one session by its identifier.
// Returns [ErrSessionNotFound] when no row matches.
func (r *sessionRepository) FindSessionByID(ctx context.Context, sessionID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := r.db.QueryRowContext(ctx, findSessionByID, sessionID)

	err := row.Scan(
		&session.SessionID,
		&session.AccountID,
		&session.CSRFToken,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).
			Str("func", "*sessionRepository.FindSessionByID").
			Msg("error finding session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

// DeleteSession removes one session by its identifier. Deleting an already
// absent session reports [ErrSessionNotFound].
func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteSession, sessionID)
	if err != nil {
		log.Err(err).
			Str("func", "*sessionRepository.DeleteSession").
			Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteExpiredSessions removes every session whose expiry lies before the
// given instant and returns the number of rows removed. Used by the
// session cleanup worker.
func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteExpiredSessions, now)
	if err != nil {
		log.Err(err).
			Str("func", "*sessionRepository.DeleteExpiredSessions").
			Msg("error deleting expired sessions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
