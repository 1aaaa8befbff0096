package workers

import (
	"context"
	"time"

	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/internal/store"
)

// sessionCleanupWorker periodically purges sessions past their expiry.
// Sessions are validated on every request anyway, so the sweep only keeps
// the table from growing without bound.
type sessionCleanupWorker struct {
	sessions store.SessionRepository
	interval time.Duration
	logger   *logger.Logger
}

func newSessionCleanupWorker(sessions store.SessionRepository, interval time.Duration, log *logger.Logger) *sessionCleanupWorker {
	return &sessionCleanupWorker{
		sessions: sessions,
		interval: interval,
		logger:   log,
	}
}

func (w *sessionCleanupWorker) Run() {
	w.logger.Info().
		Dur("interval", w.interval).
		Msg("session cleanup worker started")

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for range ticker.C {
			w.sweep(context.Background())
		}
	}()
}

func (w *sessionCleanupWorker) sweep(ctx context.Context) {
	deleted, err := w.sessions.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		w.logger.Err(err).Msg("expired session sweep failed")
		return
	}
	if deleted > 0 {
		w.logger.Info().
			Int64("deleted", deleted).
			Msg("expired sessions purged")
	}
}
