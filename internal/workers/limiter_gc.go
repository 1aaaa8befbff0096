package workers

import (
	"time"

	"github.com/haneul-lab/cruise-companion/internal/logger"
)

// limiterGCWorker periodically evicts stale fixed windows from the login
// rate limiter so one-off callers do not accumulate in memory.
type limiterGCWorker struct {
	limiter  LimiterCleaner
	interval time.Duration
	logger   *logger.Logger
}

func newLimiterGCWorker(limiter LimiterCleaner, interval time.Duration, log *logger.Logger) *limiterGCWorker {
	return &limiterGCWorker{
		limiter:  limiter,
		interval: interval,
		logger:   log,
	}
}

func (w *limiterGCWorker) Run() {
	w.logger.Info().
		Dur("interval", w.interval).
		Msg("rate limiter GC worker started")

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for range ticker.C {
			if removed := w.limiter.Cleanup(time.Now()); removed > 0 {
				w.logger.Debug().
					Int("removed", removed).
					Msg("stale rate limit windows evicted")
			}
		}
	}()
}
