package workers

import (
	"github.com/haneul-lab/cruise-companion/internal/config"
	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background maintenance workers: the expired
// session sweeper and the rate-limit window GC.
func NewWorkers(storages *store.Storages, limiter LimiterCleaner, cfg config.Workers, log *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newSessionCleanupWorker(storages.SessionRepository, cfg.SessionCleanupInterval, log),
			newLimiterGCWorker(limiter, cfg.LimiterGCInterval, log),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
