package service

import (
	"github.com/haneul-lab/cruise-companion/internal/config"
	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/internal/store"
)

// Services aggregates the service layer, constructed once at startup.
type Services struct {
	GateService GateService
}

// NewServices wires the gate service over the repositories with the
// system clock.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		GateService: NewGateService(storages, cfg, NewSystemClock(), logger),
	}
}
