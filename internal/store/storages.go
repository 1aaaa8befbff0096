package store

import "github.com/haneul-lab/cruise-companion/internal/logger"

// Storages aggregates every repository backed by the shared database
// connection. Constructed once at startup and handed to the service layer.
type Storages struct {
	AccountRepository AccountRepository
	SessionRepository SessionRepository
	CatalogRepository CatalogRepository
	TripRepository    TripRepository
	PartnerRepository PartnerRepository
}

// NewStorages wires all PostgreSQL repositories over one [*DB].
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		AccountRepository: NewAccountRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
		CatalogRepository: NewCatalogRepository(db, log),
		TripRepository:    NewTripRepository(db, log),
		PartnerRepository: NewPartnerRepository(db, log),
	}
}
