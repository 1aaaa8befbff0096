package store

import (
	"context"
	"time"

	"github.com/haneul-lab/cruise-companion/models"
)

// AccountRepository persists account records and their lifecycle fields.
//
// CreateAccount reports [ErrAccountAlreadyExists] when the account's
// natural key is already taken; callers resolve the create/create race by
// retrying once as a lookup.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	FindByID(ctx context.Context, accountID int64) (models.Account, error)
	FindByContactAndRole(ctx context.Context, contact string, role models.Role) (models.Account, error)
	FindByNameContactAndRole(ctx context.Context, displayName, contact string, role models.Role) (models.Account, error)
	FindPartner(ctx context.Context, identifier string) (models.Account, error)
	UpdateAccount(ctx context.Context, update models.AccountUpdate) error
}

// SessionRepository persists issued sessions. Sessions are append-only:
// a new login supersedes older sessions but never mutates them.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error
	FindSessionByID(ctx context.Context, sessionID string) (models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// CatalogRepository reads the cruise product catalog and the country-name
// lookup table.
type CatalogRepository interface {
	FindProductByCode(ctx context.Context, productCode string) (models.CruiseProduct, error)
	CountryNames(ctx context.Context, codes []string) (map[string]string, error)
}

// TripRepository owns starter trips and everything derived from them.
//
// ProvisionTrip runs in a single transaction: it inserts the trip, its
// itinerary days and upserts the visited-country counters, so a failure
// anywhere leaves no partial state behind. ReplaceTrip additionally deletes
// the stale trip (itinerary days first) inside the same transaction.
type TripRepository interface {
	FindTripByAccount(ctx context.Context, accountID int64) (models.Trip, error)
	ProvisionTrip(ctx context.Context, trip models.Trip, days []models.ItineraryDay, visited []models.VisitedCountry) (models.Trip, error)
	ReplaceTrip(ctx context.Context, staleTripID int64, trip models.Trip, days []models.ItineraryDay, visited []models.VisitedCountry) (models.Trip, error)
	ListVisitedCountries(ctx context.Context, accountID int64) ([]models.VisitedCountry, error)
}

// PartnerRepository persists partner affiliate profiles.
type PartnerRepository interface {
	CreatePartnerProfile(ctx context.Context, profile models.PartnerProfile) (models.PartnerProfile, error)
	FindProfileByAccount(ctx context.Context, accountID int64) (models.PartnerProfile, error)
}
