package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/internal/store"
	"github.com/haneul-lab/cruise-companion/internal/utils"
	"github.com/haneul-lab/cruise-companion/models"
)

// provisioningEngine creates the starter state of a freshly entered
// account: one trip derived from the configured catalog product, its
// day-by-day itinerary, and the visited-country counters.
//
// Idempotent by product: an existing trip on the same product is left
// alone; a trip on a different product is replaced wholesale, itinerary
// days first. The repository runs each variant in one transaction, so the
// "no orphaned itinerary rows" invariant holds even on failure.
type provisioningEngine struct {
	trips       store.TripRepository
	catalog     store.CatalogRepository
	productCode string
	clock       Clock
	logger      *logger.Logger
}

func newProvisioningEngine(trips store.TripRepository, catalog store.CatalogRepository, productCode string, clock Clock, log *logger.Logger) *provisioningEngine {
	return &provisioningEngine{
		trips:       trips,
		catalog:     catalog,
		productCode: productCode,
		clock:       clock,
		logger:      log,
	}
}

// EnsureStarterTrip makes sure the account owns a starter trip derived
// from the configured catalog product and returns it.
func (e *provisioningEngine) EnsureStarterTrip(ctx context.Context, account models.Account) (models.Trip, error) {
	log := logger.FromContext(ctx)

	product, err := e.catalog.FindProductByCode(ctx, e.productCode)
	if err != nil {
		return models.Trip{}, fmt.Errorf("starter product lookup failed: %w", err)
	}

	existing, err := e.trips.FindTripByAccount(ctx, account.AccountID)
	switch {
	case err == nil && existing.ProductID == product.ProductID:
		// Same product, nothing to do.
		return existing, nil

	case err == nil:
		trip, days, visited, buildErr := e.buildStarterTrip(ctx, account, product)
		if buildErr != nil {
			return models.Trip{}, buildErr
		}
		log.Info().
			Int64("account_id", account.AccountID).
			Int64("stale_trip_id", existing.TripID).
			Str("product_code", product.ProductCode).
			Msg("starter product changed, replacing trip")
		return e.trips.ReplaceTrip(ctx, existing.TripID, trip, days, visited)

	case errors.Is(err, store.ErrTripNotFound):
		trip, days, visited, buildErr := e.buildStarterTrip(ctx, account, product)
		if buildErr != nil {
			return models.Trip{}, buildErr
		}
		return e.trips.ProvisionTrip(ctx, trip, days, visited)

	default:
		return models.Trip{}, fmt.Errorf("trip lookup failed: %w", err)
	}
}

// buildStarterTrip derives the trip, its itinerary days and the
// visited-country rows from the product's day pattern.
//
// Date derivation: start = login date minus three days, truncated to
// midnight; end = start plus (duration in days minus one), end of day.
// The backdated start puts the customer mid-trip on first login.
func (e *provisioningEngine) buildStarterTrip(ctx context.Context, account models.Account, product models.CruiseProduct) (models.Trip, []models.ItineraryDay, []models.VisitedCountry, error) {
	pattern, err := product.Pattern()
	if err != nil {
		return models.Trip{}, nil, nil, fmt.Errorf("malformed day pattern for product %s: %w", product.ProductCode, err)
	}

	now := e.clock.Now()
	start := midnight(now.AddDate(0, 0, -3))
	end := start.AddDate(0, 0, product.Days-1).
		Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	reservationCode, err := utils.NewReservationCode(now)
	if err != nil {
		return models.Trip{}, nil, nil, fmt.Errorf("error generating reservation code: %w", err)
	}

	trip := models.Trip{
		AccountID:       account.AccountID,
		ProductID:       product.ProductID,
		ReservationCode: reservationCode,
		CruiseName:      fmt.Sprintf("%s %s", product.CruiseLine, product.ShipName),
		Destinations:    models.Destinations(pattern),
		StartDate:       start,
		EndDate:         end,
		Nights:          product.Nights,
		Days:            product.Days,
		CompanionType:   "solo",
		Status:          tripStatusAt(now, start, end),
	}

	days := make([]models.ItineraryDay, 0, len(pattern))
	for _, day := range pattern {
		days = append(days, models.ItineraryDay{
			Day:         day.Day,
			Date:        start.AddDate(0, 0, day.Day-1),
			Type:        day.Type,
			Location:    day.Location,
			CountryCode: day.CountryCode,
			Currency:    day.Currency,
			Language:    day.Language,
			Arrival:     day.Arrival,
			Departure:   day.Departure,
			Time:        day.Time,
		})
	}

	codes := models.CountryCodes(pattern)
	names, err := e.catalog.CountryNames(ctx, codes)
	if err != nil {
		return models.Trip{}, nil, nil, fmt.Errorf("country name lookup failed: %w", err)
	}

	visited := make([]models.VisitedCountry, 0, len(codes))
	for _, code := range codes {
		visited = append(visited, models.VisitedCountry{
			AccountID:   account.AccountID,
			CountryCode: code,
			CountryName: names[code],
			LastVisited: start,
		})
	}

	return trip, days, visited, nil
}

func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func tripStatusAt(now, start, end time.Time) models.TripStatus {
	switch {
	case now.Before(start):
		return models.TripUpcoming
	case now.After(end):
		return models.TripCompleted
	default:
		return models.TripOngoing
	}
}
