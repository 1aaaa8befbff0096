package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/models"
)

// tripRepository is the PostgreSQL-backed implementation of
// [TripRepository] over the "trips", "itinerary_days" and
// "visited_countries" tables.
//
// Provisioning writes all three tables inside one transaction so a
// mid-flight failure never leaves a trip without its itinerary or a
// half-applied set of visit counters.
type tripRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTripRepository constructs a [TripRepository] backed by the provided
// database connection and logger.
func NewTripRepository(db *DB, logger *logger.Logger) TripRepository {
	logger.Debug().Msg("creating trip repository")
	return &tripRepository{
		db:     db,
		logger: logger,
	}
}

// FindTripByAccount retrieves the account's trip, if any.
// Returns [ErrTripNotFound] when the account has no trip row.
func (r *tripRepository) FindTripByAccount(ctx context.Context, accountID int64) (models.Trip, error) {
	log := logger.FromContext(ctx)

	var trip models.Trip
	var destinations []byte

	row := r.db.QueryRowContext(ctx, findTripByAccount, accountID)
	err := row.Scan(
		&trip.TripID,
		&trip.AccountID,
		&trip.ProductID,
		&trip.ReservationCode,
		&trip.CruiseName,
		&destinations,
		&trip.StartDate,
		&trip.EndDate,
		&trip.Nights,
		&trip.Days,
		&trip.CompanionType,
		&trip.Status,
		&trip.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Trip{}, ErrTripNotFound
		}
		log.Err(err).
			Str("func", "*tripRepository.FindTripByAccount").
			Int64("account_id", accountID).
			Msg("error finding trip")
		return models.Trip{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := json.Unmarshal(destinations, &trip.Destinations); err != nil {
		return models.Trip{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return trip, nil
}

// ProvisionTrip creates the trip, its itinerary days and the
// visited-country upserts in one transaction. Returns the trip with
// server-assigned fields (TripID, CreatedAt) populated.
func (r *tripRepository) ProvisionTrip(ctx context.Context, trip models.Trip, days []models.ItineraryDay, visited []models.VisitedCountry) (models.Trip, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "*tripRepository.ProvisionTrip").
			Int64("account_id", trip.AccountID).
			Msg("failed to begin transaction")
		return models.Trip{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	created, err := r.provisionInTx(ctx, tx, trip, days, visited)
	if err != nil {
		return models.Trip{}, err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "*tripRepository.ProvisionTrip").
			Int64("account_id", trip.AccountID).
			Msg("failed to commit transaction")
		return models.Trip{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return created, nil
}

// ReplaceTrip deletes the stale trip (itinerary days first, then the trip
// row) and provisions the replacement, all in one transaction.
func (r *tripRepository) ReplaceTrip(ctx context.Context, staleTripID int64, trip models.Trip, days []models.ItineraryDay, visited []models.VisitedCountry) (models.Trip, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "*tripRepository.ReplaceTrip").
			Int64("account_id", trip.AccountID).
			Msg("failed to begin transaction")
		return models.Trip{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	// Itinerary days are owned by the trip and must go first.
	if _, err := tx.ExecContext(ctx, deleteItineraryDays, staleTripID); err != nil {
		log.Err(err).
			Str("func", "*tripRepository.ReplaceTrip").
			Int64("trip_id", staleTripID).
			Msg("failed to delete stale itinerary days")
		return models.Trip{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err := tx.ExecContext(ctx, deleteTrip, staleTripID); err != nil {
		log.Err(err).
			Str("func", "*tripRepository.ReplaceTrip").
			Int64("trip_id", staleTripID).
			Msg("failed to delete stale trip")
		return models.Trip{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	created, err := r.provisionInTx(ctx, tx, trip, days, visited)
	if err != nil {
		return models.Trip{}, err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "*tripRepository.ReplaceTrip").
			Int64("account_id", trip.AccountID).
			Msg("failed to commit transaction")
		return models.Trip{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return created, nil
}

// provisionInTx inserts the trip, its itinerary days and the
// visited-country upserts using the supplied open transaction.
func (r *tripRepository) provisionInTx(ctx context.Context, tx *sql.Tx, trip models.Trip, days []models.ItineraryDay, visited []models.VisitedCountry) (models.Trip, error) {
	log := logger.FromContext(ctx)

	destinations, err := json.Marshal(trip.Destinations)
	if err != nil {
		return models.Trip{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := tx.QueryRowContext(ctx, createTrip,
		trip.AccountID, trip.ProductID, trip.ReservationCode, trip.CruiseName, destinations,
		trip.StartDate, trip.EndDate, trip.Nights, trip.Days, trip.CompanionType, trip.Status)
	if err := row.Scan(&trip.TripID, &trip.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "*tripRepository.provisionInTx").
			Int64("account_id", trip.AccountID).
			Msg("failed to insert trip")
		return models.Trip{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(days) > 0 {
		query, args, buildErr := buildInsertItineraryDaysQuery(trip.TripID, days)
		if buildErr != nil {
			log.Err(buildErr).
				Str("func", "*tripRepository.provisionInTx").
				Int64("trip_id", trip.TripID).
				Msg("failed to build itinerary insert")
			return models.Trip{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			log.Err(execErr).
				Str("func", "*tripRepository.provisionInTx").
				Int64("trip_id", trip.TripID).
				Int("days count", len(days)).
				Msg("failed to insert itinerary days")
			return models.Trip{}, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
	}

	for _, country := range visited {
		_, execErr := tx.ExecContext(ctx, upsertVisitedCountry,
			country.AccountID, country.CountryCode, country.CountryName, country.LastVisited)
		if execErr != nil {
			log.Err(execErr).
				Str("func", "*tripRepository.provisionInTx").
				Int64("account_id", trip.AccountID).
				Str("country_code", country.CountryCode).
				Msg("failed to upsert visited country")
			return models.Trip{}, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
	}

	return trip, nil
}

// ListVisitedCountries returns the account's visit counters ordered by
// country code.
func (r *tripRepository) ListVisitedCountries(ctx context.Context, accountID int64) ([]models.VisitedCountry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listVisitedCountries, accountID)
	if err != nil {
		log.Err(err).
			Str("func", "*tripRepository.ListVisitedCountries").
			Int64("account_id", accountID).
			Msg("error querying visited countries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	visited := make([]models.VisitedCountry, 0, 8)
	for rows.Next() {
		var country models.VisitedCountry
		scanErr := rows.Scan(
			&country.AccountID,
			&country.CountryCode,
			&country.CountryName,
			&country.VisitCount,
			&country.LastVisited,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*tripRepository.ListVisitedCountries").
				Int64("account_id", accountID).
				Msg("error scanning visited country row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		visited = append(visited, country)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*tripRepository.ListVisitedCountries").
			Int64("account_id", accountID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return visited, nil
}
