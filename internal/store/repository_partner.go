package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/models"
)

// partnerRepository is the PostgreSQL-backed implementation of
// [PartnerRepository] over the "partner_profiles" table.
type partnerRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPartnerRepository constructs a [PartnerRepository] backed by the
// provided database connection and logger.
func NewPartnerRepository(db *DB, logger *logger.Logger) PartnerRepository {
	logger.Debug().Msg("creating partner repository")
	return &partnerRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePartnerProfile persists a newly provisioned affiliate profile and
// returns it with server-assigned fields (ProfileID, CreatedAt).
func (r *partnerRepository) CreatePartnerProfile(ctx context.Context, profile models.PartnerProfile) (models.PartnerProfile, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createPartnerProfile,
		profile.AccountID, profile.PartnerCode, profile.DisplayName, profile.Status)

	err := row.Scan(
		&profile.ProfileID,
		&profile.AccountID,
		&profile.PartnerCode,
		&profile.DisplayName,
		&profile.Status,
		&profile.CreatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "*partnerRepository.CreatePartnerProfile").
			Int64("account_id", profile.AccountID).
			Msg("error creating partner profile")
		return models.PartnerProfile{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return profile, nil
}

// FindProfileByAccount retrieves the affiliate profile bound to an account.
// Returns [ErrPartnerProfileNotFound] when the partner has no profile yet.
func (r *partnerRepository) FindProfileByAccount(ctx context.Context, accountID int64) (models.PartnerProfile, error) {
	log := logger.FromContext(ctx)

	var profile models.PartnerProfile
	row := r.db.QueryRowContext(ctx, findProfileByAccount, accountID)

	err := row.Scan(
		&profile.ProfileID,
		&profile.AccountID,
		&profile.PartnerCode,
		&profile.DisplayName,
		&profile.Status,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PartnerProfile{}, ErrPartnerProfileNotFound
		}
		log.Err(err).
			Str("func", "*partnerRepository.FindProfileByAccount").
			Int64("account_id", accountID).
			Msg("error finding partner profile")
		return models.PartnerProfile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return profile, nil
}
