package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/models"
)

// catalogRepository reads the "cruise_products" catalog and the seeded
// "countries" lookup table. Both are reference data; nothing here writes.
type catalogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCatalogRepository constructs a [CatalogRepository] backed by the
// provided database connection and logger.
func NewCatalogRepository(db *DB, logger *logger.Logger) CatalogRepository {
	logger.Debug().Msg("creating catalog repository")
	return &catalogRepository{
		db:     db,
		logger: logger,
	}
}

// FindProductByCode retrieves one catalog product by its product code.
// Returns [ErrProductNotFound] when the code is unknown.
func (r *catalogRepository) FindProductByCode(ctx context.Context, productCode string) (models.CruiseProduct, error) {
	log := logger.FromContext(ctx)

	var product models.CruiseProduct
	row := r.db.QueryRowContext(ctx, findProductByCode, productCode)

	err := row.Scan(
		&product.ProductID,
		&product.ProductCode,
		&product.CruiseLine,
		&product.ShipName,
		&product.Nights,
		&product.Days,
		&product.ItineraryPattern,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CruiseProduct{}, ErrProductNotFound
		}
		log.Err(err).
			Str("func", "*catalogRepository.FindProductByCode").
			Str("product_code", productCode).
			Msg("error finding cruise product")
		return models.CruiseProduct{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return product, nil
}

// CountryNames resolves ISO-style country codes to display names from the
// seeded lookup table. Unknown codes are simply absent from the result map.
func (r *catalogRepository) CountryNames(ctx context.Context, codes []string) (map[string]string, error) {
	log := logger.FromContext(ctx)

	if len(codes) == 0 {
		return map[string]string{}, nil
	}

	rows, err := r.db.QueryContext(ctx, findCountryNames, codes)
	if err != nil {
		log.Err(err).
			Str("func", "*catalogRepository.CountryNames").
			Int("codes count", len(codes)).
			Msg("error querying country names")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	names := make(map[string]string, len(codes))
	for rows.Next() {
		var code, name string
		if scanErr := rows.Scan(&code, &name); scanErr != nil {
			log.Err(scanErr).
				Str("func", "*catalogRepository.CountryNames").
				Msg("error scanning country row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		names[code] = name
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*catalogRepository.CountryNames").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return names, nil
}
