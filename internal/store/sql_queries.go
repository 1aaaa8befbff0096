package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/haneul-lab/cruise-companion/models"
)

const (
	accountColumns = `account_id, display_name, contact, partner_handle, credential, role, lifecycle_status,
    trial_started_at, locked_at, locked_reason, login_count, last_active_at, created_at`

	createAccount = `INSERT INTO accounts (display_name, contact, partner_handle, credential, role, lifecycle_status, trial_started_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING ` + accountColumns + `;`

	findAccountByID = `SELECT ` + accountColumns + `
    FROM accounts
    WHERE account_id = $1;`

	findAccountByContactAndRole = `SELECT ` + accountColumns + `
    FROM accounts
    WHERE contact = $1 AND role = $2;`

	findAccountByNameContactAndRole = `SELECT ` + accountColumns + `
    FROM accounts
    WHERE display_name = $1 AND contact = $2 AND role = $3;`

	findPartnerAccount = `SELECT ` + accountColumns + `
    FROM accounts
    WHERE role = 'partner' AND (contact = $1 OR partner_handle = $2);`

	createSession = `INSERT INTO sessions (session_id, account_id, csrf_token, expires_at)
    VALUES ($1, $2, $3, $4);`

	findSessionByID = `SELECT session_id, account_id, csrf_token, expires_at, created_at
    FROM sessions
    WHERE session_id = $1;`

	deleteSession = `DELETE FROM sessions
    WHERE session_id = $1;`

	deleteExpiredSessions = `DELETE FROM sessions
    WHERE expires_at < $1;`

	findProductByCode = `SELECT product_id, product_code, cruise_line, ship_name, nights, days, itinerary_pattern
    FROM cruise_products
    WHERE product_code = $1;`

	findCountryNames = `SELECT code, name
    FROM countries
    WHERE code = ANY($1);`

	createTrip = `INSERT INTO trips (account_id, product_id, reservation_code, cruise_name, destinations,
    start_date, end_date, nights, days, companion_type, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    RETURNING trip_id, created_at;`

	findTripByAccount = `SELECT trip_id, account_id, product_id, reservation_code, cruise_name, destinations,
    start_date, end_date, nights, days, companion_type, status, created_at
    FROM trips
    WHERE account_id = $1;`

	deleteItineraryDays = `DELETE FROM itinerary_days
    WHERE trip_id = $1;`

	deleteTrip = `DELETE FROM trips
    WHERE trip_id = $1;`

	upsertVisitedCountry = `INSERT INTO visited_countries (account_id, country_code, country_name, visit_count, last_visited)
    VALUES ($1, $2, $3, 1, $4)
    ON CONFLICT (account_id, country_code)
    DO UPDATE SET visit_count = visited_countries.visit_count + 1, last_visited = EXCLUDED.last_visited;`

	listVisitedCountries = `SELECT account_id, country_code, country_name, visit_count, last_visited
    FROM visited_countries
    WHERE account_id = $1
    ORDER BY country_code;`

	createPartnerProfile = `INSERT INTO partner_profiles (account_id, partner_code, display_name, status)
    VALUES ($1, $2, $3, $4)
    RETURNING profile_id, account_id, partner_code, display_name, status, created_at;`

	findProfileByAccount = `SELECT profile_id, account_id, partner_code, display_name, status, created_at
    FROM partner_profiles
    WHERE account_id = $1;`
)

// buildUpdateAccountQuery dynamically builds the UPDATE for a lifecycle
// transition. Each transition touches a different subset of columns, so the
// SET list is assembled from the non-nil fields of the update.
func buildUpdateAccountQuery(update models.AccountUpdate) (string, []any, error) {
	builder := sq.Update("accounts").PlaceholderFormat(sq.Dollar)

	if update.Credential != nil {
		builder = builder.Set("credential", *update.Credential)
	}
	if update.Status != nil {
		builder = builder.Set("lifecycle_status", *update.Status)
	}
	if update.TrialStartedAt != nil {
		builder = builder.Set("trial_started_at", *update.TrialStartedAt)
	}
	if update.ClearTrial {
		builder = builder.Set("trial_started_at", nil)
	}
	if update.LockedAt != nil {
		builder = builder.Set("locked_at", *update.LockedAt)
	}
	if update.LockedReason != nil {
		builder = builder.Set("locked_reason", *update.LockedReason)
	}
	if update.ClearLocked {
		builder = builder.Set("locked_at", nil).Set("locked_reason", "")
	}
	if update.LastActiveAt != nil {
		builder = builder.Set("last_active_at", *update.LastActiveAt)
	}
	if update.IncLoginCount {
		builder = builder.Set("login_count", sq.Expr("login_count + 1"))
	}

	return builder.Where(sq.Eq{"account_id": update.AccountID}).ToSql()
}

// buildInsertItineraryDaysQuery builds one multi-row INSERT for all
// itinerary days of a trip.
func buildInsertItineraryDaysQuery(tripID int64, days []models.ItineraryDay) (string, []any, error) {
	builder := sq.Insert("itinerary_days").
		PlaceholderFormat(sq.Dollar).
		Columns("trip_id", "day", "date", "activity_type", "location", "country", "currency", "language", "arrival", "departure", "single_time")

	for _, day := range days {
		builder = builder.Values(tripID, day.Day, day.Date, day.Type, day.Location,
			day.CountryCode, day.Currency, day.Language, day.Arrival, day.Departure, day.Time)
	}

	return builder.ToSql()
}
