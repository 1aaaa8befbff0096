package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAccountAlreadyExists is returned when an INSERT into accounts hits
	// the unique constraint on the account's natural key. The caller is
	// expected to retry the operation as a lookup.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrAccountNotFound is returned when a query expected to match at
	// least one account record produces an empty result set.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountNotUpdated is returned when an UPDATE of an account row
	// completes without error but affects zero rows, meaning the targeted
	// account no longer exists.
	ErrAccountNotUpdated = errors.New("account was not updated")

	// ErrSessionNotFound is returned when a session lookup by identifier
	// matches no row, either because the id is unknown or the row was
	// already removed by the cleanup worker.
	ErrSessionNotFound = errors.New("session not found")

	// ErrProductNotFound is returned when the configured catalog product
	// code does not exist in the cruise_products table.
	ErrProductNotFound = errors.New("cruise product not found")

	// ErrTripNotFound is returned when an account has no trip row.
	ErrTripNotFound = errors.New("trip not found")

	// ErrPartnerProfileNotFound is returned when a partner account has no
	// provisioned affiliate profile yet.
	ErrPartnerProfileNotFound = errors.New("partner profile not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. an empty SET list or unsupported argument type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
