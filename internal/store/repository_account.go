package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/models"
)

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository]. It handles account creation, lookup by natural key
// and partial lifecycle updates against the "accounts" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount persists a new account record and returns the fully
// populated [models.Account] with server-assigned fields (AccountID,
// CreatedAt).
//
// The INSERT uses the [createAccount] query which returns all columns via
// a RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrAccountAlreadyExists].
//     This is how a lost create/create race surfaces; the caller retries
//     once as a lookup.
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createAccount,
		account.DisplayName, account.Contact, account.PartnerHandle,
		account.Credential, account.Role, account.Status, account.TrialStartedAt)

	created, err := scanAccount(row)
	if err != nil {
		log.Err(err).
			Str("func", "*accountRepository.CreateAccount").
			Str("contact", account.Contact).
			Msg("error creating account")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Account{}, ErrAccountAlreadyExists
		default:
			return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindByID retrieves one account by its internal identifier.
// Returns [ErrAccountNotFound] when no row matches.
func (r *accountRepository) FindByID(ctx context.Context, accountID int64) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findAccountByID, accountID)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).
			Str("func", "*accountRepository.FindByID").
			Int64("account_id", accountID).
			Msg("error finding account")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return account, nil
}

// FindByContactAndRole retrieves the account whose contact identifier and
// role match. Returns [ErrAccountNotFound] when no row matches.
func (r *accountRepository) FindByContactAndRole(ctx context.Context, contact string, role models.Role) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findAccountByContactAndRole, contact, role)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).
			Str("func", "*accountRepository.FindByContactAndRole").
			Str("contact", contact).
			Msg("error finding account")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return account, nil
}

// FindByNameContactAndRole retrieves the account matching the full natural
// key (display name, contact, role). Returns [ErrAccountNotFound] when no
// row matches.
func (r *accountRepository) FindByNameContactAndRole(ctx context.Context, displayName, contact string, role models.Role) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findAccountByNameContactAndRole, displayName, contact, role)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).
			Str("func", "*accountRepository.FindByNameContactAndRole").
			Str("contact", contact).
			Msg("error finding account")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return account, nil
}

// FindPartner retrieves a partner account by contact identifier or portal
// handle. The single identifier is matched against both columns. Returns
// [ErrAccountNotFound] when no row matches.
func (r *accountRepository) FindPartner(ctx context.Context, identifier string) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findPartnerAccount, identifier, identifier)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).
			Str("func", "*accountRepository.FindPartner").
			Str("identifier", identifier).
			Msg("error finding partner account")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return account, nil
}

// UpdateAccount applies the partial update described by the non-nil fields
// of the given [models.AccountUpdate]. The SET list is built dynamically;
// an update with no fields set fails with [ErrBuildingSQLQuery].
//
// Returns [ErrAccountNotUpdated] when the targeted account no longer exists.
func (r *accountRepository) UpdateAccount(ctx context.Context, update models.AccountUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateAccountQuery(update)
	if err != nil {
		log.Err(err).
			Str("func", "*accountRepository.UpdateAccount").
			Int64("account_id", update.AccountID).
			Msg("failed to build update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*accountRepository.UpdateAccount").
			Int64("account_id", update.AccountID).
			Msg("failed to execute update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAccountNotUpdated
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.AccountID,
		&account.DisplayName,
		&account.Contact,
		&account.PartnerHandle,
		&account.Credential,
		&account.Role,
		&account.Status,
		&account.TrialStartedAt,
		&account.LockedAt,
		&account.LockedReason,
		&account.LoginCount,
		&account.LastActiveAt,
		&account.CreatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}

	return account, nil
}
