package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/haneul-lab/cruise-companion/internal/config"
	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/internal/store"
	"github.com/haneul-lab/cruise-companion/internal/utils"
	"github.com/haneul-lab/cruise-companion/internal/validators"
	"github.com/haneul-lab/cruise-companion/models"
)

// gateService is the concrete implementation of [GateService]: the
// lifecycle state machine plus the components it orchestrates.
//
// It owns the account's lifecycle_status field. Every transition is a
// guarded read-then-write on one account; create/create races on a brand
// new identity are resolved by the storage uniqueness constraint, with the
// loser retried once as a lookup.
type gateService struct {
	accounts store.AccountRepository
	partners store.PartnerRepository
	sessions store.SessionRepository

	interpreter *credentialInterpreter
	validator   validators.Validator
	trial       trialWindowTracker
	provisioner *provisioningEngine
	issuer      *sessionIssuer

	gate   config.Gate
	clock  Clock
	logger *logger.Logger
}

// NewGateService wires the entry gate over the given repositories.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewGateService(storages *store.Storages, cfg *config.StructuredConfig, clock Clock, log *logger.Logger) GateService {
	return &gateService{
		accounts:    storages.AccountRepository,
		partners:    storages.PartnerRepository,
		sessions:    storages.SessionRepository,
		interpreter: newCredentialInterpreter(cfg.Gate),
		validator:   validators.NewLoginRequestValidator(),
		trial:       newTrialWindowTracker(cfg.Gate.TrialWindow, clock),
		provisioner: newProvisioningEngine(storages.TripRepository, storages.CatalogRepository, cfg.Catalog.StarterProductCode, clock, log),
		issuer:      newSessionIssuer(storages.SessionRepository, storages.AccountRepository, cfg.Session, clock, log),
		gate:        cfg.Gate,
		clock:       clock,
		logger:      log,
	}
}

// Login runs the whole gate pipeline for one request: classification,
// the transition for the requested action, then session issuance.
func (g *gateService) Login(ctx context.Context, request models.LoginRequest) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	if err := g.validator.Validate(ctx, request); err != nil {
		log.Warn().
			Err(err).
			Str("contact", request.Contact).
			Msg("login request rejected by structural validation")
		return models.LoginResult{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	action, err := g.interpreter.Classify(request)
	if err != nil {
		log.Warn().
			Str("contact", request.Contact).
			Str("display_name", request.DisplayName).
			Msg("login request failed validation")
		return models.LoginResult{}, err
	}

	var (
		account        models.Account
		trialRemaining *int
	)

	switch action {
	case ActionRejectLocked:
		// No lookup. The locked credential is a fixed rejection.
		log.Warn().
			Str("contact", request.Contact).
			Msg("locked credential submitted")
		return models.LoginResult{}, ErrAccountDisabled

	case ActionBeginTrial:
		account, trialRemaining, err = g.beginTrial(ctx, request)

	case ActionActivateOrReactivate:
		account, err = g.activateOrReactivate(ctx, request)

	case ActionPartnerLogin:
		account, err = g.partnerLogin(ctx, request)

	default:
		account, err = g.standardLogin(ctx, request)
	}
	if err != nil {
		return models.LoginResult{}, err
	}

	session, err := g.issuer.Issue(ctx, account)
	if err != nil {
		return models.LoginResult{}, err
	}

	log.Info().
		Int64("account_id", account.AccountID).
		Str("role", string(account.Role)).
		Str("lifecycle_status", string(account.Status)).
		Msg("login succeeded")

	return models.LoginResult{
		Account:             account,
		Session:             session,
		AntiForgeryToken:    session.CSRFToken,
		NextRoute:           routeFor(account),
		TrialRemainingHours: trialRemaining,
	}, nil
}

// Logout deletes the presented session. The session itself is the only
// proof required.
func (g *gateService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrValidation
	}

	err := g.sessions.DeleteSession(ctx, sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return ErrAuthentication
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return nil
}

// ResolveSession turns a session identifier into the caller contract every
// downstream page consumes: account id, role, lifecycle status.
func (g *gateService) ResolveSession(ctx context.Context, sessionID string) (models.SessionInfo, error) {
	if sessionID == "" {
		return models.SessionInfo{}, ErrAuthentication
	}

	session, err := g.sessions.FindSessionByID(ctx, sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.SessionInfo{}, ErrAuthentication
	}
	if err != nil {
		return models.SessionInfo{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if session.Expired(g.clock.Now()) {
		return models.SessionInfo{}, ErrAuthentication
	}

	account, err := g.accounts.FindByID(ctx, session.AccountID)
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.SessionInfo{}, ErrAuthentication
	}
	if err != nil {
		return models.SessionInfo{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return models.SessionInfo{
		AccountID: account.AccountID,
		Role:      account.Role,
		Status:    account.Status,
	}, nil
}

// beginTrial is the trial pathway. Find-or-create by the full natural key,
// re-verify the stored credential is still the trial sentinel, apply the
// window guard, then make sure the starter trip exists.
//
// Expiry is a side-effecting failure: the rejection itself locks the
// account and overwrites its credential with the locked sentinel.
func (g *gateService) beginTrial(ctx context.Context, request models.LoginRequest) (models.Account, *int, error) {
	log := logger.FromContext(ctx)

	account, err := g.accounts.FindByNameContactAndRole(ctx, request.DisplayName, request.Contact, models.RoleCustomer)
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		now := g.clock.Now()
		account, err = g.createIfAbsent(ctx, models.Account{
			DisplayName:    request.DisplayName,
			Contact:        request.Contact,
			Credential:     g.gate.TrialSentinel,
			Role:           models.RoleCustomer,
			Status:         models.StatusTrial,
			TrialStartedAt: &now,
		}, func(c context.Context) (models.Account, error) {
			return g.accounts.FindByNameContactAndRole(c, request.DisplayName, request.Contact, models.RoleCustomer)
		})
		if err != nil {
			return models.Account{}, nil, err
		}

	case err != nil:
		return models.Account{}, nil, fmt.Errorf("%w: %w", ErrStorage, err)

	default:
		// A trial account whose credential was changed by an admin must
		// not silently re-enter trial.
		if account.Credential != g.gate.TrialSentinel {
			log.Warn().
				Int64("account_id", account.AccountID).
				Msg("trial credential no longer matches stored one")
			return models.Account{}, nil, ErrAuthentication
		}

		start := g.trial.WindowStart(account.TrialStartedAt)
		if g.trial.Expired(start) {
			if lockErr := g.lockExpiredTrial(ctx, account); lockErr != nil {
				return models.Account{}, nil, lockErr
			}
			log.Warn().
				Int64("account_id", account.AccountID).
				Time("trial_started_at", start).
				Msg("trial window elapsed, account locked")
			return models.Account{}, nil, ErrTrialExpired
		}

		if account.Status != models.StatusTrial || account.TrialStartedAt == nil {
			status := models.StatusTrial
			update := models.AccountUpdate{
				AccountID:      account.AccountID,
				Status:         &status,
				TrialStartedAt: &start,
			}
			if updErr := g.accounts.UpdateAccount(ctx, update); updErr != nil {
				return models.Account{}, nil, fmt.Errorf("%w: %w", ErrStorage, updErr)
			}
			account.Status = models.StatusTrial
			account.TrialStartedAt = &start
		}
	}

	// The engine is idempotent by product, so this only provisions on the
	// first entry. A failure here must not block the login; a broken
	// catalog entry never locks a customer out of their own trial.
	if _, provErr := g.provisioner.EnsureStarterTrip(ctx, account); provErr != nil {
		log.Warn().
			Err(provErr).
			Int64("account_id", account.AccountID).
			Msg("starter provisioning failed, continuing login")
	}

	remaining := g.trial.RemainingHours(g.trial.WindowStart(account.TrialStartedAt))
	return account, &remaining, nil
}

// lockExpiredTrial transitions an expired trial to locked. The locked
// sentinel replaces the stored credential so every later standard login
// attempt lands on the fixed rejection.
func (g *gateService) lockExpiredTrial(ctx context.Context, account models.Account) error {
	locked := g.gate.LockedSentinel
	status := models.StatusLocked
	now := g.clock.Now()
	reason := "trial window elapsed"

	update := models.AccountUpdate{
		AccountID:    account.AccountID,
		Credential:   &locked,
		Status:       &status,
		LockedAt:     &now,
		LockedReason: &reason,
		ClearTrial:   true,
	}
	if err := g.accounts.UpdateAccount(ctx, update); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return nil
}

// activateOrReactivate handles the reactivation sentinel. Two sub-cases
// share it: dormant placeholder auto-promotion and standard activation.
// An absent identity falls through to self-service signup. An account
// found with any other stored credential fails authentication; the
// sentinel never authenticates an account that was not already using it.
func (g *gateService) activateOrReactivate(ctx context.Context, request models.LoginRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	byContact, err := g.accounts.FindByContactAndRole(ctx, request.Contact, models.RoleCustomer)
	if err == nil && byContact.IsDormantPlaceholder() {
		return g.promoteDormant(ctx, byContact)
	}
	if err != nil && !errors.Is(err, store.ErrAccountNotFound) {
		return models.Account{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	account, err := g.accounts.FindByNameContactAndRole(ctx, request.DisplayName, request.Contact, models.RoleCustomer)
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		// Self-service signup pathway.
		return g.createIfAbsent(ctx, models.Account{
			DisplayName: request.DisplayName,
			Contact:     request.Contact,
			Credential:  g.gate.ReactivateSentinel,
			Role:        models.RoleCustomer,
			Status:      models.StatusActive,
		}, func(c context.Context) (models.Account, error) {
			return g.accounts.FindByNameContactAndRole(c, request.DisplayName, request.Contact, models.RoleCustomer)
		})

	case err != nil:
		return models.Account{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if account.Credential != g.gate.ReactivateSentinel {
		log.Warn().
			Int64("account_id", account.AccountID).
			Msg("reactivation credential rejected for account not using it")
		return models.Account{}, ErrAuthentication
	}

	status := models.StatusActive
	update := models.AccountUpdate{
		AccountID:   account.AccountID,
		Status:      &status,
		ClearTrial:  true,
		ClearLocked: true,
	}
	if updErr := g.accounts.UpdateAccount(ctx, update); updErr != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrStorage, updErr)
	}

	account.Status = models.StatusActive
	account.TrialStartedAt = nil
	account.LockedAt = nil
	account.LockedReason = ""
	return account, nil
}

// promoteDormant applies the placeholder convention: the seeded record is
// promoted to active and its credential is set to the reactivation
// sentinel for subsequent logins.
func (g *gateService) promoteDormant(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	status := models.StatusActive
	sentinel := g.gate.ReactivateSentinel
	update := models.AccountUpdate{
		AccountID:   account.AccountID,
		Status:      &status,
		Credential:  &sentinel,
		ClearTrial:  true,
		ClearLocked: true,
	}
	if err := g.accounts.UpdateAccount(ctx, update); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	log.Info().
		Int64("account_id", account.AccountID).
		Msg("dormant placeholder promoted to active")

	account.Status = models.StatusActive
	account.Credential = sentinel
	account.TrialStartedAt = nil
	account.LockedAt = nil
	account.LockedReason = ""
	return account, nil
}

// standardLogin verifies an ordinary secret. An unknown customer identity
// creates a brand-new active account (stored bcrypt-hashed); a matching
// staff identity at the customer gate is redirected, not logged in.
func (g *gateService) standardLogin(ctx context.Context, request models.LoginRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	if request.Mode == models.ModeStaff {
		return g.staffLogin(ctx, request)
	}

	account, err := g.accounts.FindByNameContactAndRole(ctx, request.DisplayName, request.Contact, models.RoleCustomer)
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		staff, staffErr := g.accounts.FindByNameContactAndRole(ctx, request.DisplayName, request.Contact, models.RoleStaff)
		if staffErr == nil && credentialMatches(staff.Credential, request.Credential) {
			log.Warn().
				Int64("account_id", staff.AccountID).
				Msg("staff account attempted the customer entry point")
			return models.Account{}, ErrRoleMismatch
		}
		if staffErr != nil && !errors.Is(staffErr, store.ErrAccountNotFound) {
			return models.Account{}, fmt.Errorf("%w: %w", ErrStorage, staffErr)
		}

		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(request.Credential), bcrypt.DefaultCost)
		if hashErr != nil {
			return models.Account{}, fmt.Errorf("credential hashing failed: %w", hashErr)
		}
		return g.createIfAbsent(ctx, models.Account{
			DisplayName: request.DisplayName,
			Contact:     request.Contact,
			Credential:  string(hashed),
			Role:        models.RoleCustomer,
			Status:      models.StatusActive,
		}, func(c context.Context) (models.Account, error) {
			return g.accounts.FindByNameContactAndRole(c, request.DisplayName, request.Contact, models.RoleCustomer)
		})

	case err != nil:
		return models.Account{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if !credentialMatches(account.Credential, request.Credential) {
		log.Warn().
			Int64("account_id", account.AccountID).
			Str("contact", request.Contact).
			Msg("credential mismatch")
		return models.Account{}, ErrAuthentication
	}

	return account, nil
}

// staffLogin is the back-office entry point. Staff accounts are never
// auto-created.
func (g *gateService) staffLogin(ctx context.Context, request models.LoginRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	account, err := g.accounts.FindByNameContactAndRole(ctx, request.DisplayName, request.Contact, models.RoleStaff)
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.Account{}, ErrAuthentication
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if !credentialMatches(account.Credential, request.Credential) {
		log.Warn().
			Int64("account_id", account.AccountID).
			Msg("staff credential mismatch")
		return models.Account{}, ErrAuthentication
	}

	return account, nil
}

// partnerLogin is the partner-portal pathway: lookup by contact identifier
// or portal handle, first-use profile provisioning, and credential
// realignment to the partner sentinel.
func (g *gateService) partnerLogin(ctx context.Context, request models.LoginRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	account, err := g.findPartnerAccount(ctx, request.Contact)
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.Account{}, ErrAuthentication
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	// The sentinel itself authorizes entry; an ordinary secret must
	// verify against the stored one.
	if request.Credential != g.gate.PartnerSentinel && !credentialMatches(account.Credential, request.Credential) {
		log.Warn().
			Int64("account_id", account.AccountID).
			Msg("partner credential mismatch")
		return models.Account{}, ErrAuthentication
	}

	_, profErr := g.partners.FindProfileByAccount(ctx, account.AccountID)
	switch {
	case errors.Is(profErr, store.ErrPartnerProfileNotFound):
		code, codeErr := utils.NewPartnerCode(partnerHandle(account))
		if codeErr != nil {
			return models.Account{}, fmt.Errorf("partner code generation failed: %w", codeErr)
		}
		profile, createErr := g.partners.CreatePartnerProfile(ctx, models.PartnerProfile{
			AccountID:   account.AccountID,
			PartnerCode: code,
			DisplayName: account.DisplayName,
			Status:      models.PartnerProfileActive,
		})
		if createErr != nil {
			return models.Account{}, fmt.Errorf("%w: %w", ErrStorage, createErr)
		}
		log.Info().
			Int64("account_id", account.AccountID).
			Str("partner_code", profile.PartnerCode).
			Msg("partner profile provisioned")

	case profErr != nil:
		return models.Account{}, fmt.Errorf("%w: %w", ErrStorage, profErr)
	}

	if account.Credential != g.gate.PartnerSentinel {
		sentinel := g.gate.PartnerSentinel
		update := models.AccountUpdate{
			AccountID:  account.AccountID,
			Credential: &sentinel,
		}
		if updErr := g.accounts.UpdateAccount(ctx, update); updErr != nil {
			return models.Account{}, fmt.Errorf("%w: %w", ErrStorage, updErr)
		}
		account.Credential = sentinel
	}

	return account, nil
}

// findPartnerAccount tries the raw identifier first and falls back to its
// digits-only form (contact identifiers are stored unformatted).
func (g *gateService) findPartnerAccount(ctx context.Context, identifier string) (models.Account, error) {
	account, err := g.accounts.FindPartner(ctx, identifier)
	if !errors.Is(err, store.ErrAccountNotFound) {
		return account, err
	}

	digits := digitsOnly(identifier)
	if digits == "" || digits == identifier {
		return models.Account{}, store.ErrAccountNotFound
	}
	return g.accounts.FindPartner(ctx, digits)
}

// createIfAbsent creates the account, resolving a lost create/create race
// by retrying once as a lookup of the winner's row.
func (g *gateService) createIfAbsent(ctx context.Context, account models.Account, lookup func(context.Context) (models.Account, error)) (models.Account, error) {
	created, err := g.accounts.CreateAccount(ctx, account)
	if err == nil {
		return created, nil
	}

	if errors.Is(err, store.ErrAccountAlreadyExists) {
		found, findErr := lookup(ctx)
		if errors.Is(findErr, store.ErrAccountNotFound) {
			// The contact is already claimed under a different identity;
			// that is a failed login, not a storage fault.
			return models.Account{}, ErrAuthentication
		}
		if findErr != nil {
			return models.Account{}, fmt.Errorf("%w: %w", ErrStorage, findErr)
		}
		return found, nil
	}

	return models.Account{}, fmt.Errorf("%w: %w", ErrStorage, err)
}

// credentialMatches verifies a submitted secret against the stored one.
// Bcrypt hashes are compared with bcrypt; anything else is a legacy
// plaintext secret compared in constant time.
func credentialMatches(stored, submitted string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

// routeFor picks the post-login destination by role and lifecycle status.
func routeFor(account models.Account) string {
	switch {
	case account.Role == models.RoleStaff:
		return "/admin/dashboard"
	case account.Role == models.RolePartner:
		return "/partner/" + partnerHandle(account) + "/dashboard"
	case account.Status == models.StatusTrial:
		return "/chat/trial"
	default:
		return "/chat"
	}
}

func partnerHandle(account models.Account) string {
	if account.PartnerHandle != "" {
		return account.PartnerHandle
	}
	return account.Contact
}

func digitsOnly(s string) string {
	var builder strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
