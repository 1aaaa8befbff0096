package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haneul-lab/cruise-companion/internal/config"
	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/internal/store"
	"github.com/haneul-lab/cruise-companion/models"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fake clock
// ─────────────────────────────────────────────────────────────────────────────

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ─────────────────────────────────────────────────────────────────────────────
// Fake repositories (in-memory, mirroring the PostgreSQL semantics)
// ─────────────────────────────────────────────────────────────────────────────

type fakeAccounts struct {
	mu        sync.Mutex
	nextID    int64
	rows      map[int64]models.Account
	createErr error
	updateErr error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{nextID: 1, rows: make(map[int64]models.Account)}
}

func (f *fakeAccounts) CreateAccount(_ context.Context, account models.Account) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return models.Account{}, f.createErr
	}
	for _, existing := range f.rows {
		if existing.Contact == account.Contact && existing.Role == account.Role {
			return models.Account{}, store.ErrAccountAlreadyExists
		}
	}

	account.AccountID = f.nextID
	account.CreatedAt = time.Now()
	f.nextID++
	f.rows[account.AccountID] = account
	return account, nil
}

func (f *fakeAccounts) FindByID(_ context.Context, accountID int64) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.rows[accountID]
	if !ok {
		return models.Account{}, store.ErrAccountNotFound
	}
	return account, nil
}

func (f *fakeAccounts) FindByContactAndRole(_ context.Context, contact string, role models.Role) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, account := range f.rows {
		if account.Contact == contact && account.Role == role {
			return account, nil
		}
	}
	return models.Account{}, store.ErrAccountNotFound
}

func (f *fakeAccounts) FindByNameContactAndRole(_ context.Context, displayName, contact string, role models.Role) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, account := range f.rows {
		if account.DisplayName == displayName && account.Contact == contact && account.Role == role {
			return account, nil
		}
	}
	return models.Account{}, store.ErrAccountNotFound
}

func (f *fakeAccounts) FindPartner(_ context.Context, identifier string) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, account := range f.rows {
		if account.Role != models.RolePartner {
			continue
		}
		if account.Contact == identifier || account.PartnerHandle == identifier {
			return account, nil
		}
	}
	return models.Account{}, store.ErrAccountNotFound
}

func (f *fakeAccounts) UpdateAccount(_ context.Context, update models.AccountUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return f.updateErr
	}
	account, ok := f.rows[update.AccountID]
	if !ok {
		return store.ErrAccountNotUpdated
	}

	if update.Credential != nil {
		account.Credential = *update.Credential
	}
	if update.Status != nil {
		account.Status = *update.Status
	}
	if update.TrialStartedAt != nil {
		start := *update.TrialStartedAt
		account.TrialStartedAt = &start
	}
	if update.ClearTrial {
		account.TrialStartedAt = nil
	}
	if update.LockedAt != nil {
		lockedAt := *update.LockedAt
		account.LockedAt = &lockedAt
	}
	if update.LockedReason != nil {
		account.LockedReason = *update.LockedReason
	}
	if update.ClearLocked {
		account.LockedAt = nil
		account.LockedReason = ""
	}
	if update.LastActiveAt != nil {
		lastActive := *update.LastActiveAt
		account.LastActiveAt = &lastActive
	}
	if update.IncLoginCount {
		account.LoginCount++
	}

	f.rows[update.AccountID] = account
	return nil
}

type fakeSessions struct {
	mu        sync.Mutex
	rows      map[string]models.Session
	createErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{rows: make(map[string]models.Session)}
}

func (f *fakeSessions) CreateSession(_ context.Context, session models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	session.CreatedAt = time.Now()
	f.rows[session.SessionID] = session
	return nil
}

func (f *fakeSessions) FindSessionByID(_ context.Context, sessionID string) (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	session, ok := f.rows[sessionID]
	if !ok {
		return models.Session{}, store.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessions) DeleteSession(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rows[sessionID]; !ok {
		return store.ErrSessionNotFound
	}
	delete(f.rows, sessionID)
	return nil
}

func (f *fakeSessions) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var deleted int64
	for id, session := range f.rows {
		if session.ExpiresAt.Before(now) {
			delete(f.rows, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeCatalog struct {
	products   map[string]models.CruiseProduct
	names      map[string]string
	productErr error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: map[string]models.CruiseProduct{
			"SAMPLE-MED-001": {
				ProductID:   1,
				ProductCode: "SAMPLE-MED-001",
				CruiseLine:  "Azure Line",
				ShipName:    "Mediterranean Star",
				Nights:      6,
				Days:        7,
				ItineraryPattern: []byte(`[
					{"day":1,"type":"embark","location":"Barcelona","country":"ES","currency":"EUR","language":"Spanish","time":"17:00"},
					{"day":2,"type":"sea"},
					{"day":3,"type":"port","location":"Marseille","country":"FR","currency":"EUR","language":"French","arrival":"08:00","departure":"18:00"},
					{"day":4,"type":"port","location":"Genoa","country":"IT","currency":"EUR","language":"Italian","arrival":"07:00","departure":"17:00"},
					{"day":5,"type":"port","location":"Rome","country":"IT","currency":"EUR","language":"Italian","arrival":"07:00","departure":"19:00"},
					{"day":6,"type":"sea"},
					{"day":7,"type":"debark","location":"Barcelona","country":"ES","currency":"EUR","language":"Spanish","time":"08:00"}
				]`),
			},
		},
		names: map[string]string{"ES": "Spain", "FR": "France", "IT": "Italy"},
	}
}

func (f *fakeCatalog) FindProductByCode(_ context.Context, productCode string) (models.CruiseProduct, error) {
	if f.productErr != nil {
		return models.CruiseProduct{}, f.productErr
	}
	product, ok := f.products[productCode]
	if !ok {
		return models.CruiseProduct{}, store.ErrProductNotFound
	}
	return product, nil
}

func (f *fakeCatalog) CountryNames(_ context.Context, codes []string) (map[string]string, error) {
	names := make(map[string]string, len(codes))
	for _, code := range codes {
		if name, ok := f.names[code]; ok {
			names[code] = name
		}
	}
	return names, nil
}

type fakeTrips struct {
	mu            sync.Mutex
	nextID        int64
	trips         map[int64]models.Trip
	days          map[int64][]models.ItineraryDay
	visited       map[string]models.VisitedCountry
	provisionErr  error
	failItinerary bool
}

func newFakeTrips() *fakeTrips {
	return &fakeTrips{
		nextID:  1,
		trips:   make(map[int64]models.Trip),
		days:    make(map[int64][]models.ItineraryDay),
		visited: make(map[string]models.VisitedCountry),
	}
}

func (f *fakeTrips) FindTripByAccount(_ context.Context, accountID int64) (models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, trip := range f.trips {
		if trip.AccountID == accountID {
			return trip, nil
		}
	}
	return models.Trip{}, store.ErrTripNotFound
}

func (f *fakeTrips) ProvisionTrip(_ context.Context, trip models.Trip, days []models.ItineraryDay, visited []models.VisitedCountry) (models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.provisionLocked(trip, days, visited)
}

func (f *fakeTrips) ReplaceTrip(_ context.Context, staleTripID int64, trip models.Trip, days []models.ItineraryDay, visited []models.VisitedCountry) (models.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.days, staleTripID)
	delete(f.trips, staleTripID)
	return f.provisionLocked(trip, days, visited)
}

// provisionLocked mirrors the all-or-nothing transaction: a forced
// itinerary failure leaves no state behind.
func (f *fakeTrips) provisionLocked(trip models.Trip, days []models.ItineraryDay, visited []models.VisitedCountry) (models.Trip, error) {
	if f.provisionErr != nil {
		return models.Trip{}, f.provisionErr
	}
	if f.failItinerary {
		return models.Trip{}, store.ErrExecutingStatement
	}

	trip.TripID = f.nextID
	trip.CreatedAt = time.Now()
	f.nextID++
	f.trips[trip.TripID] = trip

	tripDays := make([]models.ItineraryDay, len(days))
	copy(tripDays, days)
	for i := range tripDays {
		tripDays[i].TripID = trip.TripID
	}
	f.days[trip.TripID] = tripDays

	for _, country := range visited {
		key := fmt.Sprintf("%d|%s", country.AccountID, country.CountryCode)
		if existing, ok := f.visited[key]; ok {
			existing.VisitCount++
			existing.LastVisited = country.LastVisited
			f.visited[key] = existing
			continue
		}
		country.VisitCount = 1
		f.visited[key] = country
	}

	return trip, nil
}

func (f *fakeTrips) ListVisitedCountries(_ context.Context, accountID int64) ([]models.VisitedCountry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	visited := make([]models.VisitedCountry, 0, len(f.visited))
	for _, country := range f.visited {
		if country.AccountID == accountID {
			visited = append(visited, country)
		}
	}
	return visited, nil
}

type fakePartners struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.PartnerProfile
}

func newFakePartners() *fakePartners {
	return &fakePartners{nextID: 1, rows: make(map[int64]models.PartnerProfile)}
}

func (f *fakePartners) CreatePartnerProfile(_ context.Context, profile models.PartnerProfile) (models.PartnerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	profile.ProfileID = f.nextID
	profile.CreatedAt = time.Now()
	f.nextID++
	f.rows[profile.AccountID] = profile
	return profile, nil
}

func (f *fakePartners) FindProfileByAccount(_ context.Context, accountID int64) (models.PartnerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	profile, ok := f.rows[accountID]
	if !ok {
		return models.PartnerProfile{}, store.ErrPartnerProfileNotFound
	}
	return profile, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────────────────────────────────────

type gateFixture struct {
	gate     *gateService
	clock    *fakeClock
	accounts *fakeAccounts
	sessions *fakeSessions
	trips    *fakeTrips
	partners *fakePartners
	catalog  *fakeCatalog
}

func testGateConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		Gate: config.Gate{
			TrialSentinel:      "1101",
			ReactivateSentinel: "3800",
			LockedSentinel:     "8300",
			PartnerSentinel:    "qwe1",
			TrialWindow:        72 * time.Hour,
		},
		Session: config.Session{
			TTL:          30 * 24 * time.Hour,
			TokenSignKey: "test-sign-key",
			TokenIssuer:  "cruise-companion-test",
		},
		Catalog: config.Catalog{StarterProductCode: "SAMPLE-MED-001"},
	}
}

func newGateFixture(now time.Time) *gateFixture {
	accounts := newFakeAccounts()
	sessions := newFakeSessions()
	trips := newFakeTrips()
	partners := newFakePartners()
	catalog := newFakeCatalog()
	clock := newFakeClock(now)

	storages := &store.Storages{
		AccountRepository: accounts,
		SessionRepository: sessions,
		CatalogRepository: catalog,
		TripRepository:    trips,
		PartnerRepository: partners,
	}

	gate := NewGateService(storages, testGateConfig(), clock, logger.Nop()).(*gateService)

	return &gateFixture{
		gate:     gate,
		clock:    clock,
		accounts: accounts,
		sessions: sessions,
		trips:    trips,
		partners: partners,
		catalog:  catalog,
	}
}
