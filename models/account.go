package models

import "time"

// Role determines which entry point an account may authenticate through
// and which surface it lands on afterwards.
type Role string

const (
	// RoleCustomer is an ordinary travel-companion customer.
	RoleCustomer Role = "customer"

	// RoleStaff is a back-office operator. Staff accounts authenticate
	// only through the staff entry point.
	RoleStaff Role = "staff"

	// RolePartner is an affiliate partner with a dedicated partner portal.
	RolePartner Role = "partner"
)

// LifecycleStatus is the account's position in the customer lifecycle.
// Transitions between statuses are owned exclusively by the lifecycle
// state machine; nothing else writes this field.
type LifecycleStatus string

const (
	// StatusNew marks a record that exists only conceptually: no row yet.
	// It never appears in the database, only in transition reasoning.
	StatusNew LifecycleStatus = "new"

	// StatusActive is a fully usable account.
	StatusActive LifecycleStatus = "active"

	// StatusTrial is an account inside its 72-hour trial window.
	// Invariant: TrialStartedAt is non-nil while the status is trial.
	StatusTrial LifecycleStatus = "trial"

	// StatusLocked is an account that may not log in. Invariant:
	// LockedReason is recorded whenever the status is locked.
	StatusLocked LifecycleStatus = "locked"

	// StatusDormant is a seeded placeholder account imported without real
	// authentication established yet (display name, contact and credential
	// all equal the contact identifier).
	StatusDormant LifecycleStatus = "dormant"
)

// Account represents one customer, staff or partner record.
// Sensitive fields must never be exposed outside trusted boundaries.
type Account struct {
	// AccountID is the internal unique identifier of the account.
	// It is not exposed via JSON and is used only at the persistence layer.
	AccountID int64 `json:"-"`

	// DisplayName is the human-readable name the person logs in with.
	DisplayName string `json:"display_name"`

	// Contact is the contact identifier (typically a phone number).
	// Together with Role it forms the natural key of the account.
	Contact string `json:"contact"`

	// PartnerHandle is the optional portal handle of a partner account
	// (used for lookup and for the partner dashboard route).
	PartnerHandle string `json:"partner_handle,omitempty"`

	// Credential is the stored secret. Depending on provenance it is a
	// bcrypt hash, a reserved sentinel value, or a legacy plaintext
	// secret. Never serialized.
	Credential string `json:"-"`

	Role   Role            `json:"role"`
	Status LifecycleStatus `json:"lifecycle_status"`

	// TrialStartedAt is set exactly while Status is trial.
	TrialStartedAt *time.Time `json:"trial_started_at,omitempty"`

	// LockedAt and LockedReason are set exactly while Status is locked.
	LockedAt     *time.Time `json:"-"`
	LockedReason string     `json:"-"`

	// LoginCount increases by one per successful session issuance.
	LoginCount int64 `json:"login_count"`

	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// IsDormantPlaceholder reports whether the account follows the seeded
// placeholder convention: display name, contact identifier and stored
// credential are all the contact identifier.
func (a Account) IsDormantPlaceholder() bool {
	return a.Contact != "" &&
		a.DisplayName == a.Contact &&
		a.Credential == a.Contact
}

// AccountUpdate describes a partial update applied to an account during a
// lifecycle transition. Nil pointer fields are left untouched; this is what
// lets a single repository method serve every transition's SET list.
type AccountUpdate struct {
	AccountID int64

	Credential     *string
	Status         *LifecycleStatus
	TrialStartedAt *time.Time
	ClearTrial     bool
	LockedAt       *time.Time
	LockedReason   *string
	ClearLocked    bool
	LastActiveAt   *time.Time
	IncLoginCount  bool
}
