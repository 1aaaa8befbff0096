package models

// LoginMode is the optional explicit entry-point hint the client sends
// with a login request.
type LoginMode string

const (
	ModeCustomer LoginMode = "customer"
	ModeStaff    LoginMode = "staff"
	ModePartner  LoginMode = "partner"
)

// LoginRequest is the single entry-gate request body.
type LoginRequest struct {
	DisplayName string    `json:"displayName"`
	Contact     string    `json:"contactIdentifier"`
	Credential  string    `json:"credential"`
	Mode        LoginMode `json:"loginModeHint,omitempty"`
}

// LoginResponse is the entry-gate response body for both outcomes.
// On success ErrorCode is empty; on failure only OK, ErrorCode and
// RetryAfterSeconds are populated.
type LoginResponse struct {
	OK bool `json:"ok"`

	NextRoute        string `json:"nextRoute,omitempty"`
	SessionToken     string `json:"sessionToken,omitempty"`
	AntiForgeryToken string `json:"antiForgeryToken,omitempty"`

	// TrialRemainingHours is present only after a trial login.
	TrialRemainingHours *int `json:"trialRemainingHours,omitempty"`

	ErrorCode         string `json:"errorCode,omitempty"`
	RetryAfterSeconds int    `json:"retryAfterSeconds,omitempty"`
}

// LoginResult is the service-level outcome of a successful gate entry,
// before the HTTP layer shapes it into a [LoginResponse].
type LoginResult struct {
	Account          Account
	Session          Session
	AntiForgeryToken string
	NextRoute        string

	// TrialRemainingHours is set only when the entry ran the trial pathway.
	TrialRemainingHours *int
}

// SessionInfo is everything downstream pages are allowed to learn about an
// authenticated caller: who, which role, which lifecycle status.
type SessionInfo struct {
	AccountID int64           `json:"accountId"`
	Role      Role            `json:"role"`
	Status    LifecycleStatus `json:"lifecycleStatus"`
}
