package models

import "time"

// PartnerProfile is the affiliate record bound to a partner account.
// It is auto-provisioned on the partner's first login.
type PartnerProfile struct {
	ProfileID int64 `json:"-"`
	AccountID int64 `json:"-"`

	// PartnerCode is a generated unique affiliate code of the form
	// PRT-<HANDLE>-<HEX4>.
	PartnerCode string `json:"partner_code"`

	DisplayName string    `json:"display_name"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// PartnerProfileActive is the only status under which a profile is served.
const PartnerProfileActive = "ACTIVE"

// TableName returns the name of the database table
// associated with the PartnerProfile model.
func (p PartnerProfile) TableName() string {
	return "partner_profiles"
}
