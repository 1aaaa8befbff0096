package models

import "time"

// TripStatus is the coarse scheduling state of a trip.
type TripStatus string

const (
	TripUpcoming  TripStatus = "Upcoming"
	TripOngoing   TripStatus = "Ongoing"
	TripCompleted TripStatus = "Completed"
)

// Trip is a starter itinerary bound to exactly one account. At most one
// trip is created automatically per account; it owns its itinerary days
// and must never outlive them being deleted first.
type Trip struct {
	TripID    int64 `json:"-"`
	AccountID int64 `json:"-"`
	ProductID int64 `json:"-"`

	// ReservationCode is a human-readable booking reference of the form
	// CRD-YYYYMMDD-NNNN. Uniqueness is best-effort.
	ReservationCode string `json:"reservation_code"`

	CruiseName    string     `json:"cruise_name"`
	Destinations  []string   `json:"destinations"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	Nights        int        `json:"nights"`
	Days          int        `json:"days"`
	CompanionType string     `json:"companion_type"`
	Status        TripStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Trip model.
func (t Trip) TableName() string {
	return "trips"
}

// ItineraryDay is one row per day of a trip, derived from the catalog
// product's day pattern. Owned exclusively by its trip.
type ItineraryDay struct {
	ItineraryDayID int64 `json:"-"`
	TripID         int64 `json:"-"`

	Day         int         `json:"day"`
	Date        time.Time   `json:"date"`
	Type        DayActivity `json:"type"`
	Location    string      `json:"location,omitempty"`
	CountryCode string      `json:"country,omitempty"`
	Currency    string      `json:"currency,omitempty"`
	Language    string      `json:"language,omitempty"`
	Arrival     string      `json:"arrival,omitempty"`
	Departure   string      `json:"departure,omitempty"`
	Time        string      `json:"time,omitempty"`
}

// TableName returns the name of the database table
// associated with the ItineraryDay model.
func (d ItineraryDay) TableName() string {
	return "itinerary_days"
}
