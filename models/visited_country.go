package models

import "time"

// VisitedCountry is the per (account, country) visit counter maintained by
// the provisioning engine. It is upserted additively whenever a trip
// touches the country.
type VisitedCountry struct {
	AccountID   int64     `json:"-"`
	CountryCode string    `json:"country_code"`
	CountryName string    `json:"country_name"`
	VisitCount  int       `json:"visit_count"`
	LastVisited time.Time `json:"last_visited"`
}

// TableName returns the name of the database table
// associated with the VisitedCountry model.
func (v VisitedCountry) TableName() string {
	return "visited_countries"
}
