package models

import "encoding/json"

// DayActivity classifies what happens on one itinerary day.
type DayActivity string

const (
	ActivityEmbark DayActivity = "embark"
	ActivityPort   DayActivity = "port"
	ActivitySea    DayActivity = "sea"
	ActivityDebark DayActivity = "debark"
)

// DayPattern is one entry of a catalog product's fixed day-by-day template.
// Port calls carry an arrival/departure pair; embark and debark days carry
// a single time instead.
type DayPattern struct {
	Day         int         `json:"day"`
	Type        DayActivity `json:"type"`
	Location    string      `json:"location,omitempty"`
	CountryCode string      `json:"country,omitempty"`
	Currency    string      `json:"currency,omitempty"`
	Language    string      `json:"language,omitempty"`
	Arrival     string      `json:"arrival,omitempty"`
	Departure   string      `json:"departure,omitempty"`
	Time        string      `json:"time,omitempty"`
}

// CruiseProduct is a catalog entry a starter trip is derived from.
type CruiseProduct struct {
	ProductID   int64  `json:"-"`
	ProductCode string `json:"product_code"`
	CruiseLine  string `json:"cruise_line"`
	ShipName    string `json:"ship_name"`
	Nights      int    `json:"nights"`
	Days        int    `json:"days"`

	// ItineraryPattern is the raw JSON day-pattern column. Use
	// [CruiseProduct.Pattern] to decode it.
	ItineraryPattern json.RawMessage `json:"itinerary_pattern"`
}

// TableName returns the name of the database table
// associated with the CruiseProduct model.
func (p CruiseProduct) TableName() string {
	return "cruise_products"
}

// Pattern decodes the product's stored day-pattern list.
func (p CruiseProduct) Pattern() ([]DayPattern, error) {
	var pattern []DayPattern
	if err := json.Unmarshal(p.ItineraryPattern, &pattern); err != nil {
		return nil, err
	}
	return pattern, nil
}

// Destinations extracts the ordered, de-duplicated list of port locations
// from the given pattern. Sea days and days without a location are skipped.
func Destinations(pattern []DayPattern) []string {
	seen := make(map[string]struct{}, len(pattern))
	destinations := make([]string, 0, len(pattern))
	for _, day := range pattern {
		if day.Location == "" || day.Type == ActivitySea {
			continue
		}
		if _, ok := seen[day.Location]; ok {
			continue
		}
		seen[day.Location] = struct{}{}
		destinations = append(destinations, day.Location)
	}
	return destinations
}

// CountryCodes extracts the ordered, de-duplicated list of country codes
// touched by the given pattern.
func CountryCodes(pattern []DayPattern) []string {
	seen := make(map[string]struct{}, len(pattern))
	codes := make([]string, 0, len(pattern))
	for _, day := range pattern {
		if day.CountryCode == "" {
			continue
		}
		if _, ok := seen[day.CountryCode]; ok {
			continue
		}
		seen[day.CountryCode] = struct{}{}
		codes = append(codes, day.CountryCode)
	}
	return codes
}
