package domain

import "time"

// CatalogService is one priced, typed offering from the operator's service
// catalog: a hotel, a tour, a vehicle with driver, and so on. StarRating is
// meaningful only for lodging; Capacity only for vehicles.
type CatalogService struct {
	ID        int64    `json:"id"`
	Type      ItemType `json:"type"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	UnitPrice float64  `json:"unit_price"`

	// UnitLabel names the unit the price applies to: "per night",
	// "per person", "per day", "fixed".
	UnitLabel string `json:"unit_label"`

	StarRating float64 `json:"star_rating,omitempty"`
	Capacity   int     `json:"capacity,omitempty"`
	Duration   string  `json:"duration,omitempty"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
