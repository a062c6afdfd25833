package domain

import "time"

// Day is one calendar day of the trip. Days are created only by BuildDays
// and never individually inserted or deleted; the whole list is regenerated
// when the allocation or start date changes, and only while no Day holds
// any line items.
//
// Invariant: Number is 1-based and contiguous; Date equals the trip start
// date plus (Number−1) days.
type Day struct {
	Number   int       `json:"day_number"`
	Date     time.Time `json:"date"`
	Location string    `json:"location"`

	// Departure marks the trip's final checkout day. The consistency rule
	// never places lodging on it. The flag is stamped by the generator so no
	// caller has to reason about array positions.
	Departure bool `json:"departure,omitempty"`

	Items []LineItem `json:"items"`
}
