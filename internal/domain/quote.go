// Package domain contains the core data types and pure business rules for
// the quote builder. This package has zero external dependencies beyond uuid
// and is imported by every other internal package (repo, service, handler).
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Quote statuses. A quote moves draft → sent → accepted/rejected; the
// transitions are validated by the service layer, not here.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// KnownStatus reports whether s is one of the recognized quote statuses.
func KnownStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// CityNights is one entry of the trip routing: a city and the number of
// nights spent there. The ordered list of these defines the allocation.
type CityNights struct {
	City   string `json:"city"`
	Nights int    `json:"nights"`
}

// Quote is the top-level aggregate: the trip quote being built by an
// operator, including its generated day timeline, curated line items, and
// derived pricing summary. It is persisted and loaded as a whole.
type Quote struct {
	ID            uuid.UUID `json:"id"`
	Reference     string    `json:"reference"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone,omitempty"`

	Adults   int `json:"adults"`
	Children int `json:"children"`

	StartDate  time.Time    `json:"start_date"`
	EndDate    time.Time    `json:"end_date"`
	Allocation []CityNights `json:"allocation"`

	Days    []Day          `json:"days"`
	Summary PricingSummary `json:"summary"`

	// TimelineSignature records the (start date, allocation) combination the
	// current Days were generated from. It is persisted with the quote so the
	// regeneration guard survives process restarts and concurrent editors.
	TimelineSignature string `json:"timeline_signature,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Travelers returns the total traveler count (adults + children).
func (q *Quote) Travelers() int {
	return q.Adults + q.Children
}

// TotalNights sums the nights across the whole allocation.
func (q *Quote) TotalNights() int {
	total := 0
	for _, cn := range q.Allocation {
		total += cn.Nights
	}
	return total
}

// AllocationSignature builds the idempotency key for timeline generation:
// the start date plus every city:nights pair in order. Two quotes with the
// same routing and start date produce the same signature.
func (q *Quote) AllocationSignature() string {
	parts := make([]string, 0, len(q.Allocation)+1)
	parts = append(parts, q.StartDate.Format("2006-01-02"))
	for _, cn := range q.Allocation {
		parts = append(parts, fmt.Sprintf("%s:%d", cn.City, cn.Nights))
	}
	return strings.Join(parts, "|")
}

// NewReference derives a short human-readable quote reference from an ID,
// e.g. "Q-3F2A9C1B". The full UUID remains the real identity.
func NewReference(id uuid.UUID) string {
	return "Q-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}
