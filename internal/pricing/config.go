// Package pricing implements the tiered group pricing calculator used by the
// self-serve generation flow. It is stateless: callers hand it a finalized
// cost breakdown, the base traveler count, and the operator configuration,
// and get back a single pricing tier for the matching group-size band.
package pricing

import (
	"fmt"

	"github.com/tourcraft/quote-builder/internal/domain"
)

// SingleSupplementType selects how the single-occupancy supplement is
// derived from the double-occupancy price.
type SingleSupplementType string

const (
	// SupplementPercentage derives the supplement as a percentage of the
	// double-occupancy price.
	SupplementPercentage SingleSupplementType = "percentage"
	// SupplementFlat uses the configured value as a fixed amount.
	SupplementFlat SingleSupplementType = "flat"
)

// Config is the operator pricing configuration.
type Config struct {
	MarkupPercent float64 `json:"markup_percent"`
	TaxPercent    float64 `json:"tax_percent"`

	// Cost multipliers substituted into the pre-markup subtotal per lodging
	// star category.
	ThreeStarMultiplier float64 `json:"three_star_multiplier"`
	FourStarMultiplier  float64 `json:"four_star_multiplier"`
	FiveStarMultiplier  float64 `json:"five_star_multiplier"`

	// TripleDiscountPercent is taken off the double-occupancy price to form
	// the triple-occupancy price.
	TripleDiscountPercent float64 `json:"triple_discount_percent"`

	SingleSupplementType  SingleSupplementType `json:"single_supplement_type"`
	SingleSupplementValue float64              `json:"single_supplement_value"`

	Currency string `json:"currency"`
}

// DefaultConfig returns the configuration used when the operator has never
// saved one.
func DefaultConfig() Config {
	return Config{
		MarkupPercent:         15,
		TaxPercent:            0,
		ThreeStarMultiplier:   0.70,
		FourStarMultiplier:    1.00,
		FiveStarMultiplier:    1.40,
		TripleDiscountPercent: 10,
		SingleSupplementType:  SupplementPercentage,
		SingleSupplementValue: 50,
		Currency:              "USD",
	}
}

// Validate checks the configuration for values the calculator cannot work
// with.
func (c Config) Validate() error {
	if c.MarkupPercent < 0 {
		return fmt.Errorf("%w: markup percent must not be negative", domain.ErrValidation)
	}
	if c.TaxPercent < 0 {
		return fmt.Errorf("%w: tax percent must not be negative", domain.ErrValidation)
	}
	if c.ThreeStarMultiplier <= 0 || c.FourStarMultiplier <= 0 || c.FiveStarMultiplier <= 0 {
		return fmt.Errorf("%w: star multipliers must be positive", domain.ErrValidation)
	}
	if c.TripleDiscountPercent < 0 || c.TripleDiscountPercent > 100 {
		return fmt.Errorf("%w: triple discount percent must be between 0 and 100", domain.ErrValidation)
	}
	switch c.SingleSupplementType {
	case SupplementPercentage, SupplementFlat:
	default:
		return fmt.Errorf("%w: unknown single supplement type %q", domain.ErrValidation, c.SingleSupplementType)
	}
	if c.SingleSupplementValue < 0 {
		return fmt.Errorf("%w: single supplement value must not be negative", domain.ErrValidation)
	}
	if c.Currency == "" {
		return fmt.Errorf("%w: currency is required", domain.ErrValidation)
	}
	return nil
}

// multiplierFor returns the configured cost multiplier for a star category.
func (c Config) multiplierFor(s domain.StarCategory) float64 {
	switch s {
	case domain.ThreeStar:
		return c.ThreeStarMultiplier
	case domain.FiveStar:
		return c.FiveStarMultiplier
	default:
		return c.FourStarMultiplier
	}
}
