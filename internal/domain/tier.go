package domain

import (
	"time"

	"github.com/google/uuid"
)

// StarCategory is a bucketed lodging quality tier derived from a continuous
// star rating: 3, 4, or 5.
type StarCategory int

// The three published lodging categories.
const (
	ThreeStar StarCategory = 3
	FourStar  StarCategory = 4
	FiveStar  StarCategory = 5
)

// StarFor buckets a continuous rating into a category: ratings of 4.5 and
// above are 5★, 3.5 and above are 4★, everything else is 3★.
func StarFor(rating float64) StarCategory {
	switch {
	case rating >= 4.5:
		return FiveStar
	case rating >= 3.5:
		return FourStar
	default:
		return ThreeStar
	}
}

// PaxBand is a contiguous traveler-count range used to select a pricing
// tier. MaxPax of 0 means unbounded (the "16+" band).
type PaxBand struct {
	MinPax int `json:"min_pax"`
	MaxPax int `json:"max_pax,omitempty"`
}

// Contains reports whether pax falls inside the band.
func (b PaxBand) Contains(pax int) bool {
	if pax < b.MinPax {
		return false
	}
	return b.MaxPax == 0 || pax <= b.MaxPax
}

// PaxBands is the fixed group-size band table. Bands are ordered and
// non-overlapping; the last band is open-ended.
var PaxBands = []PaxBand{
	{MinPax: 2, MaxPax: 3},
	{MinPax: 4, MaxPax: 5},
	{MinPax: 6, MaxPax: 9},
	{MinPax: 10, MaxPax: 15},
	{MinPax: 16},
}

// BandFor selects the band containing pax. Counts below the first band's
// minimum (a solo traveler) clamp to the first band; the tier tables were
// never published for parties of one.
func BandFor(pax int) PaxBand {
	for _, b := range PaxBands {
		if b.Contains(pax) {
			return b
		}
	}
	return PaxBands[0]
}

// StarPricing holds the per-person figures for one lodging star category
// within a tier: the double-occupancy price, the discounted triple-occupancy
// price, and the single-occupancy supplement.
type StarPricing struct {
	Double           float64 `json:"double"`
	Triple           float64 `json:"triple"`
	SingleSupplement float64 `json:"single_supplement"`
}

// PricingTier is one output row of the tiered group pricing calculator: the
// selected pax band plus per-star pricing for every star category that has
// catalog availability. Star fields are nil, not zero-filled, for absent
// categories. Tiers are created in one batch per generation event and never
// mutated; a new generation supersedes the previous set.
type PricingTier struct {
	ID      uuid.UUID `json:"id"`
	QuoteID uuid.UUID `json:"quote_id"`

	Band PaxBand `json:"band"`

	ThreeStar *StarPricing `json:"three_star,omitempty"`
	FourStar  *StarPricing `json:"four_star,omitempty"`
	FiveStar  *StarPricing `json:"five_star,omitempty"`

	// Total and PricePerPerson are the top-level display figures, taken from
	// the highest available star category, or from the uncategorized base
	// total when no lodging exists at all.
	Total          float64 `json:"total"`
	PricePerPerson float64 `json:"price_per_person"`
	Currency       string  `json:"currency"`

	CreatedAt time.Time `json:"created_at"`
}

// ByStar returns the pricing for the given category, or nil when that
// category had no catalog availability.
func (t *PricingTier) ByStar(s StarCategory) *StarPricing {
	switch s {
	case ThreeStar:
		return t.ThreeStar
	case FourStar:
		return t.FourStar
	case FiveStar:
		return t.FiveStar
	}
	return nil
}
