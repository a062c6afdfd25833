package pricing

import (
	"fmt"
	"sort"

	"github.com/tourcraft/quote-builder/internal/domain"
)

// CostBreakdown is the per-category service cost total for the base traveler
// count. Activity and meal costs vary per person; accommodation and
// transport are treated as fixed within a band.
type CostBreakdown struct {
	Accommodation float64 `json:"accommodation"`
	Activity      float64 `json:"activity"`
	Meal          float64 `json:"meal"`
	Transport     float64 `json:"transport"`
}

func (b CostBreakdown) validate() error {
	if b.Accommodation < 0 || b.Activity < 0 || b.Meal < 0 || b.Transport < 0 {
		return fmt.Errorf("%w: cost breakdown must not contain negative amounts", domain.ErrValidation)
	}
	return nil
}

// Calculate prices the single pax band containing basePax. Per-person costs
// (activity, meal) are scaled by the ratio of the band's minimum pax to
// basePax, markup is applied to the scaled subtotal, tax to the marked-up
// amount. For each available star category the pre-markup subtotal is
// recomputed under that category's cost multiplier, markup and tax re-added,
// and double/triple/single occupancy prices derived. Categories absent from
// availableStars stay nil on the result. The top-level total and per-person
// figures come from the highest available star category, or from the
// uncategorized base total when no lodging category is available.
func Calculate(breakdown CostBreakdown, basePax int, availableStars []domain.StarCategory, cfg Config) (domain.PricingTier, error) {
	if basePax < 1 {
		return domain.PricingTier{}, fmt.Errorf("%w: base pax must be at least 1", domain.ErrValidation)
	}
	if err := breakdown.validate(); err != nil {
		return domain.PricingTier{}, err
	}
	if err := cfg.Validate(); err != nil {
		return domain.PricingTier{}, err
	}

	band := domain.BandFor(basePax)
	scale := float64(band.MinPax) / float64(basePax)

	subtotal := breakdown.Accommodation + breakdown.Transport +
		(breakdown.Activity+breakdown.Meal)*scale
	baseTotal := applyMarkupAndTax(subtotal, cfg)

	tier := domain.PricingTier{
		Band:           band,
		Total:          baseTotal,
		PricePerPerson: baseTotal / float64(basePax),
		Currency:       cfg.Currency,
	}

	for _, star := range sortedStars(availableStars) {
		catSubtotal := subtotal * cfg.multiplierFor(star)
		catTotal := applyMarkupAndTax(catSubtotal, cfg)

		double := catTotal / float64(band.MinPax)
		sp := &domain.StarPricing{
			Double:           double,
			Triple:           double * (1 - cfg.TripleDiscountPercent/100),
			SingleSupplement: singleSupplement(double, cfg),
		}
		switch star {
		case domain.ThreeStar:
			tier.ThreeStar = sp
		case domain.FourStar:
			tier.FourStar = sp
		case domain.FiveStar:
			tier.FiveStar = sp
		}

		// Ascending order, so the last category written wins the display
		// figures: the highest available star.
		tier.Total = catTotal
		tier.PricePerPerson = catTotal / float64(basePax)
	}

	return tier, nil
}

func applyMarkupAndTax(subtotal float64, cfg Config) float64 {
	marked := subtotal * (1 + cfg.MarkupPercent/100)
	return marked * (1 + cfg.TaxPercent/100)
}

func singleSupplement(double float64, cfg Config) float64 {
	if cfg.SingleSupplementType == SupplementFlat {
		return cfg.SingleSupplementValue
	}
	return double * cfg.SingleSupplementValue / 100
}

// sortedStars deduplicates and orders categories ascending.
func sortedStars(stars []domain.StarCategory) []domain.StarCategory {
	seen := make(map[domain.StarCategory]bool, len(stars))
	out := make([]domain.StarCategory, 0, len(stars))
	for _, s := range stars {
		switch s {
		case domain.ThreeStar, domain.FourStar, domain.FiveStar:
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
