package domain

// PricingSummary is the derived projection over all line items of a quote:
// one subtotal per item category, the pre-discount subtotal, the discount,
// the grand total, and the per-person price. Only Discount is ever set
// directly; everything else is recomputed by Summarize after each mutation
// and never persisted independently of its quote.
type PricingSummary struct {
	LodgingTotal     float64 `json:"lodging_total"`
	ToursTotal       float64 `json:"tours_total"`
	VehiclesTotal    float64 `json:"vehicles_total"`
	GuidesTotal      float64 `json:"guides_total"`
	EntranceFeeTotal float64 `json:"entrance_fees_total"`
	MealsTotal       float64 `json:"meals_total"`
	ExtrasTotal      float64 `json:"extras_total"`

	Subtotal       float64 `json:"subtotal"`
	Discount       float64 `json:"discount"`
	Total          float64 `json:"total"`
	PricePerPerson float64 `json:"price_per_person"`
}

// Summarize walks every line item in every day and produces the pricing
// summary. It is a pure, total function: two calls over the same days yield
// identical results, and the category subtotals always sum to Subtotal.
//
// A quote with zero travelers yields a per-person price of 0 rather than a
// division error.
func Summarize(days []Day, adults, children int, discount float64) PricingSummary {
	s := PricingSummary{Discount: discount}

	for _, d := range days {
		for _, it := range d.Items {
			switch it.Type {
			case ItemLodging:
				s.LodgingTotal += it.TotalPrice
			case ItemTour:
				s.ToursTotal += it.TotalPrice
			case ItemVehicle:
				s.VehiclesTotal += it.TotalPrice
			case ItemGuide:
				s.GuidesTotal += it.TotalPrice
			case ItemEntranceFee:
				s.EntranceFeeTotal += it.TotalPrice
			case ItemMeal:
				s.MealsTotal += it.TotalPrice
			case ItemExtra:
				s.ExtrasTotal += it.TotalPrice
			}
		}
	}

	s.Subtotal = s.LodgingTotal + s.ToursTotal + s.VehiclesTotal +
		s.GuidesTotal + s.EntranceFeeTotal + s.MealsTotal + s.ExtrasTotal
	s.Total = s.Subtotal - s.Discount

	if travelers := adults + children; travelers > 0 {
		s.PricePerPerson = s.Total / float64(travelers)
	}

	return s
}
