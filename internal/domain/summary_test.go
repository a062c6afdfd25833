package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourcraft/quote-builder/internal/domain"
)

// itemizedDays builds a 3-day single-city timeline carrying one item of
// every category with easily summed totals.
func itemizedDays(t *testing.T) []domain.Day {
	t.Helper()
	days, err := domain.BuildDays([]domain.CityNights{{City: "Istanbul", Nights: 2}}, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	add := func(dayIdx int, item domain.LineItem) {
		days, err = domain.AddItem(days, dayIdx, item, 2)
		require.NoError(t, err)
	}

	add(0, domain.LineItem{Type: domain.ItemLodging, CatalogID: 1, Name: "Hotel", Quantity: 1, UnitPrice: 100})   // 100×1×2 = 200 on days 1–2 → 400
	add(0, domain.LineItem{Type: domain.ItemTour, CatalogID: 2, Name: "Cruise", Quantity: 2, UnitPrice: 50})      // 100
	add(1, domain.LineItem{Type: domain.ItemVehicle, CatalogID: 3, Name: "Van", Quantity: 1, UnitPrice: 120})     // 120
	add(1, domain.LineItem{Type: domain.ItemGuide, CatalogID: 4, Name: "Guide", Quantity: 1, UnitPrice: 150})     // 150
	add(0, domain.LineItem{Type: domain.ItemEntranceFee, CatalogID: 5, Name: "Museum", Quantity: 2, UnitPrice: 15}) // 30
	add(1, domain.LineItem{Type: domain.ItemMeal, CatalogID: 6, Name: "Dinner", Quantity: 2, UnitPrice: 25})      // 50
	add(2, domain.LineItem{Type: domain.ItemExtra, CatalogID: 7, Name: "SIM", Quantity: 2, UnitPrice: 10})        // 20

	return days
}

func TestSummarize_CategoryBuckets(t *testing.T) {
	days := itemizedDays(t)

	s := domain.Summarize(days, 2, 0, 0)

	assert.Equal(t, 400.0, s.LodgingTotal)
	assert.Equal(t, 100.0, s.ToursTotal)
	assert.Equal(t, 120.0, s.VehiclesTotal)
	assert.Equal(t, 150.0, s.GuidesTotal)
	assert.Equal(t, 30.0, s.EntranceFeeTotal)
	assert.Equal(t, 50.0, s.MealsTotal)
	assert.Equal(t, 20.0, s.ExtrasTotal)
}

func TestSummarize_BucketsSumToSubtotal(t *testing.T) {
	days := itemizedDays(t)

	s := domain.Summarize(days, 2, 0, 0)

	sum := s.LodgingTotal + s.ToursTotal + s.VehiclesTotal + s.GuidesTotal +
		s.EntranceFeeTotal + s.MealsTotal + s.ExtrasTotal
	assert.Equal(t, sum, s.Subtotal)
	assert.Equal(t, 870.0, s.Subtotal)
}

func TestSummarize_DiscountAndTotal(t *testing.T) {
	days := itemizedDays(t)

	s := domain.Summarize(days, 2, 0, 70)

	assert.Equal(t, 70.0, s.Discount)
	assert.Equal(t, 800.0, s.Total)
	assert.Equal(t, 400.0, s.PricePerPerson)
}

func TestSummarize_Deterministic(t *testing.T) {
	days := itemizedDays(t)

	first := domain.Summarize(days, 2, 1, 25)
	second := domain.Summarize(days, 2, 1, 25)

	assert.Equal(t, first, second, "two invocations over the same days must match exactly")
}

func TestSummarize_ZeroTravelers(t *testing.T) {
	days := itemizedDays(t)

	s := domain.Summarize(days, 0, 0, 0)

	assert.Equal(t, 0.0, s.PricePerPerson, "zero travelers yields 0, not a division error")
	assert.Equal(t, 870.0, s.Total, "totals are still meaningful")
}

func TestSummarize_EmptyDays(t *testing.T) {
	s := domain.Summarize(nil, 2, 0, 0)

	assert.Equal(t, 0.0, s.Subtotal)
	assert.Equal(t, 0.0, s.Total)
	assert.Equal(t, 0.0, s.PricePerPerson)
}
