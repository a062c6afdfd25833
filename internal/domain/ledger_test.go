package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourcraft/quote-builder/internal/domain"
)

// twoCityDays builds the canonical 3-night Istanbul + 2-night Cappadocia
// timeline: 6 days, Day 6 being the Cappadocia departure day.
func twoCityDays(t *testing.T) []domain.Day {
	t.Helper()
	days, err := domain.BuildDays([]domain.CityNights{
		{City: "Istanbul", Nights: 3},
		{City: "Cappadocia", Nights: 2},
	}, time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return days
}

func lodgingItem(catalogID int64) domain.LineItem {
	return domain.LineItem{
		Type:      domain.ItemLodging,
		CatalogID: catalogID,
		Name:      "Hotel Sultania",
		Quantity:  1,
		UnitPrice: 80,
	}
}

// countOn returns how many items with the given catalog id sit on day i.
func countOn(days []domain.Day, i int, catalogID int64) int {
	n := 0
	for _, it := range days[i].Items {
		if it.CatalogID == catalogID {
			n++
		}
	}
	return n
}

// ---- quantity semantics ----------------------------------------------------

func TestAddItem_LodgingScalesByTravelers(t *testing.T) {
	days := twoCityDays(t)

	// 1 night × 80 per person per night × 4 travelers.
	got, err := domain.AddItem(days, 0, lodgingItem(7), 4)

	require.NoError(t, err)
	assert.Equal(t, 80.0, got[0].Items[0].UnitPrice)
	assert.Equal(t, 320.0, got[0].Items[0].TotalPrice)
	assert.Equal(t, 1, got[0].Items[0].Nights, "lodging nights mirror quantity")
}

func TestAddItem_TourBillsByQuantityOnly(t *testing.T) {
	days := twoCityDays(t)

	item := domain.LineItem{Type: domain.ItemTour, CatalogID: 12, Name: "Bosphorus Cruise", Quantity: 3, UnitPrice: 50}
	got, err := domain.AddItem(days, 1, item, 4)

	require.NoError(t, err)
	// Quantity already holds the billed traveler count, no extra scaling needed.
	assert.Equal(t, 150.0, got[1].Items[0].TotalPrice)
}

func TestAddItem_VehicleFixedPerDay(t *testing.T) {
	days := twoCityDays(t)

	item := domain.LineItem{Type: domain.ItemVehicle, CatalogID: 31, Name: "Minivan with driver", Quantity: 2, UnitPrice: 120}
	got, err := domain.AddItem(days, 0, item, 6)

	require.NoError(t, err)
	assert.Equal(t, 240.0, got[0].Items[0].TotalPrice, "vehicles never scale by traveler count")
}

func TestAddItem_GuideFixedPerDay(t *testing.T) {
	days := twoCityDays(t)

	item := domain.LineItem{Type: domain.ItemGuide, CatalogID: 44, Name: "Licensed guide", Quantity: 1, UnitPrice: 150}
	got, err := domain.AddItem(days, 2, item, 6)

	require.NoError(t, err)
	assert.Equal(t, 150.0, got[2].Items[0].TotalPrice)
}

func TestAddItem_ExtraFreeFormUnits(t *testing.T) {
	days := twoCityDays(t)

	item := domain.LineItem{Type: domain.ItemExtra, CatalogID: 90, Name: "SIM card", Quantity: 4, UnitPrice: 10, UnitLabel: "per card"}
	got, err := domain.AddItem(days, 0, item, 2)

	require.NoError(t, err)
	assert.Equal(t, 40.0, got[0].Items[0].TotalPrice)
}

// ---- structural errors -----------------------------------------------------

func TestAddItem_BadDayIndex(t *testing.T) {
	days := twoCityDays(t)

	_, err := domain.AddItem(days, 6, lodgingItem(1), 2)
	assert.ErrorIs(t, err, domain.ErrNotFound, "adding beyond the timeline must fail loudly")

	_, err = domain.AddItem(days, -1, lodgingItem(1), 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItem_InvalidItem(t *testing.T) {
	days := twoCityDays(t)

	cases := map[string]domain.LineItem{
		"unknown type":  {Type: "spa", Name: "x", Quantity: 1},
		"missing name":  {Type: domain.ItemTour, Quantity: 1},
		"zero quantity": {Type: domain.ItemTour, Name: "x", Quantity: 0},
		"negative unit": {Type: domain.ItemTour, Name: "x", Quantity: 1, UnitPrice: -5},
	}
	for name, item := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := domain.AddItem(days, 0, item, 2)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestRemoveItem_BadIndexes(t *testing.T) {
	days := twoCityDays(t)

	_, err := domain.RemoveItem(days, 9, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = domain.RemoveItem(days, 0, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound, "no item at index 0 on an empty day")
}

// ---- lodging propagation ---------------------------------------------------

// Adding a hotel on Day 1 must cover all three Istanbul nights (Days 1–3)
// and must not reach the Cappadocia days or the departure day.
func TestAddItem_LodgingPropagatesAcrossCityStay(t *testing.T) {
	days := twoCityDays(t)

	got, err := domain.AddItem(days, 0, lodgingItem(7), 2)

	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 1, countOn(got, i, 7), "day %d should carry the Istanbul hotel", i+1)
	}
	for i := 3; i < 6; i++ {
		assert.Equal(t, 0, countOn(got, i, 7), "day %d must not carry the Istanbul hotel", i+1)
	}
}

func TestAddItem_LodgingSkipsDepartureDay(t *testing.T) {
	days := twoCityDays(t)

	// Cappadocia hotel on Day 4: propagates to Day 5 but never to Day 6,
	// even though Day 6 shares the location string.
	got, err := domain.AddItem(days, 3, lodgingItem(8), 2)

	require.NoError(t, err)
	assert.Equal(t, 1, countOn(got, 3, 8))
	assert.Equal(t, 1, countOn(got, 4, 8))
	assert.Equal(t, 0, countOn(got, 5, 8), "departure day never carries lodging")
}

func TestAddItem_LodgingPropagationIsIdempotent(t *testing.T) {
	days := twoCityDays(t)

	got, err := domain.AddItem(days, 0, lodgingItem(7), 2)
	require.NoError(t, err)

	// Adding the same hotel again on another night of the stay appends on the
	// target day (explicit operator action is honored) but propagation must
	// decline every day that already carries it.
	got, err = domain.AddItem(got, 1, lodgingItem(7), 2)
	require.NoError(t, err)

	assert.Equal(t, 1, countOn(got, 0, 7))
	assert.Equal(t, 2, countOn(got, 1, 7), "explicit re-insertion is honored on the target day")
	assert.Equal(t, 1, countOn(got, 2, 7))
}

func TestRemoveItem_LodgingRetractsAcrossCityStay(t *testing.T) {
	days := twoCityDays(t)

	got, err := domain.AddItem(days, 0, lodgingItem(7), 2)
	require.NoError(t, err)

	got, err = domain.RemoveItem(got, 1, 0)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		assert.Equal(t, 0, countOn(got, i, 7), "day %d should be clear after retraction", i+1)
	}
}

func TestRemoveItem_RetractionLeavesOtherLodgingAlone(t *testing.T) {
	days := twoCityDays(t)

	got, err := domain.AddItem(days, 0, lodgingItem(7), 2)
	require.NoError(t, err)
	got, err = domain.AddItem(got, 3, lodgingItem(8), 2)
	require.NoError(t, err)

	got, err = domain.RemoveItem(got, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, countOn(got, 0, 7))
	assert.Equal(t, 1, countOn(got, 3, 8), "Cappadocia hotel untouched by Istanbul retraction")
	assert.Equal(t, 1, countOn(got, 4, 8))
}

func TestRemoveItem_NonLodgingDoesNotCascade(t *testing.T) {
	days := twoCityDays(t)

	tour := domain.LineItem{Type: domain.ItemTour, CatalogID: 12, Name: "Cruise", Quantity: 2, UnitPrice: 50}
	got, err := domain.AddItem(days, 0, tour, 2)
	require.NoError(t, err)
	got, err = domain.AddItem(got, 1, tour, 2)
	require.NoError(t, err)

	got, err = domain.RemoveItem(got, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, countOn(got, 0, 12))
	assert.Equal(t, 1, countOn(got, 1, 12), "removing a tour from one day leaves other days alone")
}

// ---- purity ----------------------------------------------------------------

func TestAddItem_DoesNotMutateInput(t *testing.T) {
	days := twoCityDays(t)

	_, err := domain.AddItem(days, 0, lodgingItem(7), 2)
	require.NoError(t, err)

	for i, d := range days {
		assert.Empty(t, d.Items, "input day %d must remain unchanged", i+1)
	}
}
