package domain

import (
	"fmt"
	"time"
)

// MaxTripNights bounds the total nights a single quote may cover.
// Anything above this is treated as operator input error, not a real trip.
const MaxTripNights = 365

// BuildDays expands a city/nights allocation into the ordered day timeline.
//
// Every city contributes one Day per night; the last city contributes one
// extra Day, the checkout/departure day, still located in that city for
// display but flagged so it never carries lodging. The full list therefore
// has total nights + 1 entries, numbered contiguously from 1, with day n
// dated start + (n−1) days.
//
// Returns ErrValidation when the allocation is empty, any city is blank,
// any nights count is below 1, or the total nights fall outside
// (0, MaxTripNights].
func BuildDays(alloc []CityNights, start time.Time) ([]Day, error) {
	if len(alloc) == 0 {
		return nil, fmt.Errorf("%w: allocation is empty", ErrValidation)
	}

	totalNights := 0
	for _, cn := range alloc {
		if cn.City == "" {
			return nil, fmt.Errorf("%w: allocation city is required", ErrValidation)
		}
		if cn.Nights < 1 {
			return nil, fmt.Errorf("%w: nights must be at least 1 for %s", ErrValidation, cn.City)
		}
		totalNights += cn.Nights
	}
	if totalNights > MaxTripNights {
		return nil, fmt.Errorf("%w: trip exceeds %d nights", ErrValidation, MaxTripNights)
	}

	days := make([]Day, 0, totalNights+1)
	for cityIdx, cn := range alloc {
		count := cn.Nights
		if cityIdx == len(alloc)-1 {
			count++ // checkout day
		}
		for i := 0; i < count; i++ {
			n := len(days) + 1
			days = append(days, Day{
				Number:   n,
				Date:     start.AddDate(0, 0, n-1),
				Location: cn.City,
				Items:    []LineItem{},
			})
		}
	}
	days[len(days)-1].Departure = true

	return days, nil
}

// HasCuratedItems reports whether any day already carries a line item.
// The timeline must never be regenerated over curated days; callers use
// this to surface a blocking conflict instead of silently discarding work.
func HasCuratedItems(days []Day) bool {
	for _, d := range days {
		if len(d.Items) > 0 {
			return true
		}
	}
	return false
}
