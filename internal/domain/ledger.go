package domain

import "fmt"

// AddItem inserts a priced line item into the day at dayIndex (0-based) and
// returns a new day list; the input is never mutated. The item's TotalPrice
// is computed here, once, under the type-specific quantity rules.
//
// Lodging insertions additionally run the cross-day consistency rule: the
// same lodging is propagated to every other day in the same city, except the
// trip's departure day. Callers therefore get "one hotel selection per city
// stay" without re-adding lodging night by night.
//
// Returns ErrValidation for a malformed item and ErrNotFound for a day index
// outside the current timeline; the mutation is rejected loudly, never
// dropped, since a stale index usually means the timeline was regenerated
// under the caller.
func AddItem(days []Day, dayIndex int, item LineItem, travelers int) ([]Day, error) {
	if dayIndex < 0 || dayIndex >= len(days) {
		return nil, fmt.Errorf("%w: day %d does not exist", ErrNotFound, dayIndex+1)
	}
	if err := ValidateItem(item); err != nil {
		return nil, err
	}

	item.TotalPrice = ItemTotal(item.Type, item.UnitPrice, item.Quantity, travelers)
	if item.Type == ItemLodging {
		item.Nights = item.Quantity
	}

	next := cloneDays(days)
	next[dayIndex].Items = append(next[dayIndex].Items, item)

	if item.Type == ItemLodging {
		propagateLodging(next, dayIndex, item)
	}
	return next, nil
}

// RemoveItem deletes the item at itemIndex from the day at dayIndex and
// returns a new day list. Removing a lodging item runs the symmetric
// retraction: the same lodging disappears from every day of that city stay.
//
// Returns ErrNotFound for a day or item index that does not exist.
func RemoveItem(days []Day, dayIndex, itemIndex int) ([]Day, error) {
	if dayIndex < 0 || dayIndex >= len(days) {
		return nil, fmt.Errorf("%w: day %d does not exist", ErrNotFound, dayIndex+1)
	}
	if itemIndex < 0 || itemIndex >= len(days[dayIndex].Items) {
		return nil, fmt.Errorf("%w: item %d does not exist on day %d", ErrNotFound, itemIndex, dayIndex+1)
	}

	next := cloneDays(days)
	removed := next[dayIndex].Items[itemIndex]
	next[dayIndex].Items = append(next[dayIndex].Items[:itemIndex], next[dayIndex].Items[itemIndex+1:]...)

	if removed.Type == ItemLodging {
		retractLodging(next, dayIndex, removed)
	}
	return next, nil
}

// propagateLodging copies item onto every other day sharing the source day's
// location, skipping the departure day and any day that already carries the
// same lodging (same catalog id and type). The duplicate check makes the
// rule idempotent: re-running it against a consistent ledger is a no-op.
func propagateLodging(days []Day, sourceIndex int, item LineItem) {
	city := days[sourceIndex].Location
	for i := range days {
		if i == sourceIndex || days[i].Location != city || days[i].Departure {
			continue
		}
		if hasLodging(days[i], item.CatalogID) {
			continue
		}
		days[i].Items = append(days[i].Items, item)
	}
}

// retractLodging removes every copy of the given lodging from days sharing
// the source day's location, skipping the departure day.
func retractLodging(days []Day, sourceIndex int, item LineItem) {
	city := days[sourceIndex].Location
	for i := range days {
		if i == sourceIndex || days[i].Location != city || days[i].Departure {
			continue
		}
		kept := days[i].Items[:0]
		for _, it := range days[i].Items {
			if it.Type == ItemLodging && it.CatalogID == item.CatalogID {
				continue
			}
			kept = append(kept, it)
		}
		days[i].Items = kept
	}
}

func hasLodging(d Day, catalogID int64) bool {
	for _, it := range d.Items {
		if it.Type == ItemLodging && it.CatalogID == catalogID {
			return true
		}
	}
	return false
}

// cloneDays deep-copies the day list so ledger operations stay pure.
func cloneDays(days []Day) []Day {
	next := make([]Day, len(days))
	copy(next, days)
	for i := range next {
		items := make([]LineItem, len(days[i].Items))
		copy(items, days[i].Items)
		next[i].Items = items
	}
	return next
}
