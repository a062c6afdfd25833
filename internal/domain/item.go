package domain

import "fmt"

// ItemType classifies a LineItem and determines its quantity semantics.
type ItemType string

// The seven bookable service types. Every LineItem carries exactly one.
const (
	ItemLodging     ItemType = "lodging"
	ItemTour        ItemType = "tour"
	ItemVehicle     ItemType = "vehicle"
	ItemGuide       ItemType = "guide"
	ItemEntranceFee ItemType = "entrance_fee"
	ItemMeal        ItemType = "meal"
	ItemExtra       ItemType = "extra"
)

// ItemTypes lists all valid item types in display order.
var ItemTypes = []ItemType{
	ItemLodging, ItemTour, ItemVehicle, ItemGuide,
	ItemEntranceFee, ItemMeal, ItemExtra,
}

// Valid reports whether t is one of the seven known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemLodging, ItemTour, ItemVehicle, ItemGuide, ItemEntranceFee, ItemMeal, ItemExtra:
		return true
	}
	return false
}

// LineItem is a single priced service attached to a Day. TotalPrice is
// computed once at insertion time by ItemTotal and only changes through a
// full summary recomputation, never in place.
//
// Type-dependent metadata: Nights is set only for lodging, Duration only for
// tours, UnitLabel only for extras. The remaining fields are common.
type LineItem struct {
	Type      ItemType `json:"type"`
	CatalogID int64    `json:"catalog_id"`
	Name      string   `json:"name"`

	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`

	Nights    int    `json:"nights,omitempty"`     // lodging: nights at this line
	Duration  string `json:"duration,omitempty"`   // tours: e.g. "Full day"
	UnitLabel string `json:"unit_label,omitempty"` // extras: free-form unit
	Notes     string `json:"notes,omitempty"`
}

// ItemTotal computes the total price of an item under the type-specific
// quantity rules:
//
//   - lodging: quantity is nights; unit price is per person per night, so the
//     total also scales by the full traveler count.
//   - tour, entrance_fee, meal: quantity is the billed traveler count.
//   - vehicle, guide: quantity is days/units at a fixed per-unit price.
//   - extra: quantity is a free-form unit count.
func ItemTotal(t ItemType, unitPrice float64, quantity, travelers int) float64 {
	if t == ItemLodging {
		return unitPrice * float64(quantity) * float64(travelers)
	}
	return unitPrice * float64(quantity)
}

// ValidateItem checks the fields every insertion must satisfy.
func ValidateItem(item LineItem) error {
	if !item.Type.Valid() {
		return fmt.Errorf("%w: unknown item type %q", ErrValidation, item.Type)
	}
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", ErrValidation)
	}
	if item.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if item.UnitPrice < 0 {
		return fmt.Errorf("%w: unit price must not be negative", ErrValidation)
	}
	return nil
}
