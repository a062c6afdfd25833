package handler

import (
	"errors"
	"net/http"

	"github.com/tourcraft/quote-builder/internal/domain"
)

// AddItemRequest is the POST /quotes/{id}/days/{n}/items body.
type AddItemRequest struct {
	Type      string  `json:"type"`
	CatalogID int64   `json:"catalog_id,omitempty"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Duration  string  `json:"duration,omitempty"`
	UnitLabel string  `json:"unit_label,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

// AddDayItem handles POST /quotes/{id}/days/{n}/items.
// The day is addressed by its 1-based number as displayed to the operator.
func (s *Server) AddDayItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		respondJSON(w, http.StatusNotFound, notFoundBody("quote not found"))
		return
	}
	dayNumber, ok := pathInt(r, "n")
	if !ok {
		respondJSON(w, http.StatusNotFound, notFoundBody("day not found"))
		return
	}

	var body AddItemRequest
	if err := decodeBody(r, &body); err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	updated, err := s.quotes.AddItem(r.Context(), id, dayNumber, domain.LineItem{
		Type:      domain.ItemType(body.Type),
		CatalogID: body.CatalogID,
		Name:      body.Name,
		Quantity:  body.Quantity,
		UnitPrice: body.UnitPrice,
		Duration:  body.Duration,
		UnitLabel: body.UnitLabel,
		Notes:     body.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, notFoundBody("day not found"))
			return
		}
		respondServiceError(w, err, "quote not found")
		return
	}

	respondJSON(w, http.StatusCreated, updated)
}

// RemoveDayItem handles DELETE /quotes/{id}/days/{n}/items/{itemIndex}.
// Removing a lodging item also retracts its propagated copies.
func (s *Server) RemoveDayItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		respondJSON(w, http.StatusNotFound, notFoundBody("quote not found"))
		return
	}
	dayNumber, ok := pathInt(r, "n")
	if !ok {
		respondJSON(w, http.StatusNotFound, notFoundBody("day not found"))
		return
	}
	itemIndex, ok := pathInt(r, "itemIndex")
	if !ok {
		respondJSON(w, http.StatusNotFound, notFoundBody("item not found"))
		return
	}

	updated, err := s.quotes.RemoveItem(r.Context(), id, dayNumber, itemIndex)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, notFoundBody("item not found"))
			return
		}
		respondServiceError(w, err, "quote not found")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}
