package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tourcraft/quote-builder/internal/domain"
	"github.com/tourcraft/quote-builder/internal/service"
)

// GenerateItineraryRequest is the POST /itineraries/generate body.
type GenerateItineraryRequest struct {
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	CustomerPhone string              `json:"customer_phone,omitempty"`
	Adults        int                 `json:"adults"`
	Children      int                 `json:"children"`
	StartDate     openapi_types.Date  `json:"start_date"`
	Allocation    []domain.CityNights `json:"allocation"`
}

// GenerateItineraryResponse returns the persisted quote with its tiers.
type GenerateItineraryResponse struct {
	Quote domain.Quote         `json:"quote"`
	Tiers []domain.PricingTier `json:"tiers"`
}

// ListTiersResponse is the GET /quotes/{id}/tiers envelope.
type ListTiersResponse struct {
	Data []domain.PricingTier `json:"data"`
}

// GenerateItinerary handles POST /itineraries/generate.
// Returns 502 when the planning service fails or replies with an unusable
// draft; nothing is persisted in that case.
func (s *Server) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	var body GenerateItineraryRequest
	if err := decodeBody(r, &body); err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	result, err := s.generation.Generate(r.Context(), service.GenerationInput{
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		CustomerPhone: body.CustomerPhone,
		Adults:        body.Adults,
		Children:      body.Children,
		StartDate:     body.StartDate.Time,
		Allocation:    body.Allocation,
	})
	if err != nil {
		respondServiceError(w, err, "quote not found")
		return
	}

	respondJSON(w, http.StatusCreated, GenerateItineraryResponse{
		Quote: result.Quote,
		Tiers: result.Tiers,
	})
}

// ListQuoteTiers handles GET /quotes/{id}/tiers.
func (s *Server) ListQuoteTiers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		respondJSON(w, http.StatusNotFound, notFoundBody("quote not found"))
		return
	}

	tiers, err := s.generation.ListTiers(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "quote not found")
		return
	}
	if tiers == nil {
		tiers = []domain.PricingTier{}
	}

	respondJSON(w, http.StatusOK, ListTiersResponse{Data: tiers})
}
