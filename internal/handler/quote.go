package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tourcraft/quote-builder/internal/domain"
)

// CreateQuoteRequest is the POST /quotes body.
type CreateQuoteRequest struct {
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	CustomerPhone string              `json:"customer_phone,omitempty"`
	Adults        int                 `json:"adults"`
	Children      int                 `json:"children"`
	StartDate     openapi_types.Date  `json:"start_date"`
	Allocation    []domain.CityNights `json:"allocation"`
}

// ListQuotesResponse is the GET /quotes envelope.
type ListQuotesResponse struct {
	Data       []domain.Quote `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// Pagination echoes the resolved paging parameters.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// CreateQuote handles POST /quotes.
func (s *Server) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var body CreateQuoteRequest
	if err := decodeBody(r, &body); err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	created, err := s.quotes.Create(r.Context(), domain.Quote{
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

	respondJSON(w, http.StatusCreated, created)
}

// ListQuotes handles GET /quotes.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListQuotes(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	quotes, err := s.quotes.List(r.Context(), params)
	if err != nil {
		respondServiceError(w, err, "quote not found")
		return
	}
	if quotes == nil {
		quotes = []domain.Quote{}
	}

	respondJSON(w, http.StatusOK, ListQuotesResponse{
		Data:       quotes,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit},
	})
}

// GetQuote handles GET /quotes/{id}.
func (s *Server) GetQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		respondJSON(w, http.StatusNotFound, notFoundBody("quote not found"))
		return
	}

	quote, err := s.quotes.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "quote not found")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// DeleteQuote handles DELETE /quotes/{id}.
func (s *Server) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		respondJSON(w, http.StatusNotFound, notFoundBody("quote not found"))
		return
	}

	if err := s.quotes.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "quote not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateQuoteStatus handles PUT /quotes/{id}/status.
func (s *Server) UpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		respondJSON(w, http.StatusNotFound, notFoundBody("quote not found"))
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	updated, err := s.quotes.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		respondServiceError(w, err, "quote not found")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// SetQuoteDiscount handles PUT /quotes/{id}/discount.
func (s *Server) SetQuoteDiscount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		respondJSON(w, http.StatusNotFound, notFoundBody("quote not found"))
		return
	}

	var body struct {
		Discount float64 `json:"discount"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	updated, err := s.quotes.SetDiscount(r.Context(), id, body.Discount)
	if err != nil {
		respondServiceError(w, err, "quote not found")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// GenerateQuoteTimeline handles POST /quotes/{id}/timeline.
// Returns 409 when regeneration would destroy curated line items.
func (s *Server) GenerateQuoteTimeline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		respondJSON(w, http.StatusNotFound, notFoundBody("quote not found"))
		return
	}

	quote, err := s.quotes.GenerateTimeline(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "quote not found")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// UpdateDayLocation handles PUT /quotes/{id}/days/{n}/location.
func (s *Server) UpdateDayLocation(w http.ResponseWriter, r *http.Request) {
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

	var body struct {
		Location string `json:"location"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	updated, err := s.quotes.UpdateDayLocation(r.Context(), id, dayNumber, body.Location)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, notFoundBody("day not found"))
			return
		}
		respondServiceError(w, err, "quote not found")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// queryInt parses an optional integer query parameter, returning nil when
// absent or malformed.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// pathInt parses an integer path parameter.
func pathInt(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	return v, err == nil
}
