// Package handler implements the HTTP handlers for the quote builder API.
// All handlers are methods on Server; methods are split into resource files
// (quote.go, catalog.go, generation.go, etc.) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tourcraft/quote-builder/internal/domain"
	"github.com/tourcraft/quote-builder/internal/service"
	"github.com/tourcraft/quote-builder/spec"
)

// QuoteServicer defines the business operations the quote handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type QuoteServicer interface {
	Create(ctx context.Context, quote domain.Quote) (domain.Quote, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Quote, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Quote, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateTimeline(ctx context.Context, id uuid.UUID) (domain.Quote, error)
	AddItem(ctx context.Context, id uuid.UUID, dayNumber int, item domain.LineItem) (domain.Quote, error)
	RemoveItem(ctx context.Context, id uuid.UUID, dayNumber, itemIndex int) (domain.Quote, error)
	SetDiscount(ctx context.Context, id uuid.UUID, discount float64) (domain.Quote, error)
	UpdateDayLocation(ctx context.Context, id uuid.UUID, dayNumber int, location string) (domain.Quote, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (domain.Quote, error)
}

// CatalogServicer defines the catalog search operation the handlers use.
type CatalogServicer interface {
	Search(ctx context.Context, city string, itemType string) ([]domain.CatalogService, error)
}

// GenerationServicer defines the self-serve generation operations.
type GenerationServicer interface {
	Generate(ctx context.Context, input service.GenerationInput) (service.GenerationResult, error)
	ListTiers(ctx context.Context, quoteID uuid.UUID) ([]domain.PricingTier, error)
}

// Server holds the handlers' dependencies. Methods live in resource files.
type Server struct {
	quotes     QuoteServicer
	catalog    CatalogServicer
	generation GenerationServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(quotes QuoteServicer, catalog CatalogServicer, generation GenerationServicer) *Server {
	return &Server{quotes: quotes, catalog: catalog, generation: generation}
}

// Routes mounts every API endpoint on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/quotes", func(r chi.Router) {
		r.Post("/", s.CreateQuote)
		r.Get("/", s.ListQuotes)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetQuote)
			r.Delete("/", s.DeleteQuote)
			r.Put("/status", s.UpdateQuoteStatus)
			r.Put("/discount", s.SetQuoteDiscount)
			r.Post("/timeline", s.GenerateQuoteTimeline)
			r.Get("/tiers", s.ListQuoteTiers)

			r.Route("/days/{n}", func(r chi.Router) {
				r.Put("/location", s.UpdateDayLocation)
				r.Post("/items", s.AddDayItem)
				r.Delete("/items/{itemIndex}", s.RemoveDayItem)
			})
		})
	})

	r.Get("/catalog/services", s.SearchCatalog)
	r.Post("/itineraries/generate", s.GenerateItinerary)

	return r
}

// GetOpenAPI serves the embedded API description.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}

// respondJSON writes v as the JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody parses the request body into dst, rejecting unknown fields.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// pathUUID parses the {id} path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}
