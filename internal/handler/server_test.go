package handler_test

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tourcraft/quote-builder/internal/domain"
	"github.com/tourcraft/quote-builder/internal/handler"
	"github.com/tourcraft/quote-builder/internal/service"
)

// ---- mock QuoteServicer ----------------------------------------------------

type mockQuoteServicer struct {
	create            func(ctx context.Context, quote domain.Quote) (domain.Quote, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.Quote, error)
	list              func(ctx context.Context, p domain.PaginationParams) ([]domain.Quote, error)
	delete            func(ctx context.Context, id uuid.UUID) error
	generateTimeline  func(ctx context.Context, id uuid.UUID) (domain.Quote, error)
	addItem           func(ctx context.Context, id uuid.UUID, dayNumber int, item domain.LineItem) (domain.Quote, error)
	removeItem        func(ctx context.Context, id uuid.UUID, dayNumber, itemIndex int) (domain.Quote, error)
	setDiscount       func(ctx context.Context, id uuid.UUID, discount float64) (domain.Quote, error)
	updateDayLocation func(ctx context.Context, id uuid.UUID, dayNumber int, location string) (domain.Quote, error)
	updateStatus      func(ctx context.Context, id uuid.UUID, status string) (domain.Quote, error)
}

func (m *mockQuoteServicer) Create(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	return m.create(ctx, quote)
}

func (m *mockQuoteServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Quote, error) {
	return m.getByID(ctx, id)
}

func (m *mockQuoteServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.Quote, error) {
	return m.list(ctx, p)
}

func (m *mockQuoteServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

func (m *mockQuoteServicer) GenerateTimeline(ctx context.Context, id uuid.UUID) (domain.Quote, error) {
	return m.generateTimeline(ctx, id)
}

func (m *mockQuoteServicer) AddItem(ctx context.Context, id uuid.UUID, dayNumber int, item domain.LineItem) (domain.Quote, error) {
	return m.addItem(ctx, id, dayNumber, item)
}

func (m *mockQuoteServicer) RemoveItem(ctx context.Context, id uuid.UUID, dayNumber, itemIndex int) (domain.Quote, error) {
	return m.removeItem(ctx, id, dayNumber, itemIndex)
}

func (m *mockQuoteServicer) SetDiscount(ctx context.Context, id uuid.UUID, discount float64) (domain.Quote, error) {
	return m.setDiscount(ctx, id, discount)
}

func (m *mockQuoteServicer) UpdateDayLocation(ctx context.Context, id uuid.UUID, dayNumber int, location string) (domain.Quote, error) {
	return m.updateDayLocation(ctx, id, dayNumber, location)
}

func (m *mockQuoteServicer) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (domain.Quote, error) {
	return m.updateStatus(ctx, id, status)
}

// compile-time check: mockQuoteServicer must satisfy handler.QuoteServicer.
var _ handler.QuoteServicer = (*mockQuoteServicer)(nil)

// ---- mock CatalogServicer --------------------------------------------------

type mockCatalogServicer struct {
	search func(ctx context.Context, city, itemType string) ([]domain.CatalogService, error)
}

func (m *mockCatalogServicer) Search(ctx context.Context, city, itemType string) ([]domain.CatalogService, error) {
	return m.search(ctx, city, itemType)
}

var _ handler.CatalogServicer = (*mockCatalogServicer)(nil)

// ---- mock GenerationServicer -----------------------------------------------

type mockGenerationServicer struct {
	generate  func(ctx context.Context, input service.GenerationInput) (service.GenerationResult, error)
	listTiers func(ctx context.Context, quoteID uuid.UUID) ([]domain.PricingTier, error)
}

func (m *mockGenerationServicer) Generate(ctx context.Context, input service.GenerationInput) (service.GenerationResult, error) {
	return m.generate(ctx, input)
}

func (m *mockGenerationServicer) ListTiers(ctx context.Context, quoteID uuid.UUID) ([]domain.PricingTier, error) {
	return m.listTiers(ctx, quoteID)
}

var _ handler.GenerationServicer = (*mockGenerationServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with whichever service mocks the test needs.
// Unused slots may be nil; a handler that reaches a nil service is a test bug.
func newHTTPHandler(quotes handler.QuoteServicer, catalog handler.CatalogServicer, generation handler.GenerationServicer) http.Handler {
	return handler.NewServer(quotes, catalog, generation).Routes()
}

// quoteFixture returns a fully-populated quote with a generated timeline.
func quoteFixture() domain.Quote {
	id := uuid.New()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	q := domain.Quote{
		ID:            id,
		Reference:     domain.NewReference(id),
		CustomerName:  "Maria Santos",
		CustomerEmail: "maria@example.com",
		Adults:        2,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 5),
		Allocation: []domain.CityNights{
			{City: "Istanbul", Nights: 3},
			{City: "Cappadocia", Nights: 2},
		},
		Status:    domain.StatusDraft,
		CreatedAt: start,
		UpdatedAt: start,
	}
	q.Days, _ = domain.BuildDays(q.Allocation, q.StartDate)
	q.TimelineSignature = q.AllocationSignature()
	return q
}

// tierFixture returns a pricing tier for the given quote and band.
func tierFixture(quoteID uuid.UUID, band domain.PaxBand) domain.PricingTier {
	return domain.PricingTier{
		ID:      uuid.New(),
		QuoteID: quoteID,
		Band:    band,
		FourStar: &domain.StarPricing{
			Double:           218.5,
			Triple:           196.65,
			SingleSupplement: 109.25,
		},
		Total:          437,
		PricePerPerson: 218.5,
		Currency:       "USD",
		CreatedAt:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}
