package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tourcraft/quote-builder/internal/domain"
	"github.com/tourcraft/quote-builder/internal/planner"
	"github.com/tourcraft/quote-builder/internal/pricing"
	"github.com/tourcraft/quote-builder/internal/repo"
)

// ItineraryPlanner is the slice of the planner client the generation flow
// needs. Defined here so tests can substitute a stub without an HTTP server.
type ItineraryPlanner interface {
	PlanItinerary(ctx context.Context, req planner.Request) (planner.Draft, error)
}

// GenerationInput is everything the self-serve flow needs to produce a
// priced quote without operator curation.
type GenerationInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Adults        int
	Children      int
	StartDate     time.Time
	Allocation    []domain.CityNights
}

// GenerationResult is the outcome of one generation event.
type GenerationResult struct {
	Quote domain.Quote
	Tiers []domain.PricingTier
}

// GenerationService runs the self-serve pipeline: catalog lookup, planner
// call, draft conversion through the same timeline and ledger rules the
// interactive path uses, summary, tier calculation, persist. Everything is
// computed in memory first; nothing is written until the whole pipeline
// succeeded, so a planner failure leaves no partial quote behind.
type GenerationService struct {
	quotes  repo.QuoteRepo
	catalog repo.CatalogRepo
	config  repo.PricingConfigRepo
	tiers   repo.TierRepo
	planner ItineraryPlanner
	logger  *slog.Logger
}

// NewGenerationService constructs a GenerationService.
func NewGenerationService(
	quotes repo.QuoteRepo,
	catalog repo.CatalogRepo,
	config repo.PricingConfigRepo,
	tiers repo.TierRepo,
	planner ItineraryPlanner,
	logger *slog.Logger,
) *GenerationService {
	return &GenerationService{
		quotes:  quotes,
		catalog: catalog,
		config:  config,
		tiers:   tiers,
		planner: planner,
		logger:  logger,
	}
}

// Generate runs the full self-serve pipeline and returns the persisted quote
// with its pricing tiers.
func (s *GenerationService) Generate(ctx context.Context, input GenerationInput) (GenerationResult, error) {
	quote := domain.Quote{
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Adults:        input.Adults,
		Children:      input.Children,
		StartDate:     input.StartDate,
		Allocation:    input.Allocation,
	}
	if err := validateQuoteInput(quote); err != nil {
		return GenerationResult{}, fmt.Errorf("service.GenerationService.Generate: %w", err)
	}

	days, err := domain.BuildDays(quote.Allocation, quote.StartDate)
	if err != nil {
		return GenerationResult{}, fmt.Errorf("service.GenerationService.Generate: %w", err)
	}

	cities := make([]string, 0, len(quote.Allocation))
	for _, cn := range quote.Allocation {
		cities = append(cities, cn.City)
	}

	catalog, err := s.catalog.ListByCities(ctx, cities)
	if err != nil {
		return GenerationResult{}, fmt.Errorf("service.GenerationService.Generate: %w", err)
	}

	draft, err := s.planner.PlanItinerary(ctx, planner.Request{
		Allocation: quote.Allocation,
		StartDate:  quote.StartDate,
		Adults:     quote.Adults,
		Children:   quote.Children,
		Catalog:    catalog,
	})
	if err != nil {
		return GenerationResult{}, fmt.Errorf("service.GenerationService.Generate: %w", err)
	}

	days, err = s.applyDraft(days, draft, catalog, quote.Travelers())
	if err != nil {
		return GenerationResult{}, fmt.Errorf("service.GenerationService.Generate: %w", err)
	}

	quote.ID = uuid.New()
	quote.Reference = domain.NewReference(quote.ID)
	quote.Status = domain.StatusDraft
	quote.EndDate = quote.StartDate.AddDate(0, 0, quote.TotalNights())
	quote.Days = days
	quote.TimelineSignature = quote.AllocationSignature()
	quote.Summary = domain.Summarize(days, quote.Adults, quote.Children, 0)

	tier, err := s.calculateTier(ctx, quote, cities)
	if err != nil {
		return GenerationResult{}, fmt.Errorf("service.GenerationService.Generate: %w", err)
	}

	created, err := s.quotes.Create(ctx, quote)
	if err != nil {
		return GenerationResult{}, fmt.Errorf("service.GenerationService.Generate: %w", err)
	}

	persisted, err := s.tiers.ReplaceForQuote(ctx, created.ID, []domain.PricingTier{tier})
	if err != nil {
		// Undo the quote insert so a half-generated aggregate never lingers.
		if delErr := s.quotes.Delete(ctx, created.ID); delErr != nil {
			s.logger.Error("generation: cleanup after tier persist failure",
				"quote_id", created.ID, "error", delErr)
		}
		return GenerationResult{}, fmt.Errorf("service.GenerationService.Generate: %w", err)
	}

	s.logger.Info("generated itinerary",
		"quote_id", created.ID,
		"reference", created.Reference,
		"days", len(created.Days),
		"total", created.Summary.Total)

	return GenerationResult{Quote: created, Tiers: persisted}, nil
}

// ListTiers returns the quote's current pricing tiers.
func (s *GenerationService) ListTiers(ctx context.Context, quoteID uuid.UUID) ([]domain.PricingTier, error) {
	if _, err := s.quotes.GetByID(ctx, quoteID); err != nil {
		return nil, fmt.Errorf("service.GenerationService.ListTiers: %w", err)
	}

	tiers, err := s.tiers.ListByQuote(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("service.GenerationService.ListTiers: %w", err)
	}
	return tiers, nil
}

// applyDraft converts the planner's picks into line items through the same
// AddItem path the interactive ledger uses, so quantity semantics and the
// lodging consistency rule hold on generated quotes too. Unknown service ids
// and out-of-range day numbers are skipped, not fatal: the draft is advisory.
func (s *GenerationService) applyDraft(days []domain.Day, draft planner.Draft, catalog []domain.CatalogService, travelers int) ([]domain.Day, error) {
	byID := make(map[int64]domain.CatalogService, len(catalog))
	for _, svc := range catalog {
		byID[svc.ID] = svc
	}

	for _, dd := range draft.Days {
		idx := dd.Day - 1
		if idx < 0 || idx >= len(days) {
			s.logger.Warn("generation: draft names day outside timeline", "day", dd.Day)
			continue
		}

		for _, id := range dd.ServiceIDs {
			svc, ok := byID[id]
			if !ok {
				s.logger.Warn("generation: draft picked unknown service", "service_id", id)
				continue
			}
			if svc.Type == domain.ItemLodging {
				// Planners tend to repeat the hotel on every night of a
				// stay; the consistency rule already covers those days.
				if dayHasLodging(days[idx], svc.ID) {
					continue
				}
				if days[idx].Departure {
					continue
				}
			}

			item := itemFromService(svc, travelers)
			next, err := domain.AddItem(days, idx, item, travelers)
			if err != nil {
				return nil, err
			}
			days = next
		}
	}

	return days, nil
}

// itemFromService builds a LineItem with the default quantity for the
// service type: per-person types bill every traveler, fixed types one unit.
func itemFromService(svc domain.CatalogService, travelers int) domain.LineItem {
	item := domain.LineItem{
		Type:      svc.Type,
		CatalogID: svc.ID,
		Name:      svc.Name,
		UnitPrice: svc.UnitPrice,
		Quantity:  1,
		Duration:  svc.Duration,
	}

	switch svc.Type {
	case domain.ItemTour, domain.ItemEntranceFee, domain.ItemMeal:
		item.Quantity = travelers
	case domain.ItemExtra:
		item.UnitLabel = svc.UnitLabel
	}

	return item
}

func dayHasLodging(d domain.Day, catalogID int64) bool {
	for _, item := range d.Items {
		if item.Type == domain.ItemLodging && item.CatalogID == catalogID {
			return true
		}
	}
	return false
}

// calculateTier maps the summary buckets onto the calculator's cost model.
// Lodging is accommodation; vehicles and guides are fixed transport-like
// costs; tours, entrance fees, and extras vary per person alongside meals.
func (s *GenerationService) calculateTier(ctx context.Context, quote domain.Quote, cities []string) (domain.PricingTier, error) {
	stars, err := s.catalog.LodgingStars(ctx, cities)
	if err != nil {
		return domain.PricingTier{}, err
	}

	cfg, err := s.config.Get(ctx)
	if err != nil {
		return domain.PricingTier{}, err
	}

	breakdown := pricing.CostBreakdown{
		Accommodation: quote.Summary.LodgingTotal,
		Activity:      quote.Summary.ToursTotal + quote.Summary.EntranceFeeTotal + quote.Summary.ExtrasTotal,
		Meal:          quote.Summary.MealsTotal,
		Transport:     quote.Summary.VehiclesTotal + quote.Summary.GuidesTotal,
	}

	return pricing.Calculate(breakdown, quote.Travelers(), stars, cfg)
}
