// Package service contains the business logic for the quote builder API.
// Services validate inputs, enforce the ledger and consistency rules, and
// orchestrate repo calls. No SQL lives here; services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tourcraft/quote-builder/internal/domain"
	"github.com/tourcraft/quote-builder/internal/repo"
)

// QuoteService implements business logic for Quote operations. Every ledger
// mutation follows the same shape: load the whole aggregate, apply the pure
// domain rules, recompute the summary, persist the whole aggregate. The
// summary is never edited in place.
type QuoteService struct {
	quotes repo.QuoteRepo
}

// NewQuoteService constructs a QuoteService backed by the provided QuoteRepo.
func NewQuoteService(quotes repo.QuoteRepo) *QuoteService {
	return &QuoteService{quotes: quotes}
}

// Create validates and persists a new draft quote. The day timeline is not
// generated here; that is a separate, explicitly requested step.
func (s *QuoteService) Create(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	if err := validateQuoteInput(quote); err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Create: %w", err)
	}

	quote.ID = uuid.New()
	quote.Reference = domain.NewReference(quote.ID)
	quote.Status = domain.StatusDraft
	quote.EndDate = quote.StartDate.AddDate(0, 0, quote.TotalNights())
	quote.Days = nil
	quote.TimelineSignature = ""
	quote.Summary = domain.Summarize(nil, quote.Adults, quote.Children, 0)

	created, err := s.quotes.Create(ctx, quote)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single quote by ID.
func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (domain.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.GetByID: %w", err)
	}
	return quote, nil
}

// List returns quotes, newest first.
func (s *QuoteService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Quote, error) {
	quotes, err := s.quotes.List(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("service.QuoteService.List: %w", err)
	}
	return quotes, nil
}

// Delete removes a quote by ID.
func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.quotes.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.QuoteService.Delete: %w", err)
	}
	return nil
}

// GenerateTimeline builds the quote's day list from its allocation and start
// date.
//
// Two guards protect curated work. Regenerating with an unchanged allocation
// and start date is a silent no-op: the stored timeline signature already
// matches, so the caller gets the current aggregate back. Regenerating after
// the routing changed while any day still holds line items returns
// domain.ErrConflict; the operator must clear the items first.
func (s *QuoteService) GenerateTimeline(ctx context.Context, id uuid.UUID) (domain.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.GenerateTimeline: %w", err)
	}

	sig := quote.AllocationSignature()
	if sig == quote.TimelineSignature && len(quote.Days) > 0 {
		return quote, nil
	}
	if domain.HasCuratedItems(quote.Days) {
		return domain.Quote{}, fmt.Errorf(
			"service.QuoteService.GenerateTimeline: %w: days still hold line items", domain.ErrConflict)
	}

	days, err := domain.BuildDays(quote.Allocation, quote.StartDate)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.GenerateTimeline: %w", err)
	}

	quote.Days = days
	quote.TimelineSignature = sig
	quote.EndDate = quote.StartDate.AddDate(0, 0, quote.TotalNights())
	quote.Summary = domain.Summarize(days, quote.Adults, quote.Children, quote.Summary.Discount)

	updated, err := s.quotes.Update(ctx, quote)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.GenerateTimeline: %w", err)
	}
	return updated, nil
}

// AddItem attaches a line item to the day with the given 1-based number,
// applies the lodging consistency rule, recomputes the summary, and persists.
func (s *QuoteService) AddItem(ctx context.Context, id uuid.UUID, dayNumber int, item domain.LineItem) (domain.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.AddItem: %w", err)
	}

	days, err := domain.AddItem(quote.Days, dayNumber-1, item, quote.Travelers())
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.AddItem: %w", err)
	}

	return s.persistDays(ctx, quote, days, "AddItem")
}

// RemoveItem removes the item at itemIndex from the day with the given
// 1-based number, retracting propagated lodging copies when applicable.
func (s *QuoteService) RemoveItem(ctx context.Context, id uuid.UUID, dayNumber, itemIndex int) (domain.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.RemoveItem: %w", err)
	}

	days, err := domain.RemoveItem(quote.Days, dayNumber-1, itemIndex)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.RemoveItem: %w", err)
	}

	return s.persistDays(ctx, quote, days, "RemoveItem")
}

// SetDiscount sets the flat discount amount and recomputes the totals.
func (s *QuoteService) SetDiscount(ctx context.Context, id uuid.UUID, discount float64) (domain.Quote, error) {
	if discount < 0 {
		return domain.Quote{}, fmt.Errorf(
			"service.QuoteService.SetDiscount: %w: discount must not be negative", domain.ErrValidation)
	}

	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.SetDiscount: %w", err)
	}

	quote.Summary = domain.Summarize(quote.Days, quote.Adults, quote.Children, discount)

	updated, err := s.quotes.Update(ctx, quote)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.SetDiscount: %w", err)
	}
	return updated, nil
}

// UpdateDayLocation renames the location of a single day. Existing items
// stay where they are; the lodging rule consults locations only at
// add/remove time.
func (s *QuoteService) UpdateDayLocation(ctx context.Context, id uuid.UUID, dayNumber int, location string) (domain.Quote, error) {
	if strings.TrimSpace(location) == "" {
		return domain.Quote{}, fmt.Errorf(
			"service.QuoteService.UpdateDayLocation: %w: location is required", domain.ErrValidation)
	}

	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.UpdateDayLocation: %w", err)
	}

	idx := dayNumber - 1
	if idx < 0 || idx >= len(quote.Days) {
		return domain.Quote{}, fmt.Errorf(
			"service.QuoteService.UpdateDayLocation: %w: no day %d", domain.ErrNotFound, dayNumber)
	}

	quote.Days[idx].Location = location

	updated, err := s.quotes.Update(ctx, quote)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.UpdateDayLocation: %w", err)
	}
	return updated, nil
}

// UpdateStatus advances the quote through its lifecycle. Allowed moves:
// draft → sent, sent → accepted or rejected. Anything else is a validation
// error.
func (s *QuoteService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (domain.Quote, error) {
	if !domain.KnownStatus(status) {
		return domain.Quote{}, fmt.Errorf(
			"service.QuoteService.UpdateStatus: %w: unknown status %q", domain.ErrValidation, status)
	}

	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.UpdateStatus: %w", err)
	}

	if !allowedTransition(quote.Status, status) {
		return domain.Quote{}, fmt.Errorf(
			"service.QuoteService.UpdateStatus: %w: cannot move from %q to %q",
			domain.ErrValidation, quote.Status, status)
	}

	quote.Status = status

	updated, err := s.quotes.Update(ctx, quote)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.UpdateStatus: %w", err)
	}
	return updated, nil
}

func allowedTransition(from, to string) bool {
	switch from {
	case domain.StatusDraft:
		return to == domain.StatusSent
	case domain.StatusSent:
		return to == domain.StatusAccepted || to == domain.StatusRejected
	}
	return false
}

// persistDays swaps in a new day list, recomputes the summary with the
// current discount, and writes the aggregate back.
func (s *QuoteService) persistDays(ctx context.Context, quote domain.Quote, days []domain.Day, op string) (domain.Quote, error) {
	quote.Days = days
	quote.Summary = domain.Summarize(days, quote.Adults, quote.Children, quote.Summary.Discount)

	updated, err := s.quotes.Update(ctx, quote)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.%s: %w", op, err)
	}
	return updated, nil
}

func validateQuoteInput(quote domain.Quote) error {
	if strings.TrimSpace(quote.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(quote.CustomerEmail) == "" {
		return fmt.Errorf("%w: customer email is required", domain.ErrValidation)
	}
	if quote.Adults < 0 || quote.Children < 0 {
		return fmt.Errorf("%w: traveler counts must not be negative", domain.ErrValidation)
	}
	if quote.Adults+quote.Children < 1 {
		return fmt.Errorf("%w: at least one traveler is required", domain.ErrValidation)
	}
	if quote.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", domain.ErrValidation)
	}
	if len(quote.Allocation) == 0 {
		return fmt.Errorf("%w: allocation is required", domain.ErrValidation)
	}
	for _, cn := range quote.Allocation {
		if strings.TrimSpace(cn.City) == "" {
			return fmt.Errorf("%w: allocation city is required", domain.ErrValidation)
		}
		if cn.Nights < 1 {
			return fmt.Errorf("%w: allocation nights must be at least 1", domain.ErrValidation)
		}
	}
	return nil
}
