package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tourcraft/quote-builder/internal/domain"
)

// txdb extends db with transaction support. Both *pgxpool.Pool and pgx.Tx
// satisfy it (a transaction begins a nested savepoint), so the per-test
// rollback trick keeps working.
type txdb interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TierRepo persists the pricing tiers produced by a generation event. Tiers
// are immutable once written; a new generation replaces the previous set for
// the quote in one transaction so readers never observe a partial batch.
type TierRepo interface {
	// ReplaceForQuote deletes the quote's existing tiers and inserts the new
	// batch atomically, returning the persisted rows.
	ReplaceForQuote(ctx context.Context, quoteID uuid.UUID, tiers []domain.PricingTier) ([]domain.PricingTier, error)

	// ListByQuote returns the quote's current tiers ordered by band minimum.
	ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]domain.PricingTier, error)
}

// pgTierRepo is the Postgres implementation of TierRepo.
type pgTierRepo struct {
	db txdb
}

// NewTierRepo constructs a TierRepo backed by the provided db connection.
func NewTierRepo(db txdb) TierRepo {
	return &pgTierRepo{db: db}
}

const tierColumns = `id, quote_id, band_min, band_max,
	three_star, four_star, five_star, total, price_per_person, currency, created_at`

func (r *pgTierRepo) ReplaceForQuote(ctx context.Context, quoteID uuid.UUID, tiers []domain.PricingTier) ([]domain.PricingTier, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.TierRepo.ReplaceForQuote: begin: %w", err)
	}
	// Rollback after a successful commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	const del = `DELETE FROM pricing_tiers WHERE quote_id = @quote_id`
	if _, err := tx.Exec(ctx, del, pgx.NamedArgs{"quote_id": quoteID}); err != nil {
		return nil, fmt.Errorf("repo.TierRepo.ReplaceForQuote: delete: %w", err)
	}

	const ins = `
		INSERT INTO pricing_tiers (quote_id, band_min, band_max,
			three_star, four_star, five_star, total, price_per_person, currency)
		VALUES (@quote_id, @band_min, @band_max,
			@three_star, @four_star, @five_star, @total, @price_per_person, @currency)
		RETURNING ` + tierColumns

	persisted := make([]domain.PricingTier, 0, len(tiers))
	for _, t := range tiers {
		args := pgx.NamedArgs{
			"quote_id":         quoteID,
			"band_min":         t.Band.MinPax,
			"band_max":         t.Band.MaxPax,
			"three_star":       t.ThreeStar,
			"four_star":        t.FourStar,
			"five_star":        t.FiveStar,
			"total":            t.Total,
			"price_per_person": t.PricePerPerson,
			"currency":         t.Currency,
		}

		row := tx.QueryRow(ctx, ins, args)
		saved, err := scanTier(row)
		if err != nil {
			return nil, fmt.Errorf("repo.TierRepo.ReplaceForQuote: insert: %w", err)
		}
		persisted = append(persisted, saved)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repo.TierRepo.ReplaceForQuote: commit: %w", err)
	}
	return persisted, nil
}

func (r *pgTierRepo) ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]domain.PricingTier, error) {
	const q = `
		SELECT ` + tierColumns + `
		FROM pricing_tiers
		WHERE quote_id = @quote_id
		ORDER BY band_min`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"quote_id": quoteID})
	if err != nil {
		return nil, fmt.Errorf("repo.TierRepo.ListByQuote: %w", err)
	}
	defer rows.Close()

	var tiers []domain.PricingTier
	for rows.Next() {
		t, err := scanTier(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TierRepo.ListByQuote: scan: %w", err)
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TierRepo.ListByQuote: rows: %w", err)
	}

	return tiers, nil
}

// scanTier maps a single database row into a domain.PricingTier. The per-star
// JSONB columns are nullable; a SQL NULL leaves the pointer nil.
func scanTier(s scanner) (domain.PricingTier, error) {
	var (
		t       domain.PricingTier
		id      pgtype.UUID
		quoteID pgtype.UUID
	)

	err := s.Scan(&id, &quoteID, &t.Band.MinPax, &t.Band.MaxPax,
		&t.ThreeStar, &t.FourStar, &t.FiveStar, &t.Total, &t.PricePerPerson,
		&t.Currency, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PricingTier{}, domain.ErrNotFound
		}
		return domain.PricingTier{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.QuoteID = uuid.UUID(quoteID.Bytes)

	return t, nil
}
