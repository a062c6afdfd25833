package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tourcraft/quote-builder/internal/pricing"
)

// PricingConfigRepo provides the operator pricing configuration. The table
// holds at most one row; when the operator has never saved one, Get falls
// back to pricing.DefaultConfig so the calculator always has something to
// work with.
type PricingConfigRepo interface {
	// Get returns the stored configuration, or the documented defaults when
	// no row exists.
	Get(ctx context.Context) (pricing.Config, error)

	// Save upserts the single configuration row.
	Save(ctx context.Context, cfg pricing.Config) (pricing.Config, error)
}

// pgPricingConfigRepo is the Postgres implementation of PricingConfigRepo.
type pgPricingConfigRepo struct {
	db db
}

// NewPricingConfigRepo constructs a PricingConfigRepo backed by the provided
// db connection.
func NewPricingConfigRepo(db db) PricingConfigRepo {
	return &pgPricingConfigRepo{db: db}
}

const pricingConfigColumns = `markup_percent, tax_percent,
	three_star_multiplier, four_star_multiplier, five_star_multiplier,
	triple_discount_percent, single_supplement_type, single_supplement_value,
	currency`

func (r *pgPricingConfigRepo) Get(ctx context.Context) (pricing.Config, error) {
	const q = `SELECT ` + pricingConfigColumns + ` FROM pricing_config WHERE id = 1`

	row := r.db.QueryRow(ctx, q)
	cfg, err := scanPricingConfig(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pricing.DefaultConfig(), nil
		}
		return pricing.Config{}, fmt.Errorf("repo.PricingConfigRepo.Get: %w", err)
	}
	return cfg, nil
}

func (r *pgPricingConfigRepo) Save(ctx context.Context, cfg pricing.Config) (pricing.Config, error) {
	const q = `
		INSERT INTO pricing_config (id, markup_percent, tax_percent,
			three_star_multiplier, four_star_multiplier, five_star_multiplier,
			triple_discount_percent, single_supplement_type, single_supplement_value,
			currency)
		VALUES (1, @markup_percent, @tax_percent,
			@three_star_multiplier, @four_star_multiplier, @five_star_multiplier,
			@triple_discount_percent, @single_supplement_type, @single_supplement_value,
			@currency)
		ON CONFLICT (id) DO UPDATE
		SET markup_percent          = EXCLUDED.markup_percent,
		    tax_percent             = EXCLUDED.tax_percent,
		    three_star_multiplier   = EXCLUDED.three_star_multiplier,
		    four_star_multiplier    = EXCLUDED.four_star_multiplier,
		    five_star_multiplier    = EXCLUDED.five_star_multiplier,
		    triple_discount_percent = EXCLUDED.triple_discount_percent,
		    single_supplement_type  = EXCLUDED.single_supplement_type,
		    single_supplement_value = EXCLUDED.single_supplement_value,
		    currency                = EXCLUDED.currency,
		    updated_at              = now()
		RETURNING ` + pricingConfigColumns

	args := pgx.NamedArgs{
		"markup_percent":          cfg.MarkupPercent,
		"tax_percent":             cfg.TaxPercent,
		"three_star_multiplier":   cfg.ThreeStarMultiplier,
		"four_star_multiplier":    cfg.FourStarMultiplier,
		"five_star_multiplier":    cfg.FiveStarMultiplier,
		"triple_discount_percent": cfg.TripleDiscountPercent,
		"single_supplement_type":  string(cfg.SingleSupplementType),
		"single_supplement_value": cfg.SingleSupplementValue,
		"currency":                cfg.Currency,
	}

	row := r.db.QueryRow(ctx, q, args)
	saved, err := scanPricingConfig(row)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("repo.PricingConfigRepo.Save: %w", err)
	}
	return saved, nil
}

func scanPricingConfig(s scanner) (pricing.Config, error) {
	var (
		cfg            pricing.Config
		supplementType string
	)

	err := s.Scan(&cfg.MarkupPercent, &cfg.TaxPercent,
		&cfg.ThreeStarMultiplier, &cfg.FourStarMultiplier, &cfg.FiveStarMultiplier,
		&cfg.TripleDiscountPercent, &supplementType, &cfg.SingleSupplementValue,
		&cfg.Currency)
	if err != nil {
		return pricing.Config{}, err
	}

	cfg.SingleSupplementType = pricing.SingleSupplementType(supplementType)
	return cfg, nil
}
