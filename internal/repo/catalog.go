package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tourcraft/quote-builder/internal/domain"
)

// CatalogRepo defines read access to the operator's service catalog.
// The catalog is maintained out of band; this API only consumes it.
type CatalogRepo interface {
	// ListByCities returns all active offerings in any of the given cities,
	// ordered by city, type, and name. Cities with no offerings simply
	// contribute nothing; an empty result is not an error.
	ListByCities(ctx context.Context, cities []string) ([]domain.CatalogService, error)

	// GetByIDs returns the active offerings with the given ids, in id order.
	// Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []int64) ([]domain.CatalogService, error)

	// LodgingStars reports which lodging star categories have at least one
	// active offering in any of the given cities.
	LodgingStars(ctx context.Context, cities []string) ([]domain.StarCategory, error)
}

// pgCatalogRepo is the Postgres implementation of CatalogRepo.
type pgCatalogRepo struct {
	db db
}

// NewCatalogRepo constructs a CatalogRepo backed by the provided db connection.
func NewCatalogRepo(db db) CatalogRepo {
	return &pgCatalogRepo{db: db}
}

const catalogColumns = `id, type, name, city, unit_price, unit_label,
	star_rating, capacity, duration, active, created_at, updated_at`

func (r *pgCatalogRepo) ListByCities(ctx context.Context, cities []string) ([]domain.CatalogService, error) {
	const q = `
		SELECT ` + catalogColumns + `
		FROM catalog_services
		WHERE active AND city = ANY(@cities)
		ORDER BY city, type, name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"cities": cities})
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListByCities: %w", err)
	}
	defer rows.Close()

	services, err := collectServices(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ListByCities: %w", err)
	}
	return services, nil
}

func (r *pgCatalogRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.CatalogService, error) {
	const q = `
		SELECT ` + catalogColumns + `
		FROM catalog_services
		WHERE active AND id = ANY(@ids)
		ORDER BY id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.GetByIDs: %w", err)
	}
	defer rows.Close()

	services, err := collectServices(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.GetByIDs: %w", err)
	}
	return services, nil
}

func (r *pgCatalogRepo) LodgingStars(ctx context.Context, cities []string) ([]domain.StarCategory, error) {
	const q = `
		SELECT DISTINCT star_rating
		FROM catalog_services
		WHERE active AND type = @type AND city = ANY(@cities)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"type": domain.ItemLodging, "cities": cities})
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.LodgingStars: %w", err)
	}
	defer rows.Close()

	seen := make(map[domain.StarCategory]bool, 3)
	var stars []domain.StarCategory
	for rows.Next() {
		var rating float64
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("repo.CatalogRepo.LodgingStars: scan: %w", err)
		}
		star := domain.StarFor(rating)
		if !seen[star] {
			seen[star] = true
			stars = append(stars, star)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.LodgingStars: rows: %w", err)
	}

	return stars, nil
}

func collectServices(rows pgx.Rows) ([]domain.CatalogService, error) {
	var services []domain.CatalogService
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return services, nil
}

// scanService maps a single database row into a domain.CatalogService.
func scanService(s scanner) (domain.CatalogService, error) {
	var svc domain.CatalogService

	err := s.Scan(&svc.ID, &svc.Type, &svc.Name, &svc.City, &svc.UnitPrice, &svc.UnitLabel,
		&svc.StarRating, &svc.Capacity, &svc.Duration, &svc.Active, &svc.CreatedAt, &svc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CatalogService{}, domain.ErrNotFound
		}
		return domain.CatalogService{}, err
	}

	return svc, nil
}
