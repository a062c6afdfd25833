package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tourcraft/quote-builder/internal/domain"
	"github.com/tourcraft/quote-builder/internal/repo"
)

// CatalogService backs the operator's add-item picker with catalog search.
type CatalogService struct {
	catalog repo.CatalogRepo
}

// NewCatalogService constructs a CatalogService backed by the provided
// CatalogRepo.
func NewCatalogService(catalog repo.CatalogRepo) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// Search returns active offerings in the given city, optionally narrowed to
// one item type. A city with no offerings yields an empty list, not an error.
func (s *CatalogService) Search(ctx context.Context, city string, itemType string) ([]domain.CatalogService, error) {
	if strings.TrimSpace(city) == "" {
		return nil, fmt.Errorf("service.CatalogService.Search: %w: city is required", domain.ErrValidation)
	}
	if itemType != "" && !domain.ItemType(itemType).Valid() {
		return nil, fmt.Errorf("service.CatalogService.Search: %w: unknown item type %q", domain.ErrValidation, itemType)
	}

	services, err := s.catalog.ListByCities(ctx, []string{city})
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.Search: %w", err)
	}

	if itemType == "" {
		return services, nil
	}

	filtered := make([]domain.CatalogService, 0, len(services))
	for _, svc := range services {
		if svc.Type == domain.ItemType(itemType) {
			filtered = append(filtered, svc)
		}
	}
	return filtered, nil
}
