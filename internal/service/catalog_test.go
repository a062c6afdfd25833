package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourcraft/quote-builder/internal/domain"
	"github.com/tourcraft/quote-builder/internal/service"
)

func TestCatalogService_Search(t *testing.T) {
	var gotCities []string
	svc := service.NewCatalogService(&mockCatalogRepo{
		listByCities: func(_ context.Context, cities []string) ([]domain.CatalogService, error) {
			gotCities = cities
			return istanbulCatalog(), nil
		},
	})

	services, err := svc.Search(context.Background(), "Istanbul", "")

	require.NoError(t, err)
	assert.Equal(t, []string{"Istanbul"}, gotCities)
	assert.Len(t, services, 3)
}

func TestCatalogService_Search_FiltersByType(t *testing.T) {
	svc := service.NewCatalogService(&mockCatalogRepo{
		listByCities: func(_ context.Context, _ []string) ([]domain.CatalogService, error) {
			return istanbulCatalog(), nil
		},
	})

	services, err := svc.Search(context.Background(), "Istanbul", "lodging")

	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, domain.ItemLodging, services[0].Type)
}

func TestCatalogService_Search_Invalid(t *testing.T) {
	svc := service.NewCatalogService(&mockCatalogRepo{})

	_, err := svc.Search(context.Background(), " ", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Search(context.Background(), "Istanbul", "spaceship")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalogService_Search_EmptyCity(t *testing.T) {
	svc := service.NewCatalogService(&mockCatalogRepo{
		listByCities: func(_ context.Context, _ []string) ([]domain.CatalogService, error) {
			return nil, nil
		},
	})

	services, err := svc.Search(context.Background(), "Atlantis", "")

	require.NoError(t, err, "a city with no offerings is not an error")
	assert.Empty(t, services)
}
