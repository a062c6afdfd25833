package repo_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourcraft/quote-builder/internal/domain"
	"github.com/tourcraft/quote-builder/internal/repo"
)

// seedService inserts a catalog row directly; the catalog is maintained out
// of band, so the repo exposes no write path for tests to use.
func seedService(t *testing.T, tx pgx.Tx, svc domain.CatalogService) int64 {
	t.Helper()

	const q = `
		INSERT INTO catalog_services (type, name, city, unit_price, unit_label,
			star_rating, capacity, duration, active)
		VALUES (@type, @name, @city, @unit_price, @unit_label,
			@star_rating, @capacity, @duration, @active)
		RETURNING id`

	args := pgx.NamedArgs{
		"type":        svc.Type,
		"name":        svc.Name,
		"city":        svc.City,
		"unit_price":  svc.UnitPrice,
		"unit_label":  svc.UnitLabel,
		"star_rating": svc.StarRating,
		"capacity":    svc.Capacity,
		"duration":    svc.Duration,
		"active":      svc.Active,
	}

	var id int64
	require.NoError(t, tx.QueryRow(context.Background(), q, args).Scan(&id))
	return id
}

func hotel(city string, rating float64) domain.CatalogService {
	return domain.CatalogService{
		Type: domain.ItemLodging, Name: "Hotel " + city, City: city,
		UnitPrice: 80, UnitLabel: "per night", StarRating: rating, Active: true,
	}
}

func TestCatalogRepo_ListByCities(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewCatalogRepo(tx)
	ctx := context.Background()

	seedService(t, tx, hotel("Istanbul", 4.0))
	seedService(t, tx, domain.CatalogService{
		Type: domain.ItemTour, Name: "Bosphorus Cruise", City: "Istanbul",
		UnitPrice: 45, UnitLabel: "per person", Duration: "Half day", Active: true,
	})
	seedService(t, tx, hotel("Antalya", 5.0))

	inactive := hotel("Istanbul", 3.0)
	inactive.Active = false
	seedService(t, tx, inactive)

	services, err := r.ListByCities(ctx, []string{"Istanbul"})

	require.NoError(t, err)
	require.Len(t, services, 2, "inactive and other-city rows excluded")
	for _, svc := range services {
		assert.Equal(t, "Istanbul", svc.City)
		assert.True(t, svc.Active)
	}
}

func TestCatalogRepo_ListByCities_NoOfferings(t *testing.T) {
	r := repo.NewCatalogRepo(newTestTx(t))

	services, err := r.ListByCities(context.Background(), []string{"Atlantis"})

	require.NoError(t, err, "a city with no offerings is not an error")
	assert.Empty(t, services)
}

func TestCatalogRepo_GetByIDs(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewCatalogRepo(tx)
	ctx := context.Background()

	id1 := seedService(t, tx, hotel("Istanbul", 4.0))
	id2 := seedService(t, tx, hotel("Cappadocia", 4.6))

	services, err := r.GetByIDs(ctx, []int64{id1, id2, 999999})

	require.NoError(t, err)
	require.Len(t, services, 2, "unknown ids are skipped")
	assert.Equal(t, id1, services[0].ID)
	assert.Equal(t, id2, services[1].ID)
}

func TestCatalogRepo_LodgingStars(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewCatalogRepo(tx)
	ctx := context.Background()

	seedService(t, tx, hotel("Istanbul", 3.2)) // 3 star
	seedService(t, tx, hotel("Istanbul", 4.8)) // 5 star
	seedService(t, tx, hotel("Cappadocia", 4.9))
	seedService(t, tx, domain.CatalogService{ // not lodging, ignored
		Type: domain.ItemTour, Name: "Balloon Ride", City: "Istanbul",
		UnitPrice: 200, UnitLabel: "per person", Active: true,
	})

	stars, err := r.LodgingStars(ctx, []string{"Istanbul", "Cappadocia"})

	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.StarCategory{domain.ThreeStar, domain.FiveStar}, stars)
}

func TestCatalogRepo_LodgingStars_NoneAvailable(t *testing.T) {
	r := repo.NewCatalogRepo(newTestTx(t))

	stars, err := r.LodgingStars(context.Background(), []string{"Atlantis"})

	require.NoError(t, err)
	assert.Empty(t, stars)
}
