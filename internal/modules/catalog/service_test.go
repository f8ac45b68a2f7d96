package catalog

import (
	"context"
	"testing"

	"hotelease/internal/database"
	"hotelease/internal/domain"
	"hotelease/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	hotels := []domain.Hotel{
		{Name: "Table Bay Grand", Slug: "table-bay-grand", Location: "Cape Town", Description: "Waterfront views", PricePerNight: 2400, Rating: 4.7, Currency: "ZAR"},
		{Name: "Umhlanga Pearl", Slug: "umhlanga-pearl", Location: "Durban", PricePerNight: 1450, Rating: 4.2, Currency: "ZAR"},
		{Name: "Karoo Rest Camp", Slug: "karoo-rest-camp", Location: "Beaufort West", PricePerNight: 650, Rating: 3.8, Currency: "ZAR"},
	}
	for i := range hotels {
		require.NoError(t, db.Create(&hotels[i]).Error)
	}

	return NewService(repository.NewHotelRepository(db), nil)
}

func TestListAll(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.List(context.Background(), repository.HotelFilter{}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	assert.Len(t, result.Hotels, 3)
}

func TestListFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	byLocation, err := svc.List(ctx, repository.HotelFilter{Location: "Cape"}, 20, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), byLocation.Total)
	assert.Equal(t, "Table Bay Grand", byLocation.Hotels[0].Name)

	// text search covers the description too
	byQuery, err := svc.List(ctx, repository.HotelFilter{Query: "Waterfront"}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), byQuery.Total)

	byPrice, err := svc.List(ctx, repository.HotelFilter{MinPrice: 600, MaxPrice: 1500}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byPrice.Total)

	byRating, err := svc.List(ctx, repository.HotelFilter{MinRating: 4.5}, 20, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), byRating.Total)
	assert.Equal(t, "Table Bay Grand", byRating.Hotels[0].Name)

	none, err := svc.List(ctx, repository.HotelFilter{Query: "nonexistent"}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), none.Total)
	assert.Empty(t, none.Hotels)
}

func TestGet(t *testing.T) {
	svc := newTestService(t)

	hotel, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "table-bay-grand", hotel.Slug)

	_, err = svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrHotelNotFound)
}
