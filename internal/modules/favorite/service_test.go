package favorite

import (
	"context"
	"testing"

	"hotelease/internal/database"
	"hotelease/internal/domain"
	"hotelease/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*Service, int64) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	hotels := repository.NewHotelRepository(db)
	hotel := &domain.Hotel{Name: "Drakensberg View", Location: "Underberg", PricePerNight: 950}
	require.NoError(t, hotels.Create(context.Background(), hotel))

	return NewService(repository.NewFavoriteRepository(db), hotels), hotel.ID
}

func TestAddAndList(t *testing.T) {
	svc, hotelID := setupService(t)
	ctx := context.Background()

	f, err := svc.Add(ctx, 1, hotelID)
	require.NoError(t, err)
	assert.Equal(t, hotelID, f.HotelID)
	require.NotNil(t, f.Hotel)

	favorites, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, hotelID, favorites[0].HotelID)
}

func TestAdd_DuplicateConflicts(t *testing.T) {
	svc, hotelID := setupService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, 1, hotelID)
	require.NoError(t, err)

	_, err = svc.Add(ctx, 1, hotelID)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestAdd_UnknownHotel(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Add(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrHotelNotFound)
}

func TestRemove(t *testing.T) {
	svc, hotelID := setupService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, 1, hotelID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, 1, hotelID))
	assert.ErrorIs(t, svc.Remove(ctx, 1, hotelID), ErrNotFavorite)

	favorites, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}
