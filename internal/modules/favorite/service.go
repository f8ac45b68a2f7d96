package favorite

import (
	"context"
	"errors"

	"hotelease/internal/domain"
	"hotelease/internal/repository"

	"gorm.io/gorm"
)

type FavoriteRepositoryInterface interface {
	Add(ctx context.Context, f *domain.Favorite) error
	Remove(ctx context.Context, userID, hotelID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error)
}

type HotelReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}

type Service struct {
	favorites FavoriteRepositoryInterface
	hotels    HotelReader
}

func NewService(favorites FavoriteRepositoryInterface, hotels HotelReader) *Service {
	return &Service{favorites: favorites, hotels: hotels}
}

func (s *Service) Add(ctx context.Context, userID, hotelID int64) (*domain.Favorite, error) {
	hotel, err := s.hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}

	f := &domain.Favorite{UserID: userID, HotelID: hotelID}
	if err := s.favorites.Add(ctx, f); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	f.Hotel = hotel
	return f, nil
}

func (s *Service) Remove(ctx context.Context, userID, hotelID int64) error {
	removed, err := s.favorites.Remove(ctx, userID, hotelID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFavorite
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	return s.favorites.ListByUser(ctx, userID)
}
