package review

import (
	"context"
	"errors"

	"hotelease/internal/cache"
	"hotelease/internal/domain"
	"hotelease/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	reviews ReviewRepositoryInterface
	hotels  HotelReader
	cache   *cache.Cache
}

func NewService(reviews ReviewRepositoryInterface, hotels HotelReader, cache *cache.Cache) *Service {
	return &Service{reviews: reviews, hotels: hotels, cache: cache}
}

func (s *Service) Create(ctx context.Context, userID, hotelID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.hotels.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}

	rv := &domain.Review{
		UserID:  userID,
		HotelID: hotelID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return rv, nil
}

func (s *Service) ListByHotel(ctx context.Context, hotelID int64, limit, offset int) ([]domain.Review, int64, error) {
	if _, err := s.hotels.GetByID(ctx, hotelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrHotelNotFound
		}
		return nil, 0, err
	}
	return s.reviews.ListByHotel(ctx, hotelID, limit, offset)
}

func (s *Service) Update(ctx context.Context, userID, reviewID int64, req UpdateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	rv, err := s.ownedReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := s.reviews.Update(ctx, rv.ID, rv.HotelID, req.Rating, req.Comment); err != nil {
		return nil, err
	}

	rv.Rating = req.Rating
	rv.Comment = req.Comment
	s.cache.Invalidate(ctx)
	return rv, nil
}

func (s *Service) Delete(ctx context.Context, userID, reviewID int64) error {
	rv, err := s.ownedReview(ctx, userID, reviewID)
	if err != nil {
		return err
	}

	deleted, err := s.reviews.Delete(ctx, rv.ID, rv.HotelID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrReviewNotFound
	}

	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) ownedReview(ctx context.Context, userID, reviewID int64) (*domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if rv.UserID != userID {
		return nil, ErrNotOwner
	}
	return rv, nil
}
