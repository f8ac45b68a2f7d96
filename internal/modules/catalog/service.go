package catalog

import (
	"context"
	"errors"
	"fmt"

	"hotelease/internal/cache"
	"hotelease/internal/domain"
	"hotelease/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	hotels HotelReader
	cache  *cache.Cache
}

func NewService(hotels HotelReader, cache *cache.Cache) *Service {
	return &Service{hotels: hotels, cache: cache}
}

type ListResult struct {
	Hotels []domain.Hotel `json:"hotels"`
	Total  int64          `json:"total"`
}

func (s *Service) List(ctx context.Context, f repository.HotelFilter, limit, offset int) (*ListResult, error) {
	key := fmt.Sprintf("list:q=%s:loc=%s:minp=%.2f:maxp=%.2f:minr=%.1f:l=%d:o=%d",
		f.Query, f.Location, f.MinPrice, f.MaxPrice, f.MinRating, limit, offset)

	var cached ListResult
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	hotels, total, err := s.hotels.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}

	result := &ListResult{Hotels: hotels, Total: total}
	s.cache.Set(ctx, key, result)
	return result, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Hotel, error) {
	key := fmt.Sprintf("hotel:%d", id)

	var cached domain.Hotel
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	hotel, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}

	s.cache.Set(ctx, key, hotel)
	return hotel, nil
}
