package favorite

import "errors"

var (
	ErrHotelNotFound = errors.New("hotel not found")
	ErrNotFavorite   = errors.New("hotel is not in favorites")
	ErrDuplicate     = errors.New("hotel already in favorites")
)
