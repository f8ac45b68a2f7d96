package review

import "errors"

var (
	ErrHotelNotFound  = errors.New("hotel not found")
	ErrReviewNotFound = errors.New("review not found")
	ErrDuplicate      = errors.New("review already exists for this hotel")
	ErrNotOwner       = errors.New("review belongs to another user")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)
