package booking

import "errors"

var (
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidDates     = errors.New("invalid booking dates")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrAlreadyCompleted = errors.New("booking already completed")

	ErrInvalidStatusFilter = errors.New("invalid status filter")
)
