package catalog

import "errors"

var ErrHotelNotFound = errors.New("hotel not found")
