package booking

type CreateBookingRequest struct {
	HotelID      int64  `json:"hotelId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`
	Rooms        int    `json:"rooms"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}
