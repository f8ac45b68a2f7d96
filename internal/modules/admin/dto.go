package admin

type CreateHotelRequest struct {
	Name          string  `json:"name" binding:"required"`
	Location      string  `json:"location" binding:"required"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	Province      string  `json:"province"`
	Country       string  `json:"country"`
	Description   string  `json:"description"`
	PricePerNight *float64 `json:"pricePerNight" binding:"required,gte=0"`
	Currency      string  `json:"currency"`
}

type UpdateHotelRequest struct {
	Name          *string  `json:"name,omitempty"`
	Location      *string  `json:"location,omitempty"`
	Address       *string  `json:"address,omitempty"`
	City          *string  `json:"city,omitempty"`
	Province      *string  `json:"province,omitempty"`
	Country       *string  `json:"country,omitempty"`
	Description   *string  `json:"description,omitempty"`
	PricePerNight *float64 `json:"pricePerNight,omitempty"`
	Currency      *string  `json:"currency,omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RefundRequest struct {
	Amount *float64 `json:"amount,omitempty"`
	Reason string   `json:"reason,omitempty"`
}
