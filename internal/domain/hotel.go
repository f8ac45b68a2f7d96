package domain

import "time"

type Hotel struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name" validate:"required"`
	Slug          string    `json:"slug"`
	Location      string    `json:"location"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	Province      string    `json:"province,omitempty"`
	Country       string    `json:"country,omitempty"`
	Description   string    `json:"description,omitempty" gorm:"type:text"`
	PricePerNight float64   `json:"price_per_night" validate:"gte=0"`
	Rating        float64   `json:"rating"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
