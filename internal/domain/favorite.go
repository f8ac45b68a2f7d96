package domain

import "time"

type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_hotel_favorite"`
	HotelID   int64     `json:"hotel_id" gorm:"not null;index;uniqueIndex:idx_user_hotel_favorite"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}

func (Favorite) TableName() string {
	return "favorites"
}
