package domain

import "time"

// Review is unique per (user, hotel); the constraint is enforced at the
// store level and surfaced as a conflict on a second create attempt.
type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_user_hotel_review"`
	HotelID   int64     `json:"hotel_id" gorm:"not null;uniqueIndex:idx_user_hotel_review"`
	Rating    int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
