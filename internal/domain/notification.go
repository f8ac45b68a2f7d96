package domain

import "time"

type NotificationType string

const (
	NotifInfo    NotificationType = "info"
	NotifSuccess NotificationType = "success"
	NotifWarning NotificationType = "warning"
)

// Notification is an advisory record: created as a side effect of booking
// and payment transitions, mutated only by the owner marking it read.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id" gorm:"not null;index"`
	Title     string           `json:"title"`
	Message   string           `json:"message,omitempty" gorm:"type:text"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
