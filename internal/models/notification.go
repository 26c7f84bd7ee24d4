package models

import "time"

type NotificationType string

const (
	NotifyInfo    NotificationType = "Info"
	NotifyWarning NotificationType = "Warning"
	NotifyAlert   NotificationType = "Alert"
	NotifySuccess NotificationType = "Success"
)

func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotifyInfo, NotifyWarning, NotifyAlert, NotifySuccess:
		return true
	}
	return false
}

// Notification belongs to exactly one user. Delivery is storage only,
// there is no push channel.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"notification_id"`
	UserID    uint             `gorm:"index;not null" json:"user_id"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Type      NotificationType `gorm:"size:20;not null;default:Info" json:"type"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
