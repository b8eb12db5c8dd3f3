package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"notification_id"`
	ToUserID  uuid.UUID        `json:"to_user_id" db:"to_user_id"`
	LeadID    uuid.UUID        `json:"lead_id" db:"lead_id"`
	Type      NotificationType `json:"type" db:"type"`
	Message   string           `json:"message" db:"message"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifMention  NotificationType = "mention"
	NotifAssigned NotificationType = "assigned"
)
