package models

import "time"

// Notification defines the notification model based on the 'notifications'
// table. Rows are created only by the notification service and never mutated
// afterwards except for the read flag.
type Notification struct {
	ID              int64     `json:"id" db:"id"`
	RecipientID     int64     `json:"recipientId" db:"recipient_id"`
	Message         string    `json:"message" db:"message"`
	Type            string    `json:"type" db:"type" example:"OFFICIAL_POST_COMMENT"`
	RelatedEntityID int64     `json:"relatedEntityId" db:"related_entity_id"`
	IsRead          bool      `json:"isRead" db:"is_read"`
	Timestamp       time.Time `json:"timestamp" db:"timestamp"`
}
