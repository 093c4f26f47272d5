package dto

import "time"

// NotificationResponse is the shape pushed to live sessions and returned
// from the notification listing endpoint.
type NotificationResponse struct {
	ID              int64     `json:"id"`
	Message         string    `json:"message"`
	Type            string    `json:"type"`
	RelatedEntityID int64     `json:"relatedEntityId"`
	IsRead          bool      `json:"isRead"`
	Timestamp       time.Time `json:"timestamp"`
}
