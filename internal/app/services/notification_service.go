package services

import (
	"context"
	"encoding/json"

	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/app/models/dto"
	"github.com/uniforum/uniforum/internal/app/repositories"
	"github.com/uniforum/uniforum/internal/pkg/logger"
)

// Pusher delivers a payload to a user's live sessions. Delivery is
// at-most-once and best-effort.
type Pusher interface {
	SendToUser(userID int64, payload []byte)
}

// NotificationService defines the interface for notification operations
type NotificationService interface {
	Notify(ctx context.Context, recipientID int64, notificationType, message string, relatedEntityID int64) error
	GetForUser(ctx context.Context, userID int64) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

type notificationServiceImpl struct {
	notificationRepo repositories.INotificationRepository
	pusher           Pusher
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(notificationRepo repositories.INotificationRepository, pusher Pusher) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		pusher:           pusher,
	}
}

func toNotificationResponse(n *models.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:              n.ID,
		Message:         n.Message,
		Type:            n.Type,
		RelatedEntityID: n.RelatedEntityID,
		IsRead:          n.IsRead,
		Timestamp:       n.Timestamp,
	}
}

// Notify persists a notification and then pushes it to the recipient's live
// sessions. The stored row is the source of truth; the push is
// fire-and-forget and its failure never surfaces to the caller.
func (s *notificationServiceImpl) Notify(ctx context.Context, recipientID int64, notificationType, message string, relatedEntityID int64) error {
	notification := &models.Notification{
		RecipientID:     recipientID,
		Message:         message,
		Type:            notificationType,
		RelatedEntityID: relatedEntityID,
	}
	if _, err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	go s.push(notification)
	return nil
}

func (s *notificationServiceImpl) push(notification *models.Notification) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("Recovered from panic during notification push")
		}
	}()

	payload, err := json.Marshal(toNotificationResponse(notification))
	if err != nil {
		logger.Error().Err(err).Int64("notificationID", notification.ID).
			Msg("Failed to encode notification payload")
		return
	}
	s.pusher.SendToUser(notification.RecipientID, payload)
}

// GetForUser returns a user's notifications, newest first
func (s *notificationServiceImpl) GetForUser(ctx context.Context, userID int64) ([]dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.GetByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, toNotificationResponse(n))
	}
	return responses, nil
}

// MarkRead marks one of the user's notifications as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks all of the user's notifications as read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
