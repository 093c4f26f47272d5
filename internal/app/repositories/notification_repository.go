package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
	"github.com/uniforum/uniforum/internal/pkg/logger"
)

// INotificationRepository defines the interface for notification storage
type INotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) (int64, error)
	GetByRecipient(ctx context.Context, recipientID int64) ([]*models.Notification, error)
	MarkRead(ctx context.Context, notificationID, recipientID int64) error
	MarkAllRead(ctx context.Context, recipientID int64) error
}

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) (int64, error) {
	sql, args, err := r.sb.Insert("notifications").
		Columns("recipient_id", "message", "type", "related_entity_id", "is_read").
		Values(notification.RecipientID, notification.Message, notification.Type,
			notification.RelatedEntityID, notification.IsRead).
		Suffix("RETURNING id, timestamp").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create notification query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&notification.ID, &notification.Timestamp)
	if err != nil {
		logger.Error().Err(err).Int64("recipientID", notification.RecipientID).
			Msg("Error executing create notification query")
		return 0, fmt.Errorf("error creating notification: %w", err)
	}
	return notification.ID, nil
}

// GetByRecipient retrieves a user's notifications, newest first
func (r *NotificationRepository) GetByRecipient(ctx context.Context, recipientID int64) ([]*models.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, recipient_id, message, type, related_entity_id, is_read, timestamp
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY timestamp DESC`, recipientID)
	if err != nil {
		logger.Error().Err(err).Int64("recipientID", recipientID).
			Msg("Error executing notifications by recipient query")
		return nil, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*models.Notification{}
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Message, &n.Type,
			&n.RelatedEntityID, &n.IsRead, &n.Timestamp); err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}
	return notifications, nil
}

// MarkRead marks a single notification as read. The recipient filter keeps
// users from acknowledging other people's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, recipientID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND recipient_id = $2`, notificationID, recipientID)
	if err != nil {
		logger.Error().Err(err).Int64("notificationID", notificationID).
			Msg("Error marking notification as read")
		return fmt.Errorf("error marking notification as read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// MarkAllRead marks all of a user's notifications as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE
		WHERE recipient_id = $1 AND is_read = FALSE`, recipientID)
	if err != nil {
		logger.Error().Err(err).Int64("recipientID", recipientID).
			Msg("Error marking notifications as read")
		return fmt.Errorf("error marking notifications as read: %w", err)
	}
	return nil
}
