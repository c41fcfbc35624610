package repository

import (
	"context"

	"ai-reportgen-be/internal/model"

	"github.com/google/uuid"
)

// NotificationRepository covers the inbox rows and the type registry that
// maps bus events onto notification templates.
type NotificationRepository interface {
	// Inbox
	CreateNotification(ctx context.Context, notification *model.Notification) error
	GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, notificationID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error

	// Type registry
	GetNotificationTypeByCode(ctx context.Context, code string) (*model.NotificationType, error)
	GetUsersByRole(ctx context.Context, role string) ([]model.User, error) // resolves ROLE targets
}
