package ports

import (
	"context"

	"github.com/9rib/marketplace-api/internal/core/domain"
)

// NotificationRepository defines persistence operations for in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*domain.Notification, error)
	// MarkRead flags the notification as read when it belongs to userID.
	MarkRead(ctx context.Context, id, userID string) error
}

// ContactRepository stores contact form messages.
type ContactRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) error
}
