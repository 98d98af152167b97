package ports

import (
	"context"

	"github.com/9rib/marketplace-api/internal/core/domain"
)

// NotificationJob is a side effect queued after a state change. UserID drives
// the in-app notification, Email the outgoing mail; either may be empty.
type NotificationJob struct {
	UserID  string
	Email   string
	Type    string
	Title   string
	Message string
	Data    map[string]any
}

// CreateNotificationInput carries an admin-authored notification.
type CreateNotificationInput struct {
	UserID  string
	Type    string
	Title   string
	Message string
	Data    map[string]any
}

// ContactMessageInput carries a contact form submission.
type ContactMessageInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// NotificationService defines notification and contact use cases.
type NotificationService interface {
	Create(ctx context.Context, actor Actor, input CreateNotificationInput) (*domain.Notification, error)
	ListForUser(ctx context.Context, actor Actor, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, actor Actor, id string) error
	Deliver(ctx context.Context, job NotificationJob) error
}

// ContactService accepts contact form messages.
type ContactService interface {
	Submit(ctx context.Context, input ContactMessageInput) (*domain.ContactMessage, error)
}
