package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

const notificationListLimit = 50

// Mailer sends a single HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// NotificationService implements in-app notifications and their delivery.
type NotificationService struct {
	repo     ports.NotificationRepository
	profiles ports.ProfileRepository
	mailer   Mailer
	log      zerolog.Logger
	now      func() time.Time
}

// NewNotificationService returns a NotificationService. mailer may be nil, in
// which case email side effects are skipped.
func NewNotificationService(
	repo ports.NotificationRepository,
	profiles ports.ProfileRepository,
	mailer Mailer,
	log zerolog.Logger,
) *NotificationService {
	return &NotificationService{repo: repo, profiles: profiles, mailer: mailer, log: log, now: time.Now}
}

// Create stores an admin-authored notification for a user.
func (s *NotificationService) Create(ctx context.Context, actor ports.Actor, in ports.CreateNotificationInput) (*domain.Notification, error) {
	if err := requireAdmin(ctx, s.profiles, actor); err != nil {
		return nil, err
	}
	if _, err := s.profiles.FindByID(ctx, in.UserID); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	n := s.newNotification(in.UserID, in.Type, in.Title, in.Message, in.Data)
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

// ListForUser returns the caller's most recent notifications.
func (s *NotificationService) ListForUser(ctx context.Context, actor ports.Actor, unreadOnly bool) ([]*domain.Notification, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	items, err := s.repo.ListByUser(ctx, actor.UserID, unreadOnly, notificationListLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// MarkRead flags one of the caller's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, actor ports.Actor, id string) error {
	if !actor.Authenticated() {
		return domain.ErrUnauthenticated
	}
	if err := s.repo.MarkRead(ctx, id, actor.UserID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// Deliver executes a queued side effect: an in-app notification when the job
// names a user, an email when it names an address and a mailer is configured.
// Both channels are attempted; their errors are joined.
func (s *NotificationService) Deliver(ctx context.Context, job ports.NotificationJob) error {
	var errs []error

	if job.UserID != "" {
		n := s.newNotification(job.UserID, job.Type, job.Title, job.Message, job.Data)
		if err := s.repo.Create(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("store notification: %w", err))
		}
	}

	if job.Email != "" && s.mailer != nil {
		if err := s.mailer.Send(ctx, job.Email, job.Title, renderEmail(job)); err != nil {
			errs = append(errs, fmt.Errorf("send email: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	s.log.Debug().Str("type", job.Type).Str("user_id", job.UserID).Msg("notification delivered")
	return nil
}

func (s *NotificationService) newNotification(userID, typ, title, message string, data map[string]any) *domain.Notification {
	return &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		Data:      data,
		CreatedAt: s.now().UTC(),
	}
}

func renderEmail(job ports.NotificationJob) string {
	var b strings.Builder
	b.WriteString("<h2>")
	b.WriteString(html.EscapeString(job.Title))
	b.WriteString("</h2><p>")
	b.WriteString(html.EscapeString(job.Message))
	b.WriteString("</p><p>L'équipe 9RIB</p>")
	return b.String()
}
