package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

// ContactService stores messages from the public contact form.
type ContactService struct {
	repo ports.ContactRepository
	log  zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, log zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, log: log}
}

func (s *ContactService) Submit(ctx context.Context, in ports.ContactMessageInput) (*domain.ContactMessage, error) {
	m := &domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: time.Now().UTC(),
	}
	if m.Name == "" || m.Email == "" || m.Message == "" {
		return nil, fmt.Errorf("%w: name, email and message are required", domain.ErrInvalidInput)
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.log.Error().Err(err).Msg("failed to store contact message")
		return nil, fmt.Errorf("submit contact message: %w", err)
	}
	s.log.Info().Str("contact_id", m.ID).Msg("contact message received")
	return m, nil
}
