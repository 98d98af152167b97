package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

// NotificationQueue accepts side-effect jobs for asynchronous delivery.
type NotificationQueue interface {
	Enqueue(job ports.NotificationJob)
}

// ApplicationService implements the artisan application workflow.
type ApplicationService struct {
	apps     ports.ApplicationRepository
	profiles ports.ProfileRepository
	tx       ports.Transactor
	events   ports.ApplicationEventRepository
	queue    NotificationQueue
	log      zerolog.Logger
	now      func() time.Time
}

func NewApplicationService(
	apps ports.ApplicationRepository,
	profiles ports.ProfileRepository,
	tx ports.Transactor,
	events ports.ApplicationEventRepository,
	queue NotificationQueue,
	log zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		apps:     apps,
		profiles: profiles,
		tx:       tx,
		events:   events,
		queue:    queue,
		log:      log,
		now:      time.Now,
	}
}

// Submit stores a new application in status not_read. Authenticated callers
// are bound to the application; anonymous callers are identified by email only.
func (s *ApplicationService) Submit(ctx context.Context, actor ports.Actor, in ports.SubmitApplicationInput) (*ports.SubmitResult, error) {
	specialties := make([]string, 0, len(in.Specialties))
	for _, sp := range in.Specialties {
		if sp = strings.TrimSpace(sp); sp != "" {
			specialties = append(specialties, sp)
		}
	}

	app := &domain.Application{
		ID:              uuid.NewString(),
		FullName:        strings.TrimSpace(in.FullName),
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:           strings.TrimSpace(in.Phone),
		CategoryID:      in.CategoryID,
		CityID:          in.CityID,
		BusinessName:    strings.TrimSpace(in.BusinessName),
		Description:     strings.TrimSpace(in.Description),
		ExperienceYears: in.ExperienceYears,
		Specialties:     specialties,
		Status:          domain.StatusNotRead,
		CreatedAt:       s.now().UTC(),
	}
	if actor.Authenticated() {
		uid := actor.UserID
		app.UserID = &uid
	}

	if err := s.apps.Create(ctx, app); err != nil {
		s.log.Error().Err(err).Str("email", app.Email).Msg("failed to store application")
		return nil, fmt.Errorf("submit application: %w", err)
	}

	s.log.Info().
		Str("application_id", app.ID).
		Bool("anonymous", !app.HasUser()).
		Str("category_id", app.CategoryID).
		Msg("application submitted")

	return &ports.SubmitResult{ID: app.ID, Status: string(app.Status), CreatedAt: app.CreatedAt}, nil
}

// Process applies one admin action to an application. For validate, the
// status change, the artisan profile upsert and the role promotion commit
// together or not at all.
func (s *ApplicationService) Process(ctx context.Context, actor ports.Actor, in ports.ProcessApplicationInput) (*ports.ProcessResult, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if err := requireAdmin(ctx, s.profiles, actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ApplicationID) == "" {
		return nil, fmt.Errorf("%w: applicationId is required", domain.ErrInvalidInput)
	}
	action, err := domain.ParseAction(in.Action)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.FindByID(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: load application: %v", domain.ErrInternal, err)
	}

	from := app.Status
	next, err := from.Apply(action)
	if err != nil {
		return nil, err
	}
	if action == domain.ActionValidate && !app.HasUser() {
		return nil, domain.ErrApplicationWithoutUser
	}

	now := s.now().UTC()
	adminID := actor.UserID
	app.Status = next
	app.AdminNotes = in.AdminNotes
	app.ProcessedBy = &adminID
	app.ProcessedAt = &now

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, repos ports.TxRepositories) error {
		if err := repos.Applications.UpdateDecision(ctx, app); err != nil {
			return fmt.Errorf("update application: %w", err)
		}
		if action != domain.ActionValidate {
			return nil
		}

		listing := domain.ArtisanProfileFromApplication(app, now)
		listing.ID = uuid.NewString()
		if err := repos.Artisans.UpsertByUser(ctx, listing); err != nil {
			return fmt.Errorf("upsert artisan profile: %w", err)
		}
		if err := repos.Profiles.UpdateRole(ctx, *app.UserID, domain.RoleArtisan); err != nil {
			return fmt.Errorf("promote user role: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).
			Str("application_id", app.ID).
			Str("action", string(action)).
			Msg("application processing rolled back")
		return nil, fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}

	s.audit(ctx, &domain.ApplicationEvent{
		ApplicationID: app.ID,
		Action:        action,
		FromStatus:    from,
		ToStatus:      next,
		AdminID:       adminID,
		AdminNotes:    in.AdminNotes,
		OccurredAt:    now,
	})
	s.notify(app, action)

	s.log.Info().
		Str("application_id", app.ID).
		Str("action", string(action)).
		Str("from", string(from)).
		Str("to", string(next)).
		Str("admin_id", adminID).
		Msg("application processed")

	return &ports.ProcessResult{Success: true, Message: processedMessage(action)}, nil
}

// List returns the admin review queue.
func (s *ApplicationService) List(ctx context.Context, actor ports.Actor, in ports.ListApplicationsInput) (*ports.ListApplicationsResult, error) {
	if err := requireAdmin(ctx, s.profiles, actor); err != nil {
		return nil, err
	}
	if in.Status != "" && !domain.ApplicationStatus(in.Status).Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, in.Status)
	}

	page, limit := normalizePage(in.Page, in.Limit)
	items, total, err := s.apps.List(ctx, ports.ListApplicationsFilter{
		Status: in.Status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	return &ports.ListApplicationsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Get returns a single application for review.
func (s *ApplicationService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Application, error) {
	if err := requireAdmin(ctx, s.profiles, actor); err != nil {
		return nil, err
	}
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

// History returns the audit trail of an application. Without an audit store
// the trail is empty.
func (s *ApplicationService) History(ctx context.Context, actor ports.Actor, id string) ([]*domain.ApplicationEvent, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	if s.events == nil {
		return []*domain.ApplicationEvent{}, nil
	}
	events, err := s.events.History(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: load history: %v", domain.ErrInternal, err)
	}
	return events, nil
}

// audit records the decision. Failures are logged, not returned: the
// decision is already committed.
func (s *ApplicationService) audit(ctx context.Context, event *domain.ApplicationEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.InsertEvent(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("application_id", event.ApplicationID).Msg("failed to insert audit event")
	}
}

func (s *ApplicationService) notify(app *domain.Application, action domain.ApplicationAction) {
	if s.queue == nil {
		return
	}
	s.queue.Enqueue(applicationJob(app, action))
}

func applicationJob(app *domain.Application, action domain.ApplicationAction) ports.NotificationJob {
	job := ports.NotificationJob{
		Email: app.Email,
		Data: map[string]any{
			"application_id": app.ID,
			"status":         string(app.Status),
		},
	}
	if app.HasUser() {
		job.UserID = *app.UserID
	}
	if app.AdminNotes != "" {
		job.Data["admin_notes"] = app.AdminNotes
	}

	switch action {
	case domain.ActionValidate:
		job.Type = domain.NotificationApplicationValidated
		job.Title = "Candidature validée"
		job.Message = "Félicitations, votre profil artisan est désormais visible sur 9RIB."
	case domain.ActionRequestPayment:
		job.Type = domain.NotificationPaymentRequested
		job.Title = "Paiement requis"
		job.Message = "Votre candidature est en cours de traitement. Merci de procéder au paiement pour finaliser votre inscription."
	case domain.ActionRequestVerification:
		job.Type = domain.NotificationVerificationRequest
		job.Title = "Vérification requise"
		job.Message = "Merci de compléter ou de corriger les informations de votre candidature."
	case domain.ActionReject:
		job.Type = domain.NotificationApplicationRejected
		job.Title = "Candidature refusée"
		job.Message = "Votre candidature n'a pas été retenue."
		if app.AdminNotes != "" {
			job.Message += " Motif : " + app.AdminNotes
		}
	}
	return job
}

func processedMessage(action domain.ApplicationAction) string {
	switch action {
	case domain.ActionValidate:
		return "Application validated and artisan profile created"
	case domain.ActionRequestPayment:
		return "Payment requested"
	case domain.ActionRequestVerification:
		return "Verification requested"
	default:
		return "Application rejected"
	}
}
