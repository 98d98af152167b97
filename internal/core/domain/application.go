package domain

import (
	"fmt"
	"time"
)

// ApplicationStatus represents the review state of an artisan application.
type ApplicationStatus string

const (
	StatusNotRead    ApplicationStatus = "not_read"
	StatusInProgress ApplicationStatus = "in_progress"
	StatusValidated  ApplicationStatus = "validated"
	StatusRejected   ApplicationStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusNotRead, StatusInProgress, StatusValidated, StatusRejected:
		return true
	}
	return false
}

// ApplicationAction is an admin decision applied to an application.
type ApplicationAction string

const (
	ActionValidate            ApplicationAction = "validate"
	ActionRequestPayment      ApplicationAction = "request_payment"
	ActionRequestVerification ApplicationAction = "request_verification"
	ActionReject              ApplicationAction = "reject"
)

// ParseAction converts raw input into an ApplicationAction.
func ParseAction(raw string) (ApplicationAction, error) {
	switch a := ApplicationAction(raw); a {
	case ActionValidate, ActionRequestPayment, ActionRequestVerification, ActionReject:
		return a, nil
	}
	return "", ErrInvalidAction
}

// transitions maps (current status, action) to the next status.
// Pairs absent from the table are illegal. validated+validate and
// rejected+reject are self-loops: the first re-runs the artisan upsert,
// both allow admin notes to be amended on a closed application.
var transitions = map[ApplicationStatus]map[ApplicationAction]ApplicationStatus{
	StatusNotRead: {
		ActionValidate:            StatusValidated,
		ActionRequestPayment:      StatusInProgress,
		ActionRequestVerification: StatusNotRead,
		ActionReject:              StatusRejected,
	},
	StatusInProgress: {
		ActionValidate:            StatusValidated,
		ActionRequestPayment:      StatusInProgress,
		ActionRequestVerification: StatusNotRead,
		ActionReject:              StatusRejected,
	},
	StatusValidated: {
		ActionValidate: StatusValidated,
	},
	StatusRejected: {
		ActionReject: StatusRejected,
	},
}

// Apply returns the status reached by firing action from s.
func (s ApplicationStatus) Apply(action ApplicationAction) (ApplicationStatus, error) {
	next, ok := transitions[s][action]
	if !ok {
		return "", fmt.Errorf("%w: cannot %s an application in status %s", ErrInvalidTransition, action, s)
	}
	return next, nil
}

// Application is a candidate's request to become a listed artisan.
type Application struct {
	ID              string            `json:"id"`
	UserID          *string           `json:"user_id,omitempty"`
	FullName        string            `json:"full_name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	CategoryID      string            `json:"category_id"`
	CityID          string            `json:"city_id"`
	BusinessName    string            `json:"business_name"`
	Description     string            `json:"description"`
	ExperienceYears int               `json:"experience_years"`
	Specialties     []string          `json:"specialties"`
	Status          ApplicationStatus `json:"status"`
	AdminNotes      string            `json:"admin_notes,omitempty"`
	ProcessedBy     *string           `json:"processed_by,omitempty"`
	ProcessedAt     *time.Time        `json:"processed_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// HasUser reports whether the application is bound to a registered account.
func (a *Application) HasUser() bool {
	return a.UserID != nil && *a.UserID != ""
}

// ApplicationEvent is the audit record of one processing decision.
type ApplicationEvent struct {
	ApplicationID string
	Action        ApplicationAction
	FromStatus    ApplicationStatus
	ToStatus      ApplicationStatus
	AdminID       string
	AdminNotes    string
	OccurredAt    time.Time
}
