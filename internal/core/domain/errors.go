package domain

import "errors"

var (
	ErrApplicationNotFound    = errors.New("application not found")
	ErrProfileNotFound        = errors.New("profile not found")
	ErrArtisanNotFound        = errors.New("artisan not found")
	ErrNotificationNotFound   = errors.New("notification not found")
	ErrInvalidAction          = errors.New("Invalid action")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrApplicationWithoutUser = errors.New("application has no associated user")
	ErrUnauthenticated        = errors.New("authentication required")
	ErrForbidden              = errors.New("access forbidden")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserExists             = errors.New("user already exists")
	ErrInternal               = errors.New("internal error")
)
