package domain

import "time"

// Notification types emitted by the application workflow.
const (
	NotificationApplicationValidated = "application_validated"
	NotificationPaymentRequested     = "payment_requested"
	NotificationVerificationRequest  = "verification_requested"
	NotificationApplicationRejected  = "application_rejected"
)

// Notification is an in-app message addressed to one user.
type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
