package ports

import "github.com/9rib/marketplace-api/internal/core/domain"

// Actor identifies the caller of a use case. It is built per request from the
// verified bearer token and passed explicitly; the zero value is anonymous.
type Actor struct {
	UserID string
	Role   domain.Role
	Email  string
}

// Authenticated reports whether the actor carries a verified identity.
func (a Actor) Authenticated() bool {
	return a.UserID != ""
}
