package domain

import "time"

// Role is the account type of a Profile.
type Role string

const (
	RoleClient  Role = "client"
	RoleArtisan Role = "artisan"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleArtisan, RoleAdmin:
		return true
	}
	return false
}

// Profile is the account record of any user.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Role         Role      `json:"role"`
	IsVerified   bool      `json:"is_verified"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the profile may moderate applications and accounts.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
