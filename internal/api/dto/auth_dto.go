package dto

import (
	"time"

	"github.com/givehub/marketplace-api/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest payload for login. Either identifier or one of email/username
// carries the account reference; the first non-empty wins.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

// ResolveIdentifier picks the effective login identifier.
func (r LoginRequest) ResolveIdentifier() string {
	switch {
	case r.Identifier != "":
		return r.Identifier
	case r.Email != "":
		return r.Email
	default:
		return r.Username
	}
}

// AuthResponse is the body shape for register and login.
type AuthResponse struct {
	Message   string               `json:"message"`
	User      domain.PublicAccount `json:"user"`
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
}
