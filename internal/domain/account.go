package domain

import "time"

// Role is the closed set of authorization tiers.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role tag.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Account is the domain model for registered marketplace members.
// Email is stored lower-cased; PasswordHash never leaves the server.
type Account struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	Role         Role
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicAccount is the externally visible projection of an Account.
type PublicAccount struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips credentials from the account.
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:        a.ID,
		Email:     a.Email,
		Username:  a.Username,
		Role:      a.Role,
		Verified:  a.Verified,
		CreatedAt: a.CreatedAt,
	}
}
