package domain

import "time"

// Provider values for user accounts. Only local accounts can log in
// with a password; the rest is reserved for identity-provider sign-in.
const (
	ProviderLocal = "local"
)

type User struct {
	ID               int64
	Email            string  // unique, case-normalized
	Name             string
	PasswordHash     *string // argon2 encoded; nil for non-local accounts
	Provider         string
	Points           int
	Streak           int
	LastCompleteDate *time.Time // calendar date of the most recent completion
	CreatedAt        time.Time
}

// IsLocal reports whether the account was registered with a password.
func (u User) IsLocal() bool { return u.Provider == ProviderLocal }

// Identity is the minimal record handed to the presentation layer after
// a successful login or registration.
type Identity struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// Identity strips the user down to its session-safe fields.
func (u User) Identity() Identity {
	return Identity{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Provider: u.Provider,
	}
}
