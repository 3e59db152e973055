package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/domain"
	"github.com/aussiebroadwan/taskdeck/internal/taskdeck/store"
	"github.com/aussiebroadwan/taskdeck/pkg/cryptox"
)

var (
	ErrValidation         = errors.New("validation_error")
	ErrNotFound           = errors.New("not_found")
	ErrProviderMismatch   = errors.New("provider_mismatch")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNotImplemented     = errors.New("not_implemented")
)

// AuthService handles registration, password login and the profile view.
type AuthService struct {
	Store store.Store
}

// NormalizeEmail produces the canonical form emails are stored and
// looked up under.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a local account. The password is stored only as a
// salted argon2id hash and must never appear in logs.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.Identity, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return domain.Identity{}, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.Identity{}, err
	}

	user := domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
		Provider:     domain.ProviderLocal,
		CreatedAt:    time.Now(),
	}

	id, err := s.Store.Users().CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Identity{}, fmt.Errorf("%w: an account with that email already exists", ErrValidation)
		}
		return domain.Identity{}, err
	}

	user.ID = id
	return user.Identity(), nil
}

// Login verifies a local account's password and returns the minimal
// identity record used to establish a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Identity{}, fmt.Errorf("%w: no account found for that email", ErrNotFound)
		}
		return domain.Identity{}, err
	}

	if !user.IsLocal() {
		return domain.Identity{}, fmt.Errorf(
			"%w: this email is registered via %s", ErrProviderMismatch, user.Provider)
	}

	if user.PasswordHash == nil || cryptox.VerifyPassword(password, *user.PasswordHash) != nil {
		return domain.Identity{}, fmt.Errorf("%w: incorrect password", ErrInvalidCredentials)
	}

	return user.Identity(), nil
}

// Profile is the gamification-aware view of an account.
type Profile struct {
	domain.Identity
	Points         int      `json:"points"`
	Streak         int      `json:"streak"`
	CompletedCount int      `json:"completed_count"`
	Badges         []string `json:"badges"`
}

// Profile returns the user's identity together with points, streak,
// completion count and earned badges.
func (s *AuthService) Profile(ctx context.Context, userID int64) (Profile, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Profile{}, fmt.Errorf("%w: unknown user", ErrNotFound)
		}
		return Profile{}, err
	}

	completed, err := s.Store.Tasks().CountCompleted(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	return Profile{
		Identity:       user.Identity(),
		Points:         user.Points,
		Streak:         user.Streak,
		CompletedCount: completed,
		Badges:         earnedBadges(user.Points, user.Streak, completed),
	}, nil
}
