package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

// DefaultExternalLoginDelay simulates the external provider round trip
const DefaultExternalLoginDelay = time.Second

// ExternalUser is the pre-verified account returned by the simulated Google login
var ExternalUser = contracts.User{
	ID:         "google-user-123",
	Name:       "Usuário Google",
	Email:      "usuario@gmail.com",
	IsVerified: true,
}

// Store implements registration, login and the current session on top of a Backend.
// Each operation is one read-modify-write of the whole users collection.
// ⭐ SSOT: user and session state change only through Store
type Store struct {
	backend       Backend
	logger        *logger.Logger
	externalDelay time.Duration
	newID         func() string
}

// NewStore creates a session store over backend
func NewStore(backend Backend, log *logger.Logger) *Store {
	return &Store{
		backend:       backend,
		logger:        log,
		externalDelay: DefaultExternalLoginDelay,
		newID:         uuid.NewString,
	}
}

// WithExternalLoginDelay overrides the simulated provider delay
func (s *Store) WithExternalLoginDelay(d time.Duration) *Store {
	s.externalDelay = d
	return s
}

// ValidatePasswords is the form-level check run before Register
func ValidatePasswords(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Register adds a new unverified user. Nothing is written on failure.
func (s *Store) Register(ctx context.Context, name, email, phone, address, password string) (contracts.User, error) {
	email = strings.TrimSpace(email)
	if strings.TrimSpace(name) == "" || email == "" {
		return contracts.User{}, ErrMissingField
	}
	if len([]rune(password)) < MinPasswordLength {
		return contracts.User{}, ErrPasswordTooShort
	}

	users, err := s.backend.LoadUsers(ctx)
	if err != nil {
		return contracts.User{}, fmt.Errorf("register: %w", err)
	}

	if indexOf(users, email) >= 0 {
		return contracts.User{}, ErrDuplicateEmail
	}

	user := contracts.User{
		ID:         s.newID(),
		Name:       name,
		Email:      email,
		Phone:      phone,
		Address:    address,
		Password:   password,
		IsVerified: false,
	}

	if err := s.backend.SaveUsers(ctx, append(users, user)); err != nil {
		return contracts.User{}, fmt.Errorf("register: %w", err)
	}

	s.logger.WithField("user_id", user.ID).Info("User registered")
	return user.Public(), nil
}

// VerifyEmail marks the user with email as verified. Verification is one-way.
func (s *Store) VerifyEmail(ctx context.Context, email string) error {
	users, err := s.backend.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("verify email: %w", err)
	}

	i := indexOf(users, strings.TrimSpace(email))
	if i < 0 {
		return ErrEmailNotFound
	}
	if users[i].IsVerified {
		return nil
	}

	users[i].IsVerified = true
	if err := s.backend.SaveUsers(ctx, users); err != nil {
		return fmt.Errorf("verify email: %w", err)
	}

	s.logger.WithField("user_id", users[i].ID).Info("User verified")
	return nil
}

// Login matches email and password exactly and opens a session for the user
func (s *Store) Login(ctx context.Context, email, password string) (contracts.User, error) {
	users, err := s.backend.LoadUsers(ctx)
	if err != nil {
		return contracts.User{}, fmt.Errorf("login: %w", err)
	}

	email = strings.TrimSpace(email)
	for _, u := range users {
		if u.Email == email && u.Password == password {
			return s.openSession(ctx, u)
		}
	}

	return contracts.User{}, ErrInvalidCredentials
}

// LoginWithExternalProvider simulates a social login: after the configured
// delay it opens a session for ExternalUser. ctx cancels the wait.
func (s *Store) LoginWithExternalProvider(ctx context.Context) (contracts.User, error) {
	if s.externalDelay > 0 {
		timer := time.NewTimer(s.externalDelay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return contracts.User{}, ctx.Err()
		case <-timer.C:
		}
	}

	return s.openSession(ctx, ExternalUser)
}

// ResetPassword reports whether email is registered. It changes nothing.
func (s *Store) ResetPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmailRequired
	}

	users, err := s.backend.LoadUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("reset password: %w", err)
	}

	if indexOf(users, email) < 0 {
		return "", ErrEmailNotFound
	}
	return ResetSentMessage(email), nil
}

// CurrentUser returns the session user, or nil when logged out
func (s *Store) CurrentUser(ctx context.Context) (*contracts.User, error) {
	user, err := s.backend.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

// Logout clears the session
func (s *Store) Logout(ctx context.Context) error {
	if err := s.backend.ClearSession(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *Store) openSession(ctx context.Context, u contracts.User) (contracts.User, error) {
	public := u.Public()
	if err := s.backend.SaveSession(ctx, public); err != nil {
		return contracts.User{}, fmt.Errorf("open session: %w", err)
	}

	s.logger.WithField("user_id", public.ID).Info("Session opened")
	return public, nil
}

func indexOf(users []contracts.User, email string) int {
	for i, u := range users {
		if u.Email == email {
			return i
		}
	}
	return -1
}
