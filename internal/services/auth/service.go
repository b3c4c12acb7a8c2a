// Package auth implements sign-in, sessions and password reset for formdesk.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/louisbranch/formdesk/internal/platform/errors"
	"github.com/louisbranch/formdesk/internal/platform/id"
	"github.com/louisbranch/formdesk/internal/services/auth/mailer"
	"github.com/louisbranch/formdesk/internal/services/auth/storage"
	"github.com/louisbranch/formdesk/internal/services/auth/user"
)

const sessionIssuer = "formdesk"

// Config holds auth service configuration.
type Config struct {
	SessionSecret string        `env:"FORMDESK_SESSION_SECRET"`
	SessionTTL    time.Duration `env:"FORMDESK_SESSION_TTL" envDefault:"12h"`
	ResetTTL      time.Duration `env:"FORMDESK_RESET_TTL" envDefault:"1h"`
	ResetBaseURL  string        `env:"FORMDESK_RESET_BASE_URL" envDefault:"http://localhost:8090"`
}

// Validate reports configuration errors before the service starts.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SessionSecret) == "" {
		return apperrors.E(apperrors.KindConfig, "FORMDESK_SESSION_SECRET is required")
	}
	if c.SessionTTL <= 0 {
		return apperrors.E(apperrors.KindConfig, "session TTL must be positive")
	}
	if c.ResetTTL <= 0 {
		return apperrors.E(apperrors.KindConfig, "reset TTL must be positive")
	}
	return nil
}

// Service coordinates credentials, sessions and reset tokens.
type Service struct {
	store  storage.Store
	mailer mailer.Mailer
	cfg    Config
	now    func() time.Time
}

// Option adjusts service construction.
type Option func(*Service)

// WithClock overrides the service clock. Tests use it for deterministic
// expiries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New builds an auth service.
func New(store storage.Store, m mailer.Mailer, cfg Config, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if m == nil {
		m = mailer.Log{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	svc := &Service{store: store, mailer: m, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CreateUser registers an account with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, email, name, password string) (user.User, error) {
	email = user.NormalizeEmail(email)
	if email == "" {
		return user.User{}, apperrors.E(apperrors.KindInvalidInput, "email is required")
	}
	if len(password) < 8 {
		return user.User{}, apperrors.E(apperrors.KindInvalidInput, "password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	u := user.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// SignIn verifies credentials and issues a web session.
//
// Bad email and bad password are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = user.NormalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, apperrors.EK(apperrors.KindInvalidInput,
			"error.auth.missing_credentials", "email and password are required")
	}

	u, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Session{}, badCredentials()
		}
		return Session{}, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return Session{}, badCredentials()
	}
	return s.mintSession(u.ID, u.Email, u.Name)
}

func badCredentials() error {
	return apperrors.EK(apperrors.KindUnauthorized,
		"error.auth.bad_credentials", "email or password is incorrect")
}

// RequestPasswordReset records a single-use reset token and mails it.
//
// Unknown emails return nil so responses cannot be used to enumerate
// accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = user.NormalizeEmail(email)
	if email == "" {
		return apperrors.EK(apperrors.KindInvalidInput,
			"error.auth.missing_email", "email is required")
	}

	u, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load user: %w", err)
	}

	tokenID, err := id.NewID()
	if err != nil {
		return fmt.Errorf("generate reset token id: %w", err)
	}
	now := s.now()
	token := storage.ResetToken{
		ID:        tokenID,
		UserID:    u.ID,
		ExpiresAt: now.Add(s.cfg.ResetTTL),
		CreatedAt: now,
	}
	if err := s.store.CreateResetToken(ctx, token); err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}

	msg := mailer.Message{
		ID:        uuid.NewString(),
		Recipient: u.Email,
		Subject:   "Reset your formdesk password",
		Body: fmt.Sprintf("Visit %s/reset/%s within %s to choose a new password.",
			strings.TrimRight(s.cfg.ResetBaseURL, "/"), token.ID, s.cfg.ResetTTL),
		CreatedAt: now,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and replaces the user's password.
func (s *Service) ResetPassword(ctx context.Context, tokenID, newPassword string) error {
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return apperrors.E(apperrors.KindInvalidInput, "reset token is required")
	}
	if len(newPassword) < 8 {
		return apperrors.E(apperrors.KindInvalidInput, "password must be at least 8 characters")
	}

	token, err := s.store.ResetToken(ctx, tokenID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return invalidResetToken()
		}
		return fmt.Errorf("load reset token: %w", err)
	}
	now := s.now()
	if !token.UsedAt.IsZero() || now.After(token.ExpiresAt) {
		return invalidResetToken()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.ConsumeResetToken(ctx, token.ID, now); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return invalidResetToken()
		}
		return fmt.Errorf("consume reset token: %w", err)
	}
	if err := s.store.UpdatePassword(ctx, token.UserID, hash, now); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func invalidResetToken() error {
	return apperrors.EK(apperrors.KindUnauthorized,
		"error.auth.reset_token_invalid", "reset token is invalid or expired")
}
