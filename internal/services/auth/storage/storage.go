// Package storage defines the auth service persistence contracts.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/formdesk/internal/services/auth/user"
)

// ErrNotFound reports a missing record.
var ErrNotFound = errors.New("record not found")

// ResetToken is one single-use password reset grant.
type ResetToken struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	UsedAt    time.Time // zero until consumed
	CreatedAt time.Time
}

// MailMessage is one outbound mail recorded in the outbox.
type MailMessage struct {
	ID        string
	Recipient string
	Subject   string
	Body      string
	CreatedAt time.Time
}

// Store is the auth persistence boundary.
type Store interface {
	CreateUser(ctx context.Context, u user.User) error
	UserByEmail(ctx context.Context, email string) (user.User, error)
	UserByID(ctx context.Context, id string) (user.User, error)
	UpdatePassword(ctx context.Context, userID string, hash []byte, now time.Time) error

	CreateResetToken(ctx context.Context, token ResetToken) error
	ResetToken(ctx context.Context, id string) (ResetToken, error)
	ConsumeResetToken(ctx context.Context, id string, now time.Time) error

	EnqueueMail(ctx context.Context, msg MailMessage) error
	OutboxMessages(ctx context.Context) ([]MailMessage, error)
}
