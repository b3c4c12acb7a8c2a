// Package sqlite implements auth persistence over SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	sqlitemigrate "github.com/louisbranch/formdesk/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/formdesk/internal/services/auth/storage"
	"github.com/louisbranch/formdesk/internal/services/auth/storage/sqlite/migrations"
	"github.com/louisbranch/formdesk/internal/services/auth/user"
)

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store implements auth persistence over SQLite.
//
// A single SQLite file backs identity state so sign-in, reset tokens and the
// mail outbox share the same transaction and visibility boundaries.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens an auth SQLite store and applies bundled migrations.
//
// This keeps startup and schema evolution in one place, instead of requiring
// callers to coordinate migrations independently.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}

	if err := sqlitemigrate.Apply(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// OpenInMemory opens a throwaway store for tests.
func OpenInMemory() (*Store, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Every pooled connection would get its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)
	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateUser persists a user record.
func (s *Store) CreateUser(ctx context.Context, u user.User) error {
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, user.NormalizeEmail(u.Email), u.Name, u.PasswordHash,
		toMillis(u.CreatedAt), toMillis(u.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UserByEmail loads a user by normalized email.
func (s *Store) UserByEmail(ctx context.Context, email string) (user.User, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, email, name, password_hash, created_at, updated_at
FROM users WHERE email = ?`, user.NormalizeEmail(email))

	var u user.User
	var createdAt, updatedAt int64
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

// UserByID loads a user by id.
func (s *Store) UserByID(ctx context.Context, id string) (user.User, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, email, name, password_hash, created_at, updated_at
FROM users WHERE id = ?`, id)

	var u user.User
	var createdAt, updatedAt int64
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

// UpdatePassword replaces a user's password hash.
func (s *Store) UpdatePassword(ctx context.Context, userID string, hash []byte, now time.Time) error {
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, toMillis(now), userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CreateResetToken persists a single-use reset token.
func (s *Store) CreateResetToken(ctx context.Context, token storage.ResetToken) error {
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO reset_tokens (id, user_id, expires_at, used_at, created_at)
VALUES (?, ?, ?, NULL, ?)`,
		token.ID, token.UserID, toMillis(token.ExpiresAt), toMillis(token.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

// ResetToken loads a reset token by id.
func (s *Store) ResetToken(ctx context.Context, id string) (storage.ResetToken, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, user_id, expires_at, used_at, created_at
FROM reset_tokens WHERE id = ?`, id)

	var token storage.ResetToken
	var expiresAt, createdAt int64
	var usedAt sql.NullInt64
	if err := row.Scan(&token.ID, &token.UserID, &expiresAt, &usedAt, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return storage.ResetToken{}, storage.ErrNotFound
		}
		return storage.ResetToken{}, fmt.Errorf("scan reset token: %w", err)
	}
	token.ExpiresAt = fromMillis(expiresAt)
	token.CreatedAt = fromMillis(createdAt)
	if usedAt.Valid {
		token.UsedAt = fromMillis(usedAt.Int64)
	}
	return token, nil
}

// ConsumeResetToken marks a token used exactly once.
func (s *Store) ConsumeResetToken(ctx context.Context, id string, now time.Time) error {
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE reset_tokens SET used_at = ? WHERE id = ? AND used_at IS NULL`,
		toMillis(now), id)
	if err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("consume reset token rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// EnqueueMail records an outbound message in the outbox.
func (s *Store) EnqueueMail(ctx context.Context, msg storage.MailMessage) error {
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO mail_outbox (id, recipient, subject, body, created_at)
VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.Recipient, msg.Subject, msg.Body, toMillis(msg.CreatedAt))
	if err != nil {
		return fmt.Errorf("enqueue mail: %w", err)
	}
	return nil
}

// OutboxMessages lists recorded messages oldest first.
func (s *Store) OutboxMessages(ctx context.Context) ([]storage.MailMessage, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, recipient, subject, body, created_at
FROM mail_outbox ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var messages []storage.MailMessage
	for rows.Next() {
		var msg storage.MailMessage
		var createdAt int64
		if err := rows.Scan(&msg.ID, &msg.Recipient, &msg.Subject, &msg.Body, &createdAt); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		msg.CreatedAt = fromMillis(createdAt)
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox rows: %w", err)
	}
	return messages, nil
}
