package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	apperrors "github.com/louisbranch/formdesk/internal/platform/errors"
	"github.com/louisbranch/formdesk/internal/services/auth/mailer"
	"github.com/louisbranch/formdesk/internal/services/auth/storage/sqlite"
)

func testConfig() Config {
	return Config{
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		ResetTTL:      time.Hour,
		ResetBaseURL:  "http://localhost:8090",
	}
}

func newTestService(t *testing.T, now func() time.Time) (*Service, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	opts := []Option{}
	if now != nil {
		opts = append(opts, WithClock(now))
	}
	svc, err := New(store, mailer.NewOutbox(store), testConfig(), opts...)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, store
}

func TestNewRequiresSessionSecret(t *testing.T) {
	store, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	cfg := testConfig()
	cfg.SessionSecret = "   "
	if _, err := New(store, nil, cfg); err == nil {
		t.Fatal("expected blank session secret to be rejected")
	}
}

func TestSignInIssuesValidSession(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "Pat@Example.com", "Pat", "hunter2hunter2"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	session, err := svc.SignIn(ctx, "pat@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected a session token")
	}

	parsed, err := svc.ValidateSession(session.Token)
	if err != nil {
		t.Fatalf("validate session: %v", err)
	}
	if parsed.Email != "pat@example.com" || parsed.UserID != session.UserID {
		t.Fatalf("unexpected session claims %+v", parsed)
	}
}

func TestSignInDoesNotDistinguishBadEmailFromBadPassword(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "pat@example.com", "Pat", "hunter2hunter2"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	_, badPassword := svc.SignIn(ctx, "pat@example.com", "wrong-password")
	_, badEmail := svc.SignIn(ctx, "ghost@example.com", "hunter2hunter2")

	if badPassword == nil || badEmail == nil {
		t.Fatal("expected both sign-ins to fail")
	}
	if apperrors.KindOf(badPassword) != apperrors.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %s", apperrors.KindOf(badPassword))
	}
	if badPassword.Error() != badEmail.Error() {
		t.Fatalf("errors should be indistinguishable: %q vs %q", badPassword, badEmail)
	}
}

func TestValidateSessionRejectsExpiredToken(t *testing.T) {
	current := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, func() time.Time { return current })
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "pat@example.com", "Pat", "hunter2hunter2"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	session, err := svc.SignIn(ctx, "pat@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	current = current.Add(2 * time.Hour)
	if _, err := svc.ValidateSession(session.Token); err == nil {
		t.Fatal("expected expired session to be rejected")
	}
}

func TestRequestPasswordResetRecordsTokenAndMail(t *testing.T) {
	svc, store := newTestService(t, nil)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "pat@example.com", "Pat", "hunter2hunter2"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := svc.RequestPasswordReset(ctx, "pat@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}

	messages, err := store.OutboxMessages(ctx)
	if err != nil {
		t.Fatalf("list outbox: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected one outbox message, got %d", len(messages))
	}
	msg := messages[0]
	if msg.Recipient != "pat@example.com" {
		t.Fatalf("unexpected recipient %q", msg.Recipient)
	}
	if !strings.Contains(msg.Body, "/reset/") {
		t.Fatalf("expected reset link in body, got %q", msg.Body)
	}
}

func TestRequestPasswordResetHidesUnknownEmails(t *testing.T) {
	svc, store := newTestService(t, nil)
	ctx := context.Background()

	if err := svc.RequestPasswordReset(ctx, "ghost@example.com"); err != nil {
		t.Fatalf("expected unknown email to report success, got %v", err)
	}
	messages, err := store.OutboxMessages(ctx)
	if err != nil {
		t.Fatalf("list outbox: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty outbox, got %d messages", len(messages))
	}
}

func TestResetPasswordFlow(t *testing.T) {
	svc, store := newTestService(t, nil)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "pat@example.com", "Pat", "hunter2hunter2"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := svc.RequestPasswordReset(ctx, "pat@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}

	messages, err := store.OutboxMessages(ctx)
	if err != nil || len(messages) != 1 {
		t.Fatalf("expected one outbox message, got %d (err %v)", len(messages), err)
	}
	tokenID := extractResetToken(t, messages[0].Body)

	if err := svc.ResetPassword(ctx, tokenID, "brand-new-password"); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	if _, err := svc.SignIn(ctx, "pat@example.com", "hunter2hunter2"); err == nil {
		t.Fatal("expected old password to stop working")
	}
	if _, err := svc.SignIn(ctx, "pat@example.com", "brand-new-password"); err != nil {
		t.Fatalf("sign in with new password: %v", err)
	}

	// Tokens are single use.
	if err := svc.ResetPassword(ctx, tokenID, "another-password-1"); err == nil {
		t.Fatal("expected consumed token to be rejected")
	}
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	current := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	svc, store := newTestService(t, func() time.Time { return current })
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "pat@example.com", "Pat", "hunter2hunter2"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := svc.RequestPasswordReset(ctx, "pat@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	messages, err := store.OutboxMessages(ctx)
	if err != nil || len(messages) != 1 {
		t.Fatalf("expected one outbox message, got %d (err %v)", len(messages), err)
	}
	tokenID := extractResetToken(t, messages[0].Body)

	current = current.Add(2 * time.Hour)
	err = svc.ResetPassword(ctx, tokenID, "brand-new-password")
	if err == nil {
		t.Fatal("expected expired token to be rejected")
	}
	if apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %s", apperrors.KindOf(err))
	}
}

func extractResetToken(t *testing.T, body string) string {
	t.Helper()
	idx := strings.Index(body, "/reset/")
	if idx < 0 {
		t.Fatalf("no reset link in %q", body)
	}
	rest := body[idx+len("/reset/"):]
	end := strings.IndexAny(rest, " \n")
	if end < 0 {
		return rest
	}
	return rest[:end]
}
