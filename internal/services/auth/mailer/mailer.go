// Package mailer defines how the auth service hands off outbound mail.
package mailer

import (
	"context"
	"log"
	"time"

	"github.com/louisbranch/formdesk/internal/services/auth/storage"
)

// Message is one outbound mail.
type Message struct {
	ID        string
	Recipient string
	Subject   string
	Body      string
	CreatedAt time.Time
}

// Mailer delivers messages. Delivery is at-most-once from the service's view;
// implementations own retries.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Outbox records messages in the auth store's outbox table instead of
// talking to a mail provider, so deliveries stay observable and testable.
type Outbox struct {
	store storage.Store
}

// NewOutbox returns an outbox-backed mailer.
func NewOutbox(store storage.Store) *Outbox {
	return &Outbox{store: store}
}

// Send records the message.
func (o *Outbox) Send(ctx context.Context, msg Message) error {
	return o.store.EnqueueMail(ctx, storage.MailMessage{
		ID:        msg.ID,
		Recipient: msg.Recipient,
		Subject:   msg.Subject,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	})
}

// Log writes messages to the process log. Useful for local development when
// no store is wired.
type Log struct{}

// Send logs the message.
func (Log) Send(_ context.Context, msg Message) error {
	log.Printf("mail to %s: %s", msg.Recipient, msg.Subject)
	return nil
}
