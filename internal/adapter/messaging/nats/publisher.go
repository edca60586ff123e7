package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"balance-ledger/internal/core/domain"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subj string, data []byte) error
}

// EntryCreatedEvent is the payload published for every committed ledger entry.
type EntryCreatedEvent struct {
	EntryID       int64            `json:"entry_id"`
	IdentityID    int64            `json:"identity_id"`
	InvoiceNumber string           `json:"invoice_number"`
	Kind          domain.EntryKind `json:"kind"`
	Amount        int64            `json:"amount"`
	ServiceCode   *string          `json:"service_code,omitempty"`
	Description   string           `json:"description"`
	Balance       int64            `json:"balance_after"`
	CreatedOn     time.Time        `json:"created_on"`
}

// Publisher implements ports.EventPublisher over core NATS.
type Publisher struct {
	conn    Conn
	subject string
}

func NewPublisher(conn Conn, subject string) *Publisher {
	return &Publisher{conn: conn, subject: subject}
}

// PublishEntryCreated sends the event. Delivery is at-most-once; callers treat
// failures as non-fatal because the entry is already committed.
func (p *Publisher) PublishEntryCreated(ctx context.Context, entry *domain.LedgerEntry, balance int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(EntryCreatedEvent{
		EntryID:       entry.ID,
		IdentityID:    entry.IdentityID,
		InvoiceNumber: entry.InvoiceNumber,
		Kind:          entry.Kind,
		Amount:        entry.Amount,
		ServiceCode:   entry.ServiceCode,
		Description:   entry.Description,
		Balance:       balance,
		CreatedOn:     entry.CreatedOn,
	})
	if err != nil {
		return fmt.Errorf("encoding entry event: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publishing %s: %w", p.subject, err)
	}
	return nil
}

// Connect dials NATS. An empty url disables the event stream and returns nil, nil.
func Connect(url string, log zerolog.Logger) (*nats.Conn, error) {
	if url == "" {
		log.Info().Msg("NATS url not set, ledger events disabled")
		return nil, nil
	}

	nc, err := nats.Connect(url,
		nats.Name("balance-ledger"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}

	log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS connection established")
	return nc, nil
}

// HealthCheck implements ports.HealthChecker for NATS.
type HealthCheck struct {
	conn *nats.Conn
}

func NewHealthCheck(conn *nats.Conn) *HealthCheck {
	return &HealthCheck{conn: conn}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	if h.conn.Status() != nats.CONNECTED {
		return fmt.Errorf("nats status %s", h.conn.Status())
	}
	return h.conn.FlushWithContext(ctx)
}

func (h *HealthCheck) Name() string {
	return "nats"
}
