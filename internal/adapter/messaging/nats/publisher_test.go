package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"balance-ledger/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subject = subj
	f.data = data
	return nil
}

func TestPublisher_PublishEntryCreated(t *testing.T) {
	conn := &fakeConn{}
	pub := NewPublisher(conn, "ledger.entry.created")

	svc := &domain.Service{ID: 2, Code: "PLN", Name: "Listrik", Tariff: 10000}
	at := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	entry := domain.NewPaymentEntry(9, svc, "INV15102026-004", at)
	entry.ID = 77

	require.NoError(t, pub.PublishEntryCreated(context.Background(), entry, 90000))
	assert.Equal(t, "ledger.entry.created", conn.subject)

	var ev EntryCreatedEvent
	require.NoError(t, json.Unmarshal(conn.data, &ev))
	assert.Equal(t, int64(77), ev.EntryID)
	assert.Equal(t, int64(9), ev.IdentityID)
	assert.Equal(t, "INV15102026-004", ev.InvoiceNumber)
	assert.Equal(t, domain.EntryKindPayment, ev.Kind)
	assert.Equal(t, int64(10000), ev.Amount)
	require.NotNil(t, ev.ServiceCode)
	assert.Equal(t, "PLN", *ev.ServiceCode)
	assert.Equal(t, int64(90000), ev.Balance)
	assert.True(t, at.Equal(ev.CreatedOn))
}

func TestPublisher_TopupOmitsServiceCode(t *testing.T) {
	conn := &fakeConn{}
	pub := NewPublisher(conn, "ledger.entry.created")

	entry := domain.NewTopupEntry(9, 5000, "INV15102026-001", time.Now())
	require.NoError(t, pub.PublishEntryCreated(context.Background(), entry, 5000))
	assert.NotContains(t, string(conn.data), "service_code")
}

func TestPublisher_ConnError(t *testing.T) {
	pub := NewPublisher(&fakeConn{err: errors.New("nats: connection closed")}, "ledger.entry.created")

	err := pub.PublishEntryCreated(context.Background(), domain.NewTopupEntry(1, 1, "INV15102026-001", time.Now()), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger.entry.created")
}

func TestPublisher_CanceledContext(t *testing.T) {
	conn := &fakeConn{}
	pub := NewPublisher(conn, "ledger.entry.created")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pub.PublishEntryCreated(ctx, domain.NewTopupEntry(1, 1, "INV15102026-001", time.Now()), 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, conn.data)
}

func TestConnect_EmptyURLDisables(t *testing.T) {
	nc, err := Connect("", zerolog.Nop())
	assert.NoError(t, err)
	assert.Nil(t, nc)
}
