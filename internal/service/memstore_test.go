package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"balance-ledger/internal/core/domain"
	"balance-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// memStore is an in-memory stand-in for PostgreSQL that keeps the locking
// behaviour the ledger relies on: FOR UPDATE on a balance row and the upsert on
// a day counter block other transactions until commit or rollback, and writes
// stay invisible to others until commit.
type memStore struct {
	mu           sync.Mutex
	users        map[string]domain.User
	balances     map[int64]int64
	counters     map[string]int64
	entries      []domain.LedgerEntry
	invoices     map[string]bool
	rowLocks     map[int64]*sync.Mutex
	counterLocks map[string]*sync.Mutex
	allocLock    sync.Mutex
	now          func() time.Time
	nextUserID   int64
	nextEntryID  atomic.Int64

	failEntryCreate atomic.Bool
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[string]domain.User),
		balances:     make(map[int64]int64),
		counters:     make(map[string]int64),
		invoices:     make(map[string]bool),
		rowLocks:     make(map[int64]*sync.Mutex),
		counterLocks: make(map[string]*sync.Mutex),
		now:          time.Now,
	}
}

type memTx struct {
	pgx.Tx
	s        *memStore
	held     map[*sync.Mutex]bool
	users    []domain.User
	balances map[int64]int64
	counters map[string]int64
	entries  []domain.LedgerEntry
	done     bool
}

func (s *memStore) Begin(_ context.Context) (pgx.Tx, error) {
	return &memTx{
		s:        s,
		held:     make(map[*sync.Mutex]bool),
		balances: make(map[int64]int64),
		counters: make(map[string]int64),
	}, nil
}

func (t *memTx) lock(m *sync.Mutex) {
	if t.held[m] {
		return
	}
	m.Lock()
	t.held[m] = true
}

func (t *memTx) release() {
	for m := range t.held {
		m.Unlock()
	}
	t.held = nil
	t.done = true
}

func (t *memTx) Commit(_ context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	s := t.s
	s.mu.Lock()
	for _, u := range t.users {
		s.users[u.Email] = u
	}
	for id, amount := range t.balances {
		s.balances[id] = amount
	}
	for day, v := range t.counters {
		s.counters[day] = v
	}
	for _, e := range t.entries {
		s.invoices[e.InvoiceNumber] = true
	}
	s.entries = append(s.entries, t.entries...)
	s.mu.Unlock()
	t.release()
	return nil
}

func (t *memTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.release()
	return nil
}

func asMemTx(tx pgx.Tx) *memTx {
	return tx.(*memTx)
}

func (s *memStore) rowLock(id int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.rowLocks[id]
	if !ok {
		m = &sync.Mutex{}
		s.rowLocks[id] = m
	}
	return m
}

func (s *memStore) counterLock(day string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.counterLocks[day]
	if !ok {
		m = &sync.Mutex{}
		s.counterLocks[day] = m
	}
	return m
}

// --- ports.UserRepository ---

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, tx pgx.Tx, u *domain.User) error {
	mt := asMemTx(tx)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.users[u.Email]; taken {
		return fmt.Errorf("insert user: %w", ports.ErrDuplicateKey)
	}
	r.s.nextUserID++
	u.ID = r.s.nextUserID
	u.CreatedAt = time.Now().UTC()
	mt.users = append(mt.users, *u)
	return nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// --- ports.BalanceRepository ---

type memBalances struct{ s *memStore }

func (r memBalances) Provision(_ context.Context, tx pgx.Tx, identityID int64) error {
	mt := asMemTx(tx)
	mt.lock(r.s.rowLock(identityID))
	mt.balances[identityID] = 0
	return nil
}

func (r memBalances) Get(_ context.Context, identityID int64) (*domain.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	amount, ok := r.s.balances[identityID]
	if !ok {
		return nil, nil
	}
	return &domain.Balance{IdentityID: identityID, Amount: amount}, nil
}

func (r memBalances) GetForUpdate(_ context.Context, tx pgx.Tx, identityID int64) (*domain.Balance, error) {
	mt := asMemTx(tx)
	mt.lock(r.s.rowLock(identityID))

	if amount, ok := mt.balances[identityID]; ok {
		return &domain.Balance{IdentityID: identityID, Amount: amount}, nil
	}
	return r.Get(context.Background(), identityID)
}

func (r memBalances) UpdateAmount(_ context.Context, tx pgx.Tx, identityID int64, amount int64) error {
	mt := asMemTx(tx)
	if amount < 0 {
		return errors.New(`new row for relation "balances" violates check constraint`)
	}
	mt.lock(r.s.rowLock(identityID))
	mt.balances[identityID] = amount
	return nil
}

// --- ports.InvoiceCounterRepository ---

type memCounters struct{ s *memStore }

func (r memCounters) Acquire(_ context.Context, tx pgx.Tx) (time.Time, error) {
	asMemTx(tx).lock(&r.s.allocLock)
	return r.s.now(), nil
}

func (r memCounters) Next(_ context.Context, tx pgx.Tx, day time.Time) (int64, error) {
	mt := asMemTx(tx)
	key := day.Format(time.DateOnly)
	mt.lock(r.s.counterLock(key))

	if v, ok := mt.counters[key]; ok {
		mt.counters[key] = v + 1
		return v + 1, nil
	}
	r.s.mu.Lock()
	v := r.s.counters[key]
	r.s.mu.Unlock()
	mt.counters[key] = v + 1
	return v + 1, nil
}

// --- ports.LedgerRepository ---

type memEntries struct{ s *memStore }

func (r memEntries) Create(_ context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	mt := asMemTx(tx)
	// Sequences are consumed even when the transaction later rolls back.
	e.ID = r.s.nextEntryID.Add(1)
	if r.s.failEntryCreate.Load() {
		return errors.New("injected insert failure")
	}
	r.s.mu.Lock()
	dup := r.s.invoices[e.InvoiceNumber]
	r.s.mu.Unlock()
	if dup {
		return fmt.Errorf("insert ledger entry: %w", ports.ErrDuplicateKey)
	}
	mt.entries = append(mt.entries, *e)
	return nil
}

func (r memEntries) committedFor(identityID int64) []domain.LedgerEntry {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.LedgerEntry
	for _, e := range r.s.entries {
		if e.IdentityID == identityID {
			out = append(out, e)
		}
	}
	return out
}

func (r memEntries) ListByIdentity(_ context.Context, identityID int64, offset, limit int) ([]domain.LedgerEntry, error) {
	all := r.committedFor(identityID)
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedOn.Equal(all[j].CreatedOn) {
			return all[i].CreatedOn.After(all[j].CreatedOn)
		}
		return all[i].ID > all[j].ID
	})
	if offset >= len(all) {
		return []domain.LedgerEntry{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r memEntries) Totals(_ context.Context, identityID int64) (*ports.LedgerTotals, error) {
	t := &ports.LedgerTotals{}
	for _, e := range r.committedFor(identityID) {
		t.Entries++
		if e.IsCredit() {
			t.TotalTopup += e.Amount
		} else {
			t.TotalPayment += e.Amount
		}
	}
	return t, nil
}

// --- ports.ServiceRepository ---

type memCatalog map[string]domain.Service

func (c memCatalog) GetByCode(_ context.Context, code string) (*domain.Service, error) {
	svc, ok := c[code]
	if !ok {
		return nil, nil
	}
	return &svc, nil
}

func (c memCatalog) List(_ context.Context) ([]domain.Service, error) {
	out := make([]domain.Service, 0, len(c))
	for _, svc := range c {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// tickingClock returns strictly increasing instants, one millisecond apart.
func tickingClock(start time.Time) func() time.Time {
	var ticks atomic.Int64
	return func() time.Time {
		return start.Add(time.Duration(ticks.Add(1)) * time.Millisecond)
	}
}
