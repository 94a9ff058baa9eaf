package store

import (
	"context"
	"sort"
	"sync"

	"fjacquet/expense-etl/internal/models"
	"fjacquet/expense-etl/internal/parsererror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemoryStore is an in-memory Store used in tests and as a reference for
// the transactional contract: staged writes become visible only on
// Commit. The error fields inject failures at specific steps so callers
// can exercise rollback paths.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string][]models.Transaction

	BeginErr  error
	InsertErr error
	DeleteErr error
	CommitErr error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]models.Transaction)}
}

// QueryPeriod returns a copy of the transactions stored for a period,
// ordered by date then insertion order.
func (s *MemoryStore) QueryPeriod(_ context.Context, p models.Period) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.records[p.Key()]
	out := make([]models.Transaction, len(stored))
	copy(out, stored)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// CountPeriod returns the number of transactions stored for a period.
func (s *MemoryStore) CountPeriod(_ context.Context, p models.Period) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records[p.Key()]), nil
}

// Begin opens a staged write unit.
func (s *MemoryStore) Begin(_ context.Context) (Tx, error) {
	if s.BeginErr != nil {
		return nil, &parsererror.StorageError{Op: "begin", Err: s.BeginErr}
	}
	return &memoryTx{store: s}, nil
}

// Stats summarizes everything stored.
func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats Stats
	byCategory := make(map[string]*CategoryTotal)
	byAccount := make(map[string]*CategoryTotal)
	for _, batch := range s.records {
		for _, tx := range batch {
			stats.Transactions++
			if stats.EarliestDate.IsZero() || tx.Date.Before(stats.EarliestDate) {
				stats.EarliestDate = tx.Date
			}
			if tx.Date.After(stats.LatestDate) {
				stats.LatestDate = tx.Date
			}
			accumulate(byCategory, tx.Category, tx.Amount)
			accumulate(byAccount, string(tx.Account), tx.Amount)
		}
	}
	stats.ByCategory = sortedTotals(byCategory)
	stats.ByAccount = sortedTotals(byAccount)
	return stats, nil
}

func accumulate(m map[string]*CategoryTotal, name string, amount decimal.Decimal) {
	t, ok := m[name]
	if !ok {
		t = &CategoryTotal{Name: name}
		m[name] = t
	}
	t.Count++
	t.Total = t.Total.Add(amount)
}

func sortedTotals(m map[string]*CategoryTotal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(m))
	for _, t := range m {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type memoryOp struct {
	deletePeriod *models.Period
	insert       []models.Transaction
}

type memoryTx struct {
	store *MemoryStore
	ops   []memoryOp
	done  bool
}

// Insert stages a batch; nothing is visible until Commit.
func (t *memoryTx) Insert(_ context.Context, transactions []models.Transaction) error {
	if t.store.InsertErr != nil {
		return &parsererror.StorageError{Op: "insert", Err: t.store.InsertErr}
	}
	staged := make([]models.Transaction, len(transactions))
	copy(staged, transactions)
	for i := range staged {
		if staged[i].ID == "" {
			staged[i].ID = uuid.NewString()
		}
	}
	t.ops = append(t.ops, memoryOp{insert: staged})
	return nil
}

// DeletePeriod stages removal of a period's transactions.
func (t *memoryTx) DeletePeriod(_ context.Context, p models.Period) error {
	if t.store.DeleteErr != nil {
		return &parsererror.StorageError{Op: "delete period", Err: t.store.DeleteErr}
	}
	period := p
	t.ops = append(t.ops, memoryOp{deletePeriod: &period})
	return nil
}

// Commit applies all staged operations atomically.
func (t *memoryTx) Commit() error {
	if t.done {
		return nil
	}
	if t.store.CommitErr != nil {
		return &parsererror.StorageError{Op: "commit", Err: t.store.CommitErr}
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, op := range t.ops {
		if op.deletePeriod != nil {
			delete(t.store.records, op.deletePeriod.Key())
			continue
		}
		for _, tx := range op.insert {
			key := tx.Period.Key()
			t.store.records[key] = append(t.store.records[key], tx)
		}
	}
	t.done = true
	return nil
}

// Rollback discards staged operations.
func (t *memoryTx) Rollback() error {
	t.ops = nil
	t.done = true
	return nil
}
