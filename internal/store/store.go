// Package store persists canonical transactions keyed by statement
// period. The reconciler and evaluator depend only on the Store and Tx
// interfaces here: period queries plus a transactional unit whose
// delete-and-insert either fully commits or leaves prior state intact.
package store

import (
	"context"
	"time"

	"fjacquet/expense-etl/internal/models"

	"github.com/shopspring/decimal"
)

// Store is the persistence interface consumed by the pipeline.
type Store interface {
	// QueryPeriod returns all transactions stored for a period, ordered
	// by date then insertion order.
	QueryPeriod(ctx context.Context, p models.Period) ([]models.Transaction, error)

	// CountPeriod returns the number of transactions stored for a period.
	CountPeriod(ctx context.Context, p models.Period) (int, error)

	// Begin opens a transactional unit for atomic multi-step writes.
	Begin(ctx context.Context) (Tx, error)

	// Stats summarizes everything stored, across all periods.
	Stats(ctx context.Context) (Stats, error)
}

// Tx is one atomic write unit. Mutations are observable to readers only
// after Commit; Rollback (or a failed Commit) leaves prior state intact.
type Tx interface {
	Insert(ctx context.Context, transactions []models.Transaction) error
	DeletePeriod(ctx context.Context, p models.Period) error
	Commit() error
	Rollback() error
}

// CategoryTotal is one per-category aggregate row.
type CategoryTotal struct {
	Name  string
	Count int
	Total decimal.Decimal
}

// Stats summarizes the stored data set.
type Stats struct {
	Transactions int
	EarliestDate time.Time
	LatestDate   time.Time
	ByCategory   []CategoryTotal
	ByAccount    []CategoryTotal
}
