// Package reconciler persists period batches with replace-or-insert
// semantics: a batch for an empty period is inserted, a batch for a
// period that already has data replaces it only after explicit
// confirmation, and the replacement is a single transactional unit so a
// mid-operation failure never leaves a period half-updated.
package reconciler

import (
	"context"
	"fmt"
	"sort"

	"fjacquet/expense-etl/internal/logging"
	"fjacquet/expense-etl/internal/models"
	"fjacquet/expense-etl/internal/parsererror"
	"fjacquet/expense-etl/internal/store"
)

// Action is the outcome of one reconcile call.
type Action int

const (
	// ActionInserted means the period had no prior data and the batch was
	// inserted.
	ActionInserted Action = iota
	// ActionReplaced means prior data existed and was atomically swapped
	// for the batch.
	ActionReplaced
	// ActionSkipped means prior data existed, the overwrite was not
	// confirmed, and storage was left untouched.
	ActionSkipped
)

func (a Action) String() string {
	switch a {
	case ActionInserted:
		return "inserted"
	case ActionReplaced:
		return "replaced"
	case ActionSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result reports what one reconcile call did.
type Result struct {
	Period   models.Period
	Action   Action
	Count    int
	Existing int
}

// ConfirmFunc decides whether an existing period may be overwritten. It
// receives the period and how many records it currently holds.
type ConfirmFunc func(p models.Period, existing int) bool

// Reconciler persists period batches against a Store.
type Reconciler struct {
	store  store.Store
	logger logging.Logger
}

// New creates a Reconciler.
func New(s store.Store, logger logging.Logger) *Reconciler {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Reconciler{store: s, logger: logger}
}

// Reconcile persists one period batch. The batch must be non-empty and
// uniform in period; multi-period input fails with MixedPeriodError and
// must be split upstream (see SplitByPeriod).
func (r *Reconciler) Reconcile(ctx context.Context, batch []models.Transaction, confirm ConfirmFunc) (Result, error) {
	period, err := BatchPeriod(batch)
	if err != nil {
		return Result{}, err
	}
	log := r.logger.WithField("period", period.String())

	existing, err := r.store.CountPeriod(ctx, period)
	if err != nil {
		return Result{}, err
	}

	if existing > 0 {
		if confirm == nil || !confirm(period, existing) {
			log.Info("Overwrite not confirmed, leaving period untouched",
				logging.Field{Key: "existing", Value: existing})
			return Result{Period: period, Action: ActionSkipped, Existing: existing}, nil
		}
	}

	tx, err := r.store.Begin(ctx)
	if err != nil {
		return Result{}, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.WithError(rbErr).Warn("Rollback failed")
			}
		}
	}()

	if existing > 0 {
		if err := tx.DeletePeriod(ctx, period); err != nil {
			return Result{}, err
		}
	}
	if err := tx.Insert(ctx, batch); err != nil {
		return Result{}, err
	}
	if err := tx.Commit(); err != nil {
		return Result{}, err
	}
	committed = true

	action := ActionInserted
	if existing > 0 {
		action = ActionReplaced
	}
	log.Info("Persisted period batch",
		logging.Field{Key: "action", Value: action.String()},
		logging.Field{Key: "count", Value: len(batch)},
		logging.Field{Key: "replaced", Value: existing})
	return Result{Period: period, Action: action, Count: len(batch), Existing: existing}, nil
}

// BatchPeriod returns the single period a batch covers, or
// MixedPeriodError when the batch spans more than one.
func BatchPeriod(batch []models.Transaction) (models.Period, error) {
	if len(batch) == 0 {
		return models.Period{}, fmt.Errorf("empty batch")
	}
	period := batch[0].Period
	for _, tx := range batch[1:] {
		if tx.Period != period {
			return models.Period{}, &parsererror.MixedPeriodError{
				First:  batch[0].Date,
				Second: tx.Date,
			}
		}
	}
	return period, nil
}

// SplitByPeriod groups a batch into per-period batches ordered
// chronologically, the grouping Reconcile requires upstream.
func SplitByPeriod(transactions []models.Transaction) [][]models.Transaction {
	groups := make(map[models.Period][]models.Transaction)
	for _, tx := range transactions {
		groups[tx.Period] = append(groups[tx.Period], tx)
	}
	periods := make([]models.Period, 0, len(groups))
	for p := range groups {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	batches := make([][]models.Transaction, 0, len(periods))
	for _, p := range periods {
		batches = append(batches, groups[p])
	}
	return batches
}
