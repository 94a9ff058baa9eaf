package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fjacquet/expense-etl/internal/logging"
	"fjacquet/expense-etl/internal/models"
	"fjacquet/expense-etl/internal/parsererror"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Amounts are stored as exact decimal strings, not REAL, so totals never
// drift from what was parsed.
const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	date_iso TEXT NOT NULL,
	amount TEXT NOT NULL,
	description TEXT NOT NULL,
	account TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT 'Uncategorized',
	month INTEGER NOT NULL,
	year INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_period ON transactions(year, month);
`

// SQLiteStore is the SQLite-backed Store implementation.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
}

// Open opens (creating if needed) the SQLite database at path and ensures
// the schema exists.
func Open(path string, logger logging.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &parsererror.StorageError{Op: "open", Err: err}
	}
	if err := db.Ping(); err != nil {
		return nil, &parsererror.StorageError{Op: "open", Err: err}
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, &parsererror.StorageError{Op: "ensure schema", Err: err}
	}
	logger.WithField("path", path).Debug("Opened transaction database")
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// QueryPeriod returns the transactions stored for one statement period.
func (s *SQLiteStore) QueryPeriod(ctx context.Context, p models.Period) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date_iso, amount, description, account, category
		 FROM transactions WHERE year = ? AND month = ?
		 ORDER BY date_iso, rowid`,
		p.Year, int(p.Month))
	if err != nil {
		return nil, &parsererror.StorageError{Op: "query period", Err: err}
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close result rows")
		}
	}()

	var transactions []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, &parsererror.StorageError{Op: "scan period row", Err: err}
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, &parsererror.StorageError{Op: "read period rows", Err: err}
	}
	return transactions, nil
}

// CountPeriod returns how many transactions are stored for a period.
func (s *SQLiteStore) CountPeriod(ctx context.Context, p models.Period) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE year = ? AND month = ?`,
		p.Year, int(p.Month)).Scan(&count)
	if err != nil {
		return 0, &parsererror.StorageError{Op: "count period", Err: err}
	}
	return count, nil
}

// Begin opens a write transaction.
func (s *SQLiteStore) Begin(ctx context.Context) (Tx, error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &parsererror.StorageError{Op: "begin", Err: err}
	}
	return &sqliteTx{tx: sqlTx}, nil
}

// Stats summarizes the stored data set across all periods.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	var earliest, latest sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(date_iso), MAX(date_iso) FROM transactions`).
		Scan(&stats.Transactions, &earliest, &latest)
	if err != nil {
		return Stats{}, &parsererror.StorageError{Op: "stats", Err: err}
	}
	if earliest.Valid {
		if stats.EarliestDate, err = time.Parse(dateLayout, earliest.String); err != nil {
			return Stats{}, &parsererror.StorageError{Op: "stats", Err: err}
		}
	}
	if latest.Valid {
		if stats.LatestDate, err = time.Parse(dateLayout, latest.String); err != nil {
			return Stats{}, &parsererror.StorageError{Op: "stats", Err: err}
		}
	}

	if stats.ByCategory, err = s.totals(ctx, "category"); err != nil {
		return Stats{}, err
	}
	if stats.ByAccount, err = s.totals(ctx, "account"); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// totals aggregates count and summed amount grouped by one column.
// Summation happens in decimal, not SQL, because amounts are stored as
// exact strings.
func (s *SQLiteStore) totals(ctx context.Context, column string) ([]CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s, amount FROM transactions ORDER BY %s`, column, column))
	if err != nil {
		return nil, &parsererror.StorageError{Op: "stats totals", Err: err}
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close result rows")
		}
	}()

	var totals []CategoryTotal
	for rows.Next() {
		var name, amountStr string
		if err := rows.Scan(&name, &amountStr); err != nil {
			return nil, &parsererror.StorageError{Op: "stats totals", Err: err}
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, &parsererror.StorageError{Op: "stats totals", Err: err}
		}
		if n := len(totals); n > 0 && totals[n-1].Name == name {
			totals[n-1].Count++
			totals[n-1].Total = totals[n-1].Total.Add(amount)
			continue
		}
		totals = append(totals, CategoryTotal{Name: name, Count: 1, Total: amount})
	}
	if err := rows.Err(); err != nil {
		return nil, &parsererror.StorageError{Op: "stats totals", Err: err}
	}
	return totals, nil
}

type sqliteTx struct {
	tx *sql.Tx
}

// Insert writes a batch of transactions, assigning identifiers to records
// that do not carry one yet.
func (t *sqliteTx) Insert(ctx context.Context, transactions []models.Transaction) error {
	stmt, err := t.tx.PrepareContext(ctx,
		`INSERT INTO transactions(id, date_iso, amount, description, account, category, month, year)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return &parsererror.StorageError{Op: "prepare insert", Err: err}
	}
	defer stmt.Close()

	for _, tx := range transactions {
		id := tx.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err := stmt.ExecContext(ctx,
			id,
			tx.Date.Format(dateLayout),
			tx.Amount.String(),
			tx.Description,
			string(tx.Account),
			tx.Category,
			int(tx.Period.Month),
			tx.Period.Year)
		if err != nil {
			return &parsererror.StorageError{Op: "insert", Err: err}
		}
	}
	return nil
}

// DeletePeriod removes every transaction stored for one period.
func (t *sqliteTx) DeletePeriod(ctx context.Context, p models.Period) error {
	if _, err := t.tx.ExecContext(ctx,
		`DELETE FROM transactions WHERE year = ? AND month = ?`,
		p.Year, int(p.Month)); err != nil {
		return &parsererror.StorageError{Op: "delete period", Err: err}
	}
	return nil
}

func (t *sqliteTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return &parsererror.StorageError{Op: "commit", Err: err}
	}
	return nil
}

func (t *sqliteTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return &parsererror.StorageError{Op: "rollback", Err: err}
	}
	return nil
}

// scanTransaction hydrates one row. Period is re-derived from the date,
// keeping the derivation invariant even for hand-edited rows.
func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var tx models.Transaction
	var dateStr, amountStr, account string
	if err := rows.Scan(&tx.ID, &dateStr, &amountStr, &tx.Description, &account, &tx.Category); err != nil {
		return models.Transaction{}, err
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return models.Transaction{}, err
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return models.Transaction{}, err
	}
	tx.Date = date
	tx.Amount = amount
	tx.Account = models.Account(account)
	tx.Period = models.PeriodOf(date)
	return tx, nil
}
