package store

import (
	"context"
	"testing"
	"time"

	"fjacquet/expense-etl/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(day int, category, amount string) models.Transaction {
	date := time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC)
	return models.Transaction{
		Date:        date,
		Amount:      decimal.RequireFromString(amount),
		Description: category,
		Account:     models.AccountScotiabank,
		Category:    category,
		Period:      models.PeriodOf(date),
	}
}

func TestMemoryStoreStagedCommit(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	period := models.Period{Month: time.March, Year: 2025}

	tx, err := st.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, []models.Transaction{record(1, "Dining", "10.00")}))

	// Staged writes stay invisible until Commit.
	count, err := st.CountPeriod(ctx, period)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, tx.Commit())
	count, err = st.CountPeriod(ctx, period)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := st.QueryPeriod(ctx, period)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.NotEmpty(t, stored[0].ID)
}

func TestMemoryStoreRollback(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	tx, err := st.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, []models.Transaction{record(1, "Dining", "10.00")}))
	require.NoError(t, tx.Rollback())

	count, err := st.CountPeriod(ctx, models.Period{Month: time.March, Year: 2025})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryStoreDeleteThenInsert(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	period := models.Period{Month: time.March, Year: 2025}

	tx, err := st.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, []models.Transaction{record(1, "Dining", "10.00")}))
	require.NoError(t, tx.Commit())

	tx, err = st.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DeletePeriod(ctx, period))
	require.NoError(t, tx.Insert(ctx, []models.Transaction{record(2, "Groceries", "20.00")}))
	require.NoError(t, tx.Commit())

	stored, err := st.QueryPeriod(ctx, period)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Groceries", stored[0].Category)
}

func TestMemoryStoreQueryOrdersByDate(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	tx, err := st.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, []models.Transaction{
		record(20, "B", "2.00"),
		record(3, "A", "1.00"),
	}))
	require.NoError(t, tx.Commit())

	stored, err := st.QueryPeriod(ctx, models.Period{Month: time.March, Year: 2025})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 3, stored[0].Date.Day())
	assert.Equal(t, 20, stored[1].Date.Day())
}

func TestMemoryStoreStats(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	tx, err := st.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, []models.Transaction{
		record(1, "Dining", "10.50"),
		record(15, "Dining", "4.50"),
		record(20, "Groceries", "100.00"),
	}))
	require.NoError(t, tx.Commit())

	stats, err := st.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Transactions)
	assert.Equal(t, 1, stats.EarliestDate.Day())
	assert.Equal(t, 20, stats.LatestDate.Day())

	require.Len(t, stats.ByCategory, 2)
	assert.Equal(t, "Dining", stats.ByCategory[0].Name)
	assert.Equal(t, 2, stats.ByCategory[0].Count)
	assert.Equal(t, "15", stats.ByCategory[0].Total.String())
	assert.Equal(t, "Groceries", stats.ByCategory[1].Name)

	require.Len(t, stats.ByAccount, 1)
	assert.Equal(t, string(models.AccountScotiabank), stats.ByAccount[0].Name)
	assert.Equal(t, 3, stats.ByAccount[0].Count)
}
