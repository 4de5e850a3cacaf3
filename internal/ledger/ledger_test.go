package ledger

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"posfinance/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestComputeVariance(t *testing.T) {
	t.Run("zero budget has no percentage", func(t *testing.T) {
		v := ComputeVariance(decimal.Zero, dec("50"))
		assert.True(t, v.Amount.Equal(dec("50")))
		assert.Zero(t, v.Percentage)
	})

	t.Run("under budget", func(t *testing.T) {
		v := ComputeVariance(dec("100"), dec("80"))
		assert.True(t, v.Amount.Equal(dec("-20")))
		assert.NotZero(t, v.Percentage)
		assert.Equal(t, -20.0, *v.Percentage)
	})

	t.Run("on budget", func(t *testing.T) {
		v := ComputeVariance(dec("500"), dec("500"))
		assert.True(t, v.Amount.IsZero())
		assert.Equal(t, 0.0, *v.Percentage)
	})

	t.Run("over budget", func(t *testing.T) {
		v := ComputeVariance(dec("200"), dec("250"))
		assert.Equal(t, 25.0, *v.Percentage)
	})
}

func TestSums(t *testing.T) {
	txs := []models.BudgetTransaction{{Amount: dec("0.10")}, {Amount: dec("0.20")}, {Amount: dec("10.05")}}
	assert.True(t, SumTransactions(txs).Equal(dec("10.35")))
	assert.True(t, SumTransactions(nil).IsZero())

	items := []models.BudgetItem{
		{BudgetedAmount: dec("500"), ActualAmount: dec("120.50")},
		{BudgetedAmount: dec("250"), ActualAmount: dec("0")},
	}
	totals := SumItems(items)
	assert.True(t, totals.Budgeted.Equal(dec("750")))
	assert.True(t, totals.Actual.Equal(dec("120.50")))

	var b models.Budget
	ApplyTotals(&b, totals)
	assert.True(t, b.TotalBudgetAmount.Equal(dec("750")))
	assert.True(t, BudgetVariance(&b).Amount.Equal(dec("-629.50")))
}

func TestComputeTimeProgress(t *testing.T) {
	start := date(2024, time.January, 1)
	end := date(2024, time.January, 31)

	tests := []struct {
		name      string
		asOf      time.Time
		remaining int
		elapsed   int
		percent   float64
	}{
		{name: "midway", asOf: date(2024, time.January, 16), remaining: 15, elapsed: 15, percent: 50},
		{name: "before start", asOf: date(2023, time.December, 1), remaining: 61, elapsed: 0, percent: 0},
		{name: "after end", asOf: date(2024, time.March, 1), remaining: 0, elapsed: 30, percent: 100},
		{name: "time of day ignored", asOf: time.Date(2024, time.January, 16, 23, 59, 0, 0, time.UTC), remaining: 15, elapsed: 15, percent: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputeTimeProgress(start, end, tt.asOf)
			assert.Equal(t, 30, p.DaysTotal)
			assert.Equal(t, tt.remaining, p.DaysRemaining)
			assert.Equal(t, tt.elapsed, p.DaysElapsed)
			assert.Equal(t, tt.percent, p.PercentElapsed)
		})
	}

	t.Run("empty range", func(t *testing.T) {
		p := ComputeTimeProgress(start, start, start)
		assert.Equal(t, 0, p.DaysTotal)
		assert.Equal(t, 0.0, p.PercentElapsed)
	})
}
