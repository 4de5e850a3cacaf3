// Package ledger holds the rollup and variance arithmetic for budgets.
//
// Budget totals and item actuals are caches. They are always recomputed from
// their constituents, never adjusted incrementally, so recomputation is
// idempotent and safe to repeat after a retry.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"posfinance/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Variance is actual minus budgeted. Percentage is nil when nothing was
// budgeted.
type Variance struct {
	Amount     decimal.Decimal `json:"amount"`
	Percentage *float64        `json:"percentage"`
}

// ComputeVariance returns actual - budgeted and its share of budgeted.
func ComputeVariance(budgeted, actual decimal.Decimal) Variance {
	v := Variance{Amount: actual.Sub(budgeted)}
	if budgeted.GreaterThan(decimal.Zero) {
		pct, _ := v.Amount.Div(budgeted).Mul(hundred).Float64()
		v.Percentage = &pct
	}
	return v
}

// BudgetVariance is ComputeVariance over the budget's cached totals.
func BudgetVariance(b *models.Budget) Variance {
	return ComputeVariance(b.TotalBudgetAmount, b.TotalActualAmount)
}

// ItemVariance is ComputeVariance over the item's amounts.
func ItemVariance(item *models.BudgetItem) Variance {
	return ComputeVariance(item.BudgetedAmount, item.ActualAmount)
}

// SumTransactions returns the exact sum of transaction amounts.
func SumTransactions(txs []models.BudgetTransaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// Totals are the budget-level sums over items.
type Totals struct {
	Budgeted decimal.Decimal
	Actual   decimal.Decimal
}

// SumItems returns the budgeted and actual sums over items.
func SumItems(items []models.BudgetItem) Totals {
	t := Totals{Budgeted: decimal.Zero, Actual: decimal.Zero}
	for _, item := range items {
		t.Budgeted = t.Budgeted.Add(item.BudgetedAmount)
		t.Actual = t.Actual.Add(item.ActualAmount)
	}
	return t
}

// ApplyTotals overwrites the budget's cached totals.
func ApplyTotals(b *models.Budget, t Totals) {
	b.TotalBudgetAmount = t.Budgeted
	b.TotalActualAmount = t.Actual
}

// TimeProgress describes how far into its date range a budget is.
type TimeProgress struct {
	DaysTotal      int     `json:"days_total"`
	DaysRemaining  int     `json:"days_remaining"`
	DaysElapsed    int     `json:"days_elapsed"`
	PercentElapsed float64 `json:"percent_elapsed"`
}

// ComputeTimeProgress measures whole calendar days between dates.
func ComputeTimeProgress(start, end, asOf time.Time) TimeProgress {
	duration := DaysBetween(start, end)
	remaining := max(0, DaysBetween(asOf, end))
	elapsed := max(0, duration-remaining)

	p := TimeProgress{
		DaysTotal:     duration,
		DaysRemaining: remaining,
		DaysElapsed:   elapsed,
	}
	if duration > 0 {
		p.PercentElapsed = float64(elapsed) / float64(duration) * 100
	}
	return p
}

// BudgetTimeProgress is ComputeTimeProgress over the budget's range.
func BudgetTimeProgress(b *models.Budget, asOf time.Time) TimeProgress {
	return ComputeTimeProgress(b.StartDate, b.EndDate, asOf)
}

// DaysBetween counts calendar days from a to b, ignoring time of day.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
