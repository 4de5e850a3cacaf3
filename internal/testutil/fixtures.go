package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"posfinance/internal/actor"
	"posfinance/internal/models"
	"posfinance/internal/uuid"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Dec parses a decimal literal and panics on bad input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// TestActor returns an actor holding every permission.
func TestActor() actor.Actor {
	return actor.Actor{UserID: uuid.New(), Permissions: []string{actor.PermAll}}
}

// ActorWith returns an actor holding only the given permissions.
func ActorWith(perms ...string) actor.Actor {
	return actor.Actor{UserID: uuid.New(), Permissions: perms}
}

// CreateTestCategory creates an active category under parentID, or at the top
// level when parentID is nil.
func CreateTestCategory(t *testing.T, db *gorm.DB, parentID *string) *models.Category {
	t.Helper()
	return CreateTestCategoryNamed(t, db, fmt.Sprintf("Test Category %d", nextID()), parentID)
}

// CreateTestCategoryNamed creates an active category with the given name.
func CreateTestCategoryNamed(t *testing.T, db *gorm.DB, name string, parentID *string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:     name,
		ParentID: parentID,
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestBudget creates an active custom budget with no items.
func CreateTestBudget(t *testing.T, db *gorm.DB, start, end time.Time) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Name:              fmt.Sprintf("Test Budget %d", nextID()),
		Type:              models.BudgetTypeCustom,
		StartDate:         start,
		EndDate:           end,
		Status:            models.BudgetStatusActive,
		PlannedAmount:     decimal.Zero,
		TotalBudgetAmount: decimal.Zero,
		TotalActualAmount: decimal.Zero,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestBudgetItem adds an item to a budget without touching the
// budget's cached totals.
func CreateTestBudgetItem(t *testing.T, db *gorm.DB, budgetID string, categoryID *string, budgeted string) *models.BudgetItem {
	t.Helper()

	item := &models.BudgetItem{
		BudgetID:       budgetID,
		CategoryID:     categoryID,
		Name:           fmt.Sprintf("Test Item %d", nextID()),
		BudgetedAmount: Dec(budgeted),
		ActualAmount:   decimal.Zero,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test budget item: %v", err)
	}
	return item
}

// CreateTestBudgetTransaction appends a ledger entry directly, without
// recomputing any cached amount.
func CreateTestBudgetTransaction(t *testing.T, db *gorm.DB, item *models.BudgetItem, amount string, date time.Time) *models.BudgetTransaction {
	t.Helper()

	tx := &models.BudgetTransaction{
		BudgetID:        item.BudgetID,
		BudgetItemID:    item.ID,
		Amount:          Dec(amount),
		TransactionDate: date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test budget transaction: %v", err)
	}
	return tx
}

// CreateTestTaxRate creates an active tax rate given in percent.
func CreateTestTaxRate(t *testing.T, db *gorm.DB, name, rate string) *models.TaxRate {
	t.Helper()

	taxRate := &models.TaxRate{Name: name, Rate: Dec(rate), IsActive: true}
	if err := db.Create(taxRate).Error; err != nil {
		t.Fatalf("failed to create test tax rate: %v", err)
	}
	return taxRate
}

// SaleLine describes a product line for CreateTestSale.
type SaleLine struct {
	Product   string
	Quantity  int64
	UnitPrice string
	CostPrice string
	TaxRate   *models.TaxRate
}

// CreateTestSale creates a completed sale. Line totals are quantity times unit
// price, tax is computed from each line's rate and the sale total is subtotal
// plus tax.
func CreateTestSale(t *testing.T, db *gorm.DB, date time.Time, lines ...SaleLine) *models.Sale {
	t.Helper()

	sale := &models.Sale{
		SaleNumber:     fmt.Sprintf("S-%06d", nextID()),
		SaleDate:       date,
		Status:         models.SaleStatusCompleted,
		PaymentMethod:  "cash",
		DiscountAmount: decimal.Zero,
	}

	subtotal, tax := decimal.Zero, decimal.Zero
	for _, l := range lines {
		total := Dec(l.UnitPrice).Mul(decimal.NewFromInt(l.Quantity))
		item := models.SaleItem{
			ProductName: l.Product,
			Quantity:    l.Quantity,
			UnitPrice:   Dec(l.UnitPrice),
			CostPrice:   Dec(l.CostPrice),
			TotalPrice:  total,
		}
		if l.TaxRate != nil {
			item.TaxRateID = &l.TaxRate.ID
			tax = tax.Add(total.Mul(l.TaxRate.Rate).Div(decimal.NewFromInt(100)).Round(2))
		}
		subtotal = subtotal.Add(total)
		sale.Items = append(sale.Items, item)
	}
	sale.Subtotal = subtotal
	sale.TaxAmount = tax
	sale.TotalAmount = subtotal.Add(tax)

	if err := db.Create(sale).Error; err != nil {
		t.Fatalf("failed to create test sale: %v", err)
	}
	return sale
}

// CreateTestExpense creates an operating expense.
func CreateTestExpense(t *testing.T, db *gorm.DB, categoryID *string, amount string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		CategoryID:  categoryID,
		Description: fmt.Sprintf("Test Expense %d", nextID()),
		Amount:      Dec(amount),
		ExpenseDate: date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
