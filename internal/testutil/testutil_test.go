package testutil_test

import (
	"testing"

	"posfinance/internal/errors"
	"posfinance/internal/models"
	"posfinance/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"categories", "budgets", "budget_items", "budget_transactions", "tax_rates", "sales", "sale_items", "expenses", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	testutil.CreateTestCategory(t, first, nil)

	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	var count int64
	if err := second.Model(&models.Category{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected a fresh database, found %d categories", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	parent := testutil.CreateTestCategory(t, db, nil)
	if parent.ID == "" {
		t.Fatal("category should have an ID")
	}
	child := testutil.CreateTestCategory(t, db, &parent.ID)
	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Error("expected child to reference parent")
	}

	budget := testutil.CreateTestBudget(t, db, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 31))
	item := testutil.CreateTestBudgetItem(t, db, budget.ID, &child.ID, "250.50")
	testutil.AssertDecimal(t, "250.50", item.BudgetedAmount)

	vat := testutil.CreateTestTaxRate(t, db, "VAT", "16")
	sale := testutil.CreateTestSale(t, db, testutil.Day(2024, 1, 5), testutil.SaleLine{
		Product: "Coffee", Quantity: 2, UnitPrice: "50", CostPrice: "20", TaxRate: vat,
	})
	testutil.AssertDecimal(t, "100", sale.Subtotal)
	testutil.AssertDecimal(t, "16", sale.TaxAmount)
	testutil.AssertDecimal(t, "116", sale.TotalAmount)

	var stored models.Sale
	if err := db.Preload("Items").First(&stored, "id = ?", sale.ID).Error; err != nil {
		t.Fatalf("failed to reload sale: %v", err)
	}
	if len(stored.Items) != 1 {
		t.Errorf("expected 1 sale item, got %d", len(stored.Items))
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrBudgetNotFound, "custom message")
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
