package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"posfinance/internal/actor"
	apperrors "posfinance/internal/errors"
	"posfinance/internal/ledger"
	"posfinance/internal/logger"
	"posfinance/internal/models"
	"posfinance/internal/pagination"
)

// budgetService maintains budgets, their items and the transaction ledger.
// Cached totals are always recomputed from their constituents inside the same
// database transaction as the mutation that changed them.
type budgetService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db, now: time.Now}
}

// CreateBudget creates an active budget with its initial items. Items with an
// empty name or a non-positive amount are skipped.
func (s *budgetService) CreateBudget(a actor.Actor, in BudgetInput) (*models.Budget, error) {
	if err := a.Require(actor.PermBudgetsWrite); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget name is required")
	}
	if !in.Type.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget type must be one of monthly, quarterly, yearly, custom")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start and end dates are required")
	}
	start, end := dateOnly(in.StartDate), dateOnly(in.EndDate)
	if end.Before(start) {
		return nil, apperrors.ErrInvalidRange
	}
	if err := validateAmount(in.TotalAmount, true); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		Type:          in.Type,
		StartDate:     start,
		EndDate:       end,
		Status:        models.BudgetStatusActive,
		PlannedAmount: in.TotalAmount,
		CreatedBy:     a.UserID,
	}

	for _, it := range in.Items {
		itemName := strings.TrimSpace(it.Name)
		if itemName == "" || !it.BudgetedAmount.GreaterThan(decimal.Zero) {
			continue
		}
		if err := validateAmount(it.BudgetedAmount, false); err != nil {
			return nil, err
		}
		categoryID, err := s.ensureCategory(s.db, it.CategoryID)
		if err != nil {
			return nil, err
		}
		budget.Items = append(budget.Items, models.BudgetItem{
			CategoryID:     categoryID,
			Name:           itemName,
			BudgetedAmount: it.BudgetedAmount,
			ActualAmount:   decimal.Zero,
		})
	}
	ledger.ApplyTotals(budget, ledger.SumItems(budget.Items))

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("budget created",
		"budget_id", budget.ID,
		"items", len(budget.Items),
		"total_budget_amount", budget.TotalBudgetAmount.String(),
	)
	return budget, nil
}

// GetBudget returns a budget with its items, their variances and the time
// progress through the budget's range as of now.
func (s *budgetService) GetBudget(budgetID string) (*BudgetDetail, error) {
	var budget models.Budget
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Preload("Items.Category").
		Where("id = ?", budgetID).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	detail := &BudgetDetail{
		Budget:       budget,
		Items:        make([]ItemDetail, 0, len(budget.Items)),
		Variance:     ledger.BudgetVariance(&budget),
		TimeProgress: ledger.BudgetTimeProgress(&budget, s.now()),
	}
	for i := range budget.Items {
		detail.Items = append(detail.Items, ItemDetail{
			BudgetItem: budget.Items[i],
			Variance:   ledger.ItemVariance(&budget.Items[i]),
		})
	}
	detail.Budget.Items = nil
	return detail, nil
}

// ListBudgets returns a paginated list of budgets, newest range first.
func (s *budgetService) ListBudgets(page pagination.PageRequest, filter BudgetFilter) (*pagination.PageResponse[models.Budget], error) {
	base := s.db.Model(&models.Budget{})
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}

	result, err := pagination.Find[models.Budget](base, page, "start_date DESC, id ASC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// UpdateBudgetStatus stores a new status. Any known status may follow any
// other.
func (s *budgetService) UpdateBudgetStatus(a actor.Actor, budgetID string, status models.BudgetStatus) (*models.Budget, error) {
	if err := a.Require(actor.PermBudgetsWrite); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be one of draft, active, closed")
	}

	budget, err := s.findBudget(s.db, budgetID, false)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(budget).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	budget.Status = status
	return budget, nil
}

// AddItem adds a line to a budget and recomputes the budget totals.
func (s *budgetService) AddItem(a actor.Actor, budgetID string, in BudgetItemInput) (*models.BudgetItem, error) {
	if err := a.Require(actor.PermBudgetsWrite); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "item name is required")
	}
	if err := validateAmount(in.BudgetedAmount, true); err != nil {
		return nil, err
	}
	categoryID, err := s.ensureCategory(s.db, in.CategoryID)
	if err != nil {
		return nil, err
	}

	item := &models.BudgetItem{
		BudgetID:       budgetID,
		CategoryID:     categoryID,
		Name:           name,
		BudgetedAmount: in.BudgetedAmount,
		ActualAmount:   decimal.Zero,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		budget, err := s.findBudget(tx, budgetID, true)
		if err != nil {
			return err
		}
		if err := tx.Create(item).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.recomputeBudgetTotals(tx, budget)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem changes a budget line and recomputes the budget totals.
func (s *budgetService) UpdateItem(a actor.Actor, budgetID, itemID string, in BudgetItemUpdate) (*models.BudgetItem, error) {
	if err := a.Require(actor.PermBudgetsWrite); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "item name is required")
		}
		updates["name"] = name
	}
	if in.BudgetedAmount != nil {
		if err := validateAmount(*in.BudgetedAmount, true); err != nil {
			return nil, err
		}
		updates["budgeted_amount"] = *in.BudgetedAmount
	}
	if in.CategoryID != nil {
		if *in.CategoryID == "" {
			updates["category_id"] = nil
		} else {
			if _, err := s.ensureCategory(s.db, in.CategoryID); err != nil {
				return nil, err
			}
			updates["category_id"] = *in.CategoryID
		}
	}

	var item *models.BudgetItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		budget, err := s.findBudget(tx, budgetID, true)
		if err != nil {
			return err
		}
		item, err = s.findItem(tx, budgetID, itemID, true)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(item).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.First(item, "id = ?", itemID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.recomputeBudgetTotals(tx, budget)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RecordTransaction appends a ledger entry to an item. The entry, the item's
// actual amount and the budget totals are written in one database
// transaction with the budget and item rows locked, and the cached amounts
// are recomputed from the full ledger rather than incremented.
func (s *budgetService) RecordTransaction(a actor.Actor, in TransactionInput) (*models.BudgetTransaction, error) {
	if err := a.Require(actor.PermBudgetsWrite); err != nil {
		return nil, err
	}
	if err := validateAmount(in.Amount, false); err != nil {
		return nil, err
	}
	if in.TransactionDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction date is required")
	}

	entry := &models.BudgetTransaction{
		BudgetID:        in.BudgetID,
		BudgetItemID:    in.BudgetItemID,
		Amount:          in.Amount,
		TransactionDate: dateOnly(in.TransactionDate),
		Description:     strings.TrimSpace(in.Description),
		CreatedBy:       a.UserID,
	}

	var item *models.BudgetItem
	var budget *models.Budget
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		budget, err = s.findBudget(tx, in.BudgetID, true)
		if err != nil {
			return err
		}
		item, err = s.findItem(tx, in.BudgetID, in.BudgetItemID, true)
		if err != nil {
			return err
		}

		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.recomputeItemActual(tx, item); err != nil {
			return err
		}
		return s.recomputeBudgetTotals(tx, budget)
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("budget transaction recorded",
		"budget_id", in.BudgetID,
		"budget_item_id", in.BudgetItemID,
		"amount", in.Amount.String(),
		"item_actual_amount", item.ActualAmount.String(),
		"total_actual_amount", budget.TotalActualAmount.String(),
	)
	return entry, nil
}

// SetItemActualAmount overwrites an item's actual amount without touching the
// ledger, then recomputes the budget totals. The item may afterwards disagree
// with the sum of its transactions; GetReconciliation reports the gap.
func (s *budgetService) SetItemActualAmount(a actor.Actor, budgetID, itemID string, amount decimal.Decimal) (*models.BudgetItem, error) {
	if err := a.Require(actor.PermBudgetsWrite); err != nil {
		return nil, err
	}
	if err := validateAmount(amount, true); err != nil {
		return nil, err
	}

	var item *models.BudgetItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		budget, err := s.findBudget(tx, budgetID, true)
		if err != nil {
			return err
		}
		item, err = s.findItem(tx, budgetID, itemID, true)
		if err != nil {
			return err
		}
		if err := tx.Model(item).Update("actual_amount", amount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		item.ActualAmount = amount
		return s.recomputeBudgetTotals(tx, budget)
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("budget item actual amount overridden",
		"budget_id", budgetID,
		"budget_item_id", itemID,
		"amount", amount.String(),
	)
	return item, nil
}

// ListTransactions returns the ledger entries of a budget, newest first.
func (s *budgetService) ListTransactions(budgetID string, page pagination.PageRequest) (*pagination.PageResponse[models.BudgetTransaction], error) {
	if _, err := s.findBudget(s.db, budgetID, false); err != nil {
		return nil, err
	}

	base := s.db.Model(&models.BudgetTransaction{}).Where("budget_id = ?", budgetID)
	result, err := pagination.Find[models.BudgetTransaction](base, page, "transaction_date DESC, created_at DESC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// GetReconciliation compares every item's actual amount with the sum of its
// ledger entries.
func (s *budgetService) GetReconciliation(budgetID string) (*Reconciliation, error) {
	if _, err := s.findBudget(s.db, budgetID, false); err != nil {
		return nil, err
	}

	var items []models.BudgetItem
	if err := s.db.Where("budget_id = ?", budgetID).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var entries []models.BudgetTransaction
	if err := s.db.Where("budget_id = ?", budgetID).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byItem := make(map[string][]models.BudgetTransaction)
	for _, e := range entries {
		byItem[e.BudgetItemID] = append(byItem[e.BudgetItemID], e)
	}

	rec := &Reconciliation{
		BudgetID:   budgetID,
		Items:      make([]ItemReconciliation, 0, len(items)),
		TotalDrift: decimal.Zero,
		Balanced:   true,
	}
	for _, item := range items {
		sum := ledger.SumTransactions(byItem[item.ID])
		drift := item.ActualAmount.Sub(sum)
		rec.Items = append(rec.Items, ItemReconciliation{
			BudgetItemID: item.ID,
			Name:         item.Name,
			ActualAmount: item.ActualAmount,
			LedgerSum:    sum,
			Drift:        drift,
		})
		rec.TotalDrift = rec.TotalDrift.Add(drift)
		if !drift.IsZero() {
			rec.Balanced = false
		}
	}
	return rec, nil
}

// recomputeItemActual sets the item's actual amount to the sum of its ledger.
func (s *budgetService) recomputeItemActual(tx *gorm.DB, item *models.BudgetItem) error {
	var entries []models.BudgetTransaction
	if err := tx.Where("budget_item_id = ?", item.ID).Find(&entries).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	item.ActualAmount = ledger.SumTransactions(entries)
	if err := tx.Model(item).Update("actual_amount", item.ActualAmount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// recomputeBudgetTotals sets the budget's totals to the sums over its items.
func (s *budgetService) recomputeBudgetTotals(tx *gorm.DB, budget *models.Budget) error {
	var items []models.BudgetItem
	if err := tx.Where("budget_id = ?", budget.ID).Find(&items).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	ledger.ApplyTotals(budget, ledger.SumItems(items))
	err := tx.Model(budget).Updates(map[string]interface{}{
		"total_budget_amount": budget.TotalBudgetAmount,
		"total_actual_amount": budget.TotalActualAmount,
	}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *budgetService) findBudget(db *gorm.DB, budgetID string, lock bool) (*models.Budget, error) {
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var budget models.Budget
	if err := db.Where("id = ?", budgetID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

func (s *budgetService) findItem(db *gorm.DB, budgetID, itemID string, lock bool) (*models.BudgetItem, error) {
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var item models.BudgetItem
	if err := db.Where("id = ? AND budget_id = ?", itemID, budgetID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// ensureCategory checks that a referenced category exists and is active.
// An empty id means no category.
func (s *budgetService) ensureCategory(db *gorm.DB, categoryID *string) (*string, error) {
	if categoryID == nil || *categoryID == "" {
		return nil, nil
	}
	var category models.Category
	if err := db.Select("id", "is_active").Where("id = ?", *categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !category.IsActive {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is inactive")
	}
	id := category.ID
	return &id, nil
}

// validateAmount rejects negative amounts, zero unless allowed, and amounts
// with more than two decimal places.
func validateAmount(amount decimal.Decimal, allowZero bool) error {
	switch {
	case amount.IsNegative():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	case amount.IsZero() && !allowZero:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	case !amount.Equal(amount.Round(2)):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must have at most 2 decimal places")
	}
	return nil
}

// dateOnly truncates t to midnight UTC of its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
