package services

import (
	"time"

	"github.com/shopspring/decimal"

	"posfinance/internal/actor"
	"posfinance/internal/categorytree"
	apperrors "posfinance/internal/errors"
	"posfinance/internal/ledger"
	"posfinance/internal/models"
	"posfinance/internal/pagination"
	"posfinance/internal/period"
)

// CategoryInput holds the fields for creating a category.
type CategoryInput struct {
	Name        string
	Description string
	ParentID    *string
	Color       string
	Icon        string
}

// CategoryUpdate holds optional category changes. A nil field is left as is.
// ParentID set to an empty string moves the category to the top level.
type CategoryUpdate struct {
	Name        *string
	Description *string
	ParentID    *string
	Color       *string
	Icon        *string
}

// BulkResult is the outcome of a bulk category action for one id. Outcome is
// empty when Error is set.
type BulkResult struct {
	ID      string               `json:"id"`
	Outcome string               `json:"outcome,omitempty"`
	Error   *apperrors.AppError `json:"error,omitempty"`
}

// Bulk outcomes besides the categorytree removal outcomes.
const (
	OutcomeActivated   = "activated"
	OutcomeDeactivated = "deactivated"
)

// CategoryServicer defines the contract for category hierarchy management.
type CategoryServicer interface {
	CreateCategory(a actor.Actor, in CategoryInput) (*models.Category, error)
	GetCategory(categoryID string) (*models.Category, error)
	ListCategories(activeOnly bool) ([]models.Category, error)
	GetCategoryTree(activeOnly bool) ([]*categorytree.Node, error)
	UpdateCategory(a actor.Actor, categoryID string, in CategoryUpdate) (*models.Category, error)
	RemoveOrDeactivate(a actor.Actor, categoryID string) (categorytree.Removal, error)
	ActivateMany(a actor.Actor, ids []string) ([]BulkResult, error)
	DeactivateMany(a actor.Actor, ids []string) ([]BulkResult, error)
	DeleteMany(a actor.Actor, ids []string) ([]BulkResult, error)
}

// BudgetItemInput describes a budget line.
type BudgetItemInput struct {
	CategoryID     *string
	Name           string
	BudgetedAmount decimal.Decimal
}

// BudgetItemUpdate holds optional budget line changes. CategoryID set to an
// empty string clears the category.
type BudgetItemUpdate struct {
	CategoryID     *string
	Name           *string
	BudgetedAmount *decimal.Decimal
}

// BudgetInput holds the fields for creating a budget.
type BudgetInput struct {
	Name        string
	Description string
	Type        models.BudgetType
	StartDate   time.Time
	EndDate     time.Time
	TotalAmount decimal.Decimal
	Items       []BudgetItemInput
}

// BudgetFilter holds optional filters for listing budgets.
type BudgetFilter struct {
	Status *models.BudgetStatus
	Type   *models.BudgetType
}

// TransactionInput describes a ledger entry against a budget item.
type TransactionInput struct {
	BudgetID        string
	BudgetItemID    string
	Amount          decimal.Decimal
	TransactionDate time.Time
	Description     string
}

// ItemDetail is a budget item with its variance.
type ItemDetail struct {
	models.BudgetItem
	Variance ledger.Variance `json:"variance"`
}

// BudgetDetail is a budget with per-item variances, the budget variance and
// the time progress through its range.
type BudgetDetail struct {
	Budget       models.Budget       `json:"budget"`
	Items        []ItemDetail        `json:"items"`
	Variance     ledger.Variance     `json:"variance"`
	TimeProgress ledger.TimeProgress `json:"time_progress"`
}

// ItemReconciliation compares an item's cached actual amount with the sum of
// its ledger entries.
type ItemReconciliation struct {
	BudgetItemID string          `json:"budget_item_id"`
	Name         string          `json:"name"`
	ActualAmount decimal.Decimal `json:"actual_amount"`
	LedgerSum    decimal.Decimal `json:"ledger_sum"`
	Drift        decimal.Decimal `json:"drift"`
}

// Reconciliation lists items of a budget whose actual amount was overridden.
type Reconciliation struct {
	BudgetID   string               `json:"budget_id"`
	Items      []ItemReconciliation `json:"items"`
	TotalDrift decimal.Decimal      `json:"total_drift"`
	Balanced   bool                 `json:"balanced"`
}

// BudgetServicer defines the contract for the budget ledger.
type BudgetServicer interface {
	CreateBudget(a actor.Actor, in BudgetInput) (*models.Budget, error)
	GetBudget(budgetID string) (*BudgetDetail, error)
	ListBudgets(page pagination.PageRequest, filter BudgetFilter) (*pagination.PageResponse[models.Budget], error)
	UpdateBudgetStatus(a actor.Actor, budgetID string, status models.BudgetStatus) (*models.Budget, error)
	AddItem(a actor.Actor, budgetID string, in BudgetItemInput) (*models.BudgetItem, error)
	UpdateItem(a actor.Actor, budgetID, itemID string, in BudgetItemUpdate) (*models.BudgetItem, error)
	RecordTransaction(a actor.Actor, in TransactionInput) (*models.BudgetTransaction, error)
	SetItemActualAmount(a actor.Actor, budgetID, itemID string, amount decimal.Decimal) (*models.BudgetItem, error)
	ListTransactions(budgetID string, page pagination.PageRequest) (*pagination.PageResponse[models.BudgetTransaction], error)
	GetReconciliation(budgetID string) (*Reconciliation, error)
}

// ReportQuery selects a report kind, its grouping and the period to cover.
type ReportQuery struct {
	Kind        ReportKind
	GroupBy     GroupBy
	Period      period.Keyword
	CustomStart *time.Time
	CustomEnd   *time.Time
}

// ReportServicer defines the contract for the finance reports.
type ReportServicer interface {
	Generate(a actor.Actor, q ReportQuery) (*Report, error)
	Comparative(a actor.Actor, keyword period.Keyword, customStart, customEnd *time.Time) (*period.ComparisonReport, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(actorID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	Recent(resourceType, resourceID string, limit int) ([]models.AuditLog, error)
}
