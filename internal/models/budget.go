package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetType represents the planning horizon of a budget
type BudgetType string

const (
	BudgetTypeMonthly   BudgetType = "monthly"
	BudgetTypeQuarterly BudgetType = "quarterly"
	BudgetTypeYearly    BudgetType = "yearly"
	BudgetTypeCustom    BudgetType = "custom"
)

// Valid reports whether t is a known budget type.
func (t BudgetType) Valid() bool {
	switch t {
	case BudgetTypeMonthly, BudgetTypeQuarterly, BudgetTypeYearly, BudgetTypeCustom:
		return true
	}
	return false
}

// BudgetStatus is stored as a free-form enum; transitions are not enforced.
type BudgetStatus string

const (
	BudgetStatusDraft  BudgetStatus = "draft"
	BudgetStatusActive BudgetStatus = "active"
	BudgetStatusClosed BudgetStatus = "closed"
)

// Valid reports whether s is a known budget status.
func (s BudgetStatus) Valid() bool {
	switch s {
	case BudgetStatusDraft, BudgetStatusActive, BudgetStatusClosed:
		return true
	}
	return false
}

// Budget is a named spending plan over a date range. TotalBudgetAmount and
// TotalActualAmount are caches of the sums over Items and are recomputed after
// every item or transaction mutation. PlannedAmount is the figure entered at
// creation and is informational only.
type Budget struct {
	Base
	Name              string          `gorm:"not null" json:"name"`
	Description       string          `json:"description"`
	Type              BudgetType      `gorm:"not null" json:"type"`
	StartDate         time.Time       `gorm:"not null" json:"start_date"`
	EndDate           time.Time       `gorm:"not null" json:"end_date"`
	Status            BudgetStatus    `gorm:"not null;default:active" json:"status"`
	PlannedAmount     decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"planned_amount"`
	TotalBudgetAmount decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"total_budget_amount"`
	TotalActualAmount decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"total_actual_amount"`
	CreatedBy         string          `gorm:"type:uuid" json:"created_by,omitempty"`

	// Relationships
	Items []BudgetItem `gorm:"foreignKey:BudgetID" json:"items,omitempty"`
}

// BudgetItem is a line within a budget. ActualAmount caches the sum of the
// item's transactions unless it was overridden manually.
type BudgetItem struct {
	Base
	BudgetID       string          `gorm:"type:uuid;not null;index" json:"budget_id"`
	CategoryID     *string         `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name           string          `gorm:"not null" json:"name"`
	BudgetedAmount decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"budgeted_amount"`
	ActualAmount   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"actual_amount"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BudgetTransaction is an append-only expense entry against a budget item.
type BudgetTransaction struct {
	Base
	BudgetID        string          `gorm:"type:uuid;not null;index" json:"budget_id"`
	BudgetItemID    string          `gorm:"type:uuid;not null;index" json:"budget_item_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"amount"`
	TransactionDate time.Time       `gorm:"not null;index" json:"transaction_date"`
	Description     string          `json:"description"`
	CreatedBy       string          `gorm:"type:uuid" json:"created_by,omitempty"`
}
