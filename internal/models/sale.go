package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus represents the lifecycle state of a point-of-sale ticket
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusRefunded  SaleStatus = "refunded"
)

// Sale is a completed point-of-sale ticket. Sales are written by the POS
// front end; the finance pages only read and aggregate them.
type Sale struct {
	Base
	SaleNumber     string          `gorm:"uniqueIndex" json:"sale_number"`
	SaleDate       time.Time       `gorm:"not null;index" json:"sale_date"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"subtotal"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"tax_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"discount_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"total_amount"`
	PaymentMethod  string          `json:"payment_method"`
	Status         SaleStatus      `gorm:"not null;default:completed" json:"status"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// SaleItem is a product line on a sale.
type SaleItem struct {
	Base
	SaleID      string          `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductName string          `gorm:"not null" json:"product_name"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"unit_price"`
	CostPrice   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"cost_price"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"total_price"`
	TaxRateID   *string         `gorm:"type:uuid;index" json:"tax_rate_id,omitempty"`
}

// Expense is an operating expense recorded outside of budgets.
type Expense struct {
	Base
	CategoryID    *string         `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"amount"`
	ExpenseDate   time.Time       `gorm:"not null;index" json:"expense_date"`
	PaymentMethod string          `json:"payment_method"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TaxRate is a named tax percentage applied to sale items.
type TaxRate struct {
	Base
	Name     string          `gorm:"not null" json:"name"`
	Rate     decimal.Decimal `gorm:"type:numeric(7,4);not null" json:"rate"`
	IsActive bool            `gorm:"default:true" json:"is_active"`
}
