package models

// Category is a hierarchical label used to classify budget items and expenses.
// ParentID is a back-reference; the flat list of categories is authoritative
// and trees are rebuilt from it on every read.
type Category struct {
	Base
	Name        string  `gorm:"not null;index" json:"name"`
	Description string  `json:"description"`
	ParentID    *string `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Color       string  `json:"color"`
	Icon        string  `json:"icon"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
	CreatedBy   string  `gorm:"type:uuid" json:"created_by,omitempty"`

	// Derived, filled in by the category service.
	ChildCount int64 `gorm:"-" json:"child_count"`
	UsageCount int64 `gorm:"-" json:"usage_count"`
}
