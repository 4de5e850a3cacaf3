package categorytree

import (
	apperrors "posfinance/internal/errors"
	"posfinance/internal/models"
)

// Removal is the outcome of removing a category.
type Removal string

const (
	HardDeleted     Removal = "hard_deleted"
	SoftDeactivated Removal = "soft_deactivated"
)

// Index maps category ids to categories for ancestor lookups.
type Index map[string]models.Category

// NewIndex indexes categories by id.
func NewIndex(categories []models.Category) Index {
	idx := make(Index, len(categories))
	for _, c := range categories {
		idx[c.ID] = c
	}
	return idx
}

// ValidateParent checks that categoryID may be reparented under
// proposedParentID. The walk up from the proposed parent is bounded by the
// number of indexed categories, so a corrupt chain cannot loop forever.
func (idx Index) ValidateParent(categoryID, proposedParentID string) error {
	if proposedParentID == categoryID {
		return apperrors.ErrSelfParentCategory
	}
	if _, ok := idx[proposedParentID]; !ok {
		return apperrors.WithMessage(apperrors.ErrCategoryNotFound, "parent category not found")
	}

	current := proposedParentID
	for steps := 0; steps <= len(idx); steps++ {
		if current == categoryID {
			return apperrors.ErrCategoryCycle
		}
		c, ok := idx[current]
		if !ok || c.ParentID == nil {
			return nil
		}
		current = *c.ParentID
	}
	// Existing data already contains a loop above the proposed parent.
	return apperrors.ErrCategoryCycle
}

// CanHardDelete reports whether a category may be removed outright.
func CanHardDelete(childCount, usageCount int64) bool {
	return childCount == 0 && usageCount == 0
}

// DecideRemoval picks between hard delete and deactivation. Categories with
// children cannot be removed until the children are gone.
func DecideRemoval(childCount, usageCount int64) (Removal, error) {
	if childCount > 0 {
		return "", apperrors.ErrCategoryHasChildren
	}
	if usageCount > 0 {
		return SoftDeactivated, nil
	}
	return HardDeleted, nil
}
