package services

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"posfinance/internal/actor"
	"posfinance/internal/categorytree"
	apperrors "posfinance/internal/errors"
	"posfinance/internal/logger"
	"posfinance/internal/models"
)

const maxCategoryNameLength = 100

// categoryService handles the category hierarchy.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// countRow receives grouped COUNT(*) results.
type countRow struct {
	ID string
	N  int64
}

// CreateCategory creates a new category, optionally under a parent.
func (s *categoryService) CreateCategory(a actor.Actor, in CategoryInput) (*models.Category, error) {
	if err := a.Require(actor.PermCategoriesWrite); err != nil {
		return nil, err
	}

	name, err := normalizeCategoryName(in.Name)
	if err != nil {
		return nil, err
	}

	parentID := in.ParentID
	if parentID != nil && *parentID == "" {
		parentID = nil
	}
	if parentID != nil {
		if _, err := s.GetCategory(*parentID); err != nil {
			if errors.Is(err, apperrors.ErrCategoryNotFound) {
				return nil, apperrors.WithMessage(apperrors.ErrCategoryNotFound, "parent category not found")
			}
			return nil, err
		}
	}

	if err := s.checkSiblingName(s.db, name, parentID, ""); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		ParentID:    parentID,
		Color:       in.Color,
		Icon:        in.Icon,
		IsActive:    true,
		CreatedBy:   a.UserID,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetCategory retrieves a category by ID with its child and usage counts.
func (s *categoryService) GetCategory(categoryID string) (*models.Category, error) {
	category, err := s.findCategory(s.db, categoryID, false)
	if err != nil {
		return nil, err
	}

	children, usage, err := s.countsFor(s.db, categoryID)
	if err != nil {
		return nil, err
	}
	category.ChildCount = children
	category.UsageCount = usage
	return category, nil
}

// ListCategories returns every category ordered by name, with counts filled in.
func (s *categoryService) ListCategories(activeOnly bool) ([]models.Category, error) {
	q := s.db.Model(&models.Category{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var categories []models.Category
	if err := q.Order("name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	children, err := s.groupCount(s.db.Model(&models.Category{}), "parent_id")
	if err != nil {
		return nil, err
	}
	usage, err := s.usageCounts(s.db)
	if err != nil {
		return nil, err
	}

	for i := range categories {
		categories[i].ChildCount = children[categories[i].ID]
		categories[i].UsageCount = usage[categories[i].ID]
	}
	return categories, nil
}

// GetCategoryTree returns the category forest built from the flat list.
func (s *categoryService) GetCategoryTree(activeOnly bool) ([]*categorytree.Node, error) {
	categories, err := s.ListCategories(activeOnly)
	if err != nil {
		return nil, err
	}
	return categorytree.Build(categories), nil
}

// UpdateCategory applies the given changes. Moving a category is checked
// against the whole ancestor chain of the new parent while every category row
// is locked, so two opposite moves cannot both pass the cycle check.
func (s *categoryService) UpdateCategory(a actor.Actor, categoryID string, in CategoryUpdate) (*models.Category, error) {
	if err := a.Require(actor.PermCategoriesWrite); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Name != nil {
		name, err := normalizeCategoryName(*in.Name)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Color != nil {
		updates["color"] = *in.Color
	}
	if in.Icon != nil {
		updates["icon"] = *in.Icon
	}
	moving := in.ParentID != nil

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var category *models.Category
		if moving && *in.ParentID != "" {
			var all []models.Category
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Order("id").Find(&all).Error
			if err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			for i := range all {
				if all[i].ID == categoryID {
					category = &all[i]
					break
				}
			}
			if category == nil {
				return apperrors.ErrCategoryNotFound
			}
			if err := categorytree.NewIndex(all).ValidateParent(categoryID, *in.ParentID); err != nil {
				return err
			}
			updates["parent_id"] = *in.ParentID
		} else {
			var err error
			if category, err = s.findCategory(tx, categoryID, true); err != nil {
				return err
			}
			if moving {
				updates["parent_id"] = nil
			}
		}

		if len(updates) == 0 {
			return nil
		}

		if in.Name != nil || moving {
			name := category.Name
			if n, ok := updates["name"].(string); ok {
				name = n
			}
			parentID := category.ParentID
			if moving {
				parentID = nil
				if *in.ParentID != "" {
					parentID = in.ParentID
				}
			}
			if err := s.checkSiblingName(tx, name, parentID, categoryID); err != nil {
				return err
			}
		}

		if err := tx.Model(category).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetCategory(categoryID)
}

// RemoveOrDeactivate hard-deletes an unused leaf category and deactivates a
// leaf that budget items or expenses still reference. Categories with
// children are refused.
func (s *categoryService) RemoveOrDeactivate(a actor.Actor, categoryID string) (categorytree.Removal, error) {
	if err := a.Require(actor.PermCategoriesWrite); err != nil {
		return "", err
	}
	return s.removeOrDeactivate(categoryID)
}

func (s *categoryService) removeOrDeactivate(categoryID string) (categorytree.Removal, error) {
	var outcome categorytree.Removal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		category, err := s.findCategory(tx, categoryID, true)
		if err != nil {
			return err
		}

		children, usage, err := s.countsFor(tx, categoryID)
		if err != nil {
			return err
		}

		outcome, err = categorytree.DecideRemoval(children, usage)
		if err != nil {
			return err
		}

		switch outcome {
		case categorytree.HardDeleted:
			if err := tx.Unscoped().Delete(category).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		case categorytree.SoftDeactivated:
			if err := tx.Model(category).Update("is_active", false).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Get().Infow("category removed", "category_id", categoryID, "outcome", outcome)
	return outcome, nil
}

// ActivateMany marks each category active. Every id is handled on its own.
func (s *categoryService) ActivateMany(a actor.Actor, ids []string) ([]BulkResult, error) {
	return s.bulk(a, ids, nil, func(id string) (string, error) {
		if err := s.setActive(id, true); err != nil {
			return "", err
		}
		return OutcomeActivated, nil
	})
}

// DeactivateMany marks each category inactive. Every id is handled on its own.
func (s *categoryService) DeactivateMany(a actor.Actor, ids []string) ([]BulkResult, error) {
	return s.bulk(a, ids, nil, func(id string) (string, error) {
		if err := s.setActive(id, false); err != nil {
			return "", err
		}
		return OutcomeDeactivated, nil
	})
}

// DeleteMany applies RemoveOrDeactivate to each category in its own
// transaction, so one refusal does not roll back the others. Deeper
// categories go first so a parent and its children in one batch can all be
// removed. Results keep the order of ids.
func (s *categoryService) DeleteMany(a actor.Actor, ids []string) ([]BulkResult, error) {
	return s.bulk(a, ids, s.deepestFirst, func(id string) (string, error) {
		outcome, err := s.removeOrDeactivate(id)
		return string(outcome), err
	})
}

// bulk applies apply to every distinct id, in the order returned by order
// when one is given, and reports one result per id in the caller's order.
func (s *categoryService) bulk(a actor.Actor, ids []string, order func([]string) ([]string, error), apply func(id string) (string, error)) ([]BulkResult, error) {
	if err := a.Require(actor.PermCategoriesWrite); err != nil {
		return nil, err
	}

	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one category id is required")
	}

	sequence := ids
	if order != nil {
		var err error
		if sequence, err = order(ids); err != nil {
			return nil, err
		}
	}

	byID := make(map[string]BulkResult, len(ids))
	for _, id := range sequence {
		outcome, err := apply(id)
		if err != nil {
			byID[id] = BulkResult{ID: id, Error: toAppError(err)}
			continue
		}
		byID[id] = BulkResult{ID: id, Outcome: outcome}
	}

	results := make([]BulkResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, byID[id])
	}
	return results, nil
}

// deepestFirst sorts ids by their depth in the category forest, deepest
// first. Unknown ids keep their relative order at the end.
func (s *categoryService) deepestFirst(ids []string) ([]string, error) {
	var all []models.Category
	if err := s.db.Find(&all).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	depth := make(map[string]int, len(all))
	for _, n := range categorytree.Flatten(categorytree.Build(all)) {
		depth[n.Category.ID] = n.Depth
	}

	depthOf := func(id string) int {
		if d, ok := depth[id]; ok {
			return d
		}
		return -1
	}
	sorted := append([]string(nil), ids...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return depthOf(sorted[i]) > depthOf(sorted[j])
	})
	return sorted, nil
}

func (s *categoryService) setActive(categoryID string, active bool) error {
	category, err := s.findCategory(s.db, categoryID, false)
	if err != nil {
		return err
	}
	if err := s.db.Model(category).Update("is_active", active).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *categoryService) findCategory(db *gorm.DB, categoryID string, lock bool) (*models.Category, error) {
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var category models.Category
	if err := db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// countsFor returns how many categories have categoryID as parent and how
// many budget items and expenses reference it.
func (s *categoryService) countsFor(db *gorm.DB, categoryID string) (int64, int64, error) {
	var children, items, expenses int64
	if err := db.Model(&models.Category{}).Where("parent_id = ?", categoryID).Count(&children).Error; err != nil {
		return 0, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := db.Model(&models.BudgetItem{}).Where("category_id = ?", categoryID).Count(&items).Error; err != nil {
		return 0, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := db.Model(&models.Expense{}).Where("category_id = ?", categoryID).Count(&expenses).Error; err != nil {
		return 0, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return children, items + expenses, nil
}

func (s *categoryService) usageCounts(db *gorm.DB) (map[string]int64, error) {
	items, err := s.groupCount(db.Model(&models.BudgetItem{}), "category_id")
	if err != nil {
		return nil, err
	}
	expenses, err := s.groupCount(db.Model(&models.Expense{}), "category_id")
	if err != nil {
		return nil, err
	}
	for id, n := range expenses {
		items[id] += n
	}
	return items, nil
}

// groupCount counts rows of q grouped by column, skipping NULLs.
func (s *categoryService) groupCount(q *gorm.DB, column string) (map[string]int64, error) {
	var rows []countRow
	err := q.Select(column + " AS id, COUNT(*) AS n").
		Where(column + " IS NOT NULL").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.ID] = r.N
	}
	return counts, nil
}

// checkSiblingName rejects a name already used by another category under the
// same parent.
func (s *categoryService) checkSiblingName(db *gorm.DB, name string, parentID *string, excludeID string) error {
	q := db.Model(&models.Category{}).Where("LOWER(name) = LOWER(?)", name)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "a category with this name already exists at this level")
	}
	return nil
}

func normalizeCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if len(name) > maxCategoryNameLength {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is too long")
	}
	return name, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// toAppError converts err into an AppError, wrapping unknown errors as
// internal errors.
func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
