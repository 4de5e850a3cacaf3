package categorytree

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	apperrors "posfinance/internal/errors"
	"posfinance/internal/models"
)

func cat(id, name string, parent string) models.Category {
	c := models.Category{Base: models.Base{ID: id}, Name: name, IsActive: true}
	if parent != "" {
		c.ParentID = &parent
	}
	return c
}

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Category.Name)
	}
	return out
}

func TestBuild(t *testing.T) {
	categories := []models.Category{
		cat("5", "Utilities", "1"),
		cat("1", "Operations", ""),
		cat("2", "Marketing", ""),
		cat("3", "Rent", "1"),
		cat("4", "Ads", "2"),
		cat("6", "Electricity", "5"),
	}

	forest := Build(categories)

	assert.Equal(t, []string{"Marketing", "Operations"}, names(forest))
	assert.Equal(t, []string{"Ads"}, names(forest[0].Children))
	assert.Equal(t, []string{"Rent", "Utilities"}, names(forest[1].Children))
	assert.Equal(t, []string{"Electricity"}, names(forest[1].Children[1].Children))
	assert.Equal(t, 2, forest[1].Children[1].Children[0].Depth)
	assert.Equal(t, len(categories), Count(forest))
}

func TestBuildOrdersTiesByID(t *testing.T) {
	forest := Build([]models.Category{cat("b", "Same", ""), cat("a", "Same", "")})

	assert.Equal(t, "a", forest[0].Category.ID)
	assert.Equal(t, "b", forest[1].Category.ID)
}

func TestBuildMissingParentBecomesRoot(t *testing.T) {
	forest := Build([]models.Category{cat("1", "Orphan", "gone"), cat("2", "Root", "")})

	assert.Equal(t, []string{"Orphan", "Root"}, names(forest))
}

func TestBuildCycleStillListsEveryCategory(t *testing.T) {
	categories := []models.Category{
		cat("a", "A", "c"),
		cat("b", "B", "a"),
		cat("c", "C", "b"),
		cat("r", "Root", ""),
	}

	forest := Build(categories)

	assert.Equal(t, 4, Count(forest))
	flat := Flatten(forest)
	seen := map[string]int{}
	for _, f := range flat {
		seen[f.Category.ID]++
	}
	for _, c := range categories {
		assert.Equal(t, 1, seen[c.ID])
	}
}

func TestFlatten(t *testing.T) {
	forest := Build([]models.Category{
		cat("1", "Operations", ""),
		cat("2", "Rent", "1"),
		cat("3", "Marketing", ""),
	})

	flat := Flatten(forest)

	assert.Equal(t, 3, len(flat))
	assert.Equal(t, "Marketing", flat[0].Category.Name)
	assert.Equal(t, "Operations", flat[1].Category.Name)
	assert.Equal(t, "Rent", flat[2].Category.Name)
	assert.Equal(t, 1, flat[2].Depth)
}

func TestValidateParent(t *testing.T) {
	idx := NewIndex([]models.Category{
		cat("a", "A", ""),
		cat("b", "B", "a"),
		cat("c", "C", "b"),
		cat("d", "D", ""),
	})

	t.Run("self parent", func(t *testing.T) {
		err := idx.ValidateParent("a", "a")
		assert.True(t, errors.Is(err, apperrors.ErrSelfParentCategory))
	})

	t.Run("deep cycle", func(t *testing.T) {
		err := idx.ValidateParent("a", "c")
		assert.True(t, errors.Is(err, apperrors.ErrCategoryCycle))
	})

	t.Run("direct child as parent", func(t *testing.T) {
		err := idx.ValidateParent("a", "b")
		assert.True(t, errors.Is(err, apperrors.ErrCategoryCycle))
	})

	t.Run("unknown parent", func(t *testing.T) {
		err := idx.ValidateParent("a", "zzz")
		assert.True(t, errors.Is(err, apperrors.ErrCategoryNotFound))
	})

	t.Run("valid move", func(t *testing.T) {
		assert.NoError(t, idx.ValidateParent("c", "d"))
		assert.NoError(t, idx.ValidateParent("d", "c"))
	})

	t.Run("existing loop above parent", func(t *testing.T) {
		looped := NewIndex([]models.Category{
			cat("x", "X", "y"),
			cat("y", "Y", "x"),
			cat("n", "N", ""),
		})
		err := looped.ValidateParent("n", "x")
		assert.True(t, errors.Is(err, apperrors.ErrCategoryCycle))
	})
}

func TestDecideRemoval(t *testing.T) {
	tests := []struct {
		name     string
		children int64
		usage    int64
		want     Removal
		wantErr  error
	}{
		{name: "unused leaf", want: HardDeleted},
		{name: "used leaf", usage: 3, want: SoftDeactivated},
		{name: "has children", children: 1, wantErr: apperrors.ErrCategoryHasChildren},
		{name: "has children and usage", children: 2, usage: 5, wantErr: apperrors.ErrCategoryHasChildren},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecideRemoval(tt.children, tt.usage)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == HardDeleted, CanHardDelete(tt.children, tt.usage))
		})
	}
}
