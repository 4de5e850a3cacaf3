package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"posfinance/internal/categorytree"
	apperrors "posfinance/internal/errors"
	"posfinance/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=500"`
	ParentID    *string `json:"parent_id" binding:"omitempty,uuid"`
	Color       string  `json:"color" binding:"omitempty,hex_color"`
	Icon        string  `json:"icon" binding:"max=50"`
}

// UpdateCategoryRequest represents the request payload for updating a category.
// Send parent_id as an empty string to move the category to the top level.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	ParentID    *string `json:"parent_id" binding:"omitempty,uuid|eq="`
	Color       *string `json:"color" binding:"omitempty,hex_color"`
	Icon        *string `json:"icon" binding:"omitempty,max=50"`
}

// BulkCategoryRequest represents a bulk action over several categories
type BulkCategoryRequest struct {
	Action string   `json:"action" binding:"required,bulk_action"`
	IDs    []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

// RemoveCategoryResponse reports what happened to a removed category
type RemoveCategoryResponse struct {
	ID      string               `json:"id"`
	Outcome categorytree.Removal `json:"outcome"`
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a category, optionally under a parent
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Parent not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	a, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(a, services.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(a.UserID, "CREATE_CATEGORY", "category", category.ID, c.ClientIP(),
		map[string]interface{}{"name": category.Name, "parent_id": category.ParentID})

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// ListCategories handles listing categories
// @Summary     List categories
// @Description Flat list of categories with child and usage counts
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       active_only query bool false "Only active categories"
// @Success     200 {array}  models.Category "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	activeOnly, err := parseActiveOnly(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.ListCategories(activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategoryTree handles retrieving the category hierarchy
// @Summary     Category tree
// @Description Nested category tree, children sorted by name
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       active_only query bool false "Only active categories"
// @Success     200 {array}  categorytree.Node "Root nodes"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/tree [get]
func (h *CategoryHandler) GetCategoryTree(c *gin.Context) {
	activeOnly, err := parseActiveOnly(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	roots, err := h.categoryService.GetCategoryTree(activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tree": roots, "count": categorytree.Count(roots)})
}

// GetCategory handles retrieving a category by ID
// @Summary     Get category by ID
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} models.Category "Category"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategory(categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// UpdateCategory handles updating a category
// @Summary     Update category
// @Description Rename, describe, recolor or move a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Category ID"
// @Param       request body UpdateCategoryRequest true "Changes"
// @Success     200 {object} models.Category "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input, self parent or cycle"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	a, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.UpdateCategory(a, categoryID, services.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(a.UserID, "UPDATE_CATEGORY", "category", category.ID, c.ClientIP(),
		map[string]interface{}{"name": category.Name, "parent_id": category.ParentID})

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles removing a category
// @Summary     Remove category
// @Description Hard-deletes an unused category, deactivates a used one
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} RemoveCategoryResponse "Removal outcome"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Category has children"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	a, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	outcome, err := h.categoryService.RemoveOrDeactivate(a, categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(a.UserID, "DELETE_CATEGORY", "category", categoryID, c.ClientIP(),
		map[string]interface{}{"outcome": outcome})

	c.JSON(http.StatusOK, RemoveCategoryResponse{ID: categoryID, Outcome: outcome})
}

// BulkAction handles activating, deactivating or deleting several categories
// @Summary     Bulk category action
// @Description Applies the action to each id independently and reports per-id results
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BulkCategoryRequest true "Action and ids"
// @Success     200 {array}  services.BulkResult "Per-id results"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /categories/bulk [post]
func (h *CategoryHandler) BulkAction(c *gin.Context) {
	a, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BulkCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var results []services.BulkResult
	switch req.Action {
	case "activate":
		results, err = h.categoryService.ActivateMany(a, req.IDs)
	case "deactivate":
		results, err = h.categoryService.DeactivateMany(a, req.IDs)
	default:
		results, err = h.categoryService.DeleteMany(a, req.IDs)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	for _, r := range results {
		if r.Error == nil {
			h.auditService.Log(a.UserID, "BULK_"+strings.ToUpper(r.Outcome), "category", r.ID, c.ClientIP(), nil)
		}
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func parseActiveOnly(c *gin.Context) (bool, error) {
	switch c.Query("active_only") {
	case "", "false":
		return false, nil
	case "true":
		return true, nil
	default:
		return false, apperrors.WithMessage(apperrors.ErrInvalidInput, "active_only must be 'true' or 'false'")
	}
}
