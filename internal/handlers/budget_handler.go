package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "posfinance/internal/errors"
	"posfinance/internal/models"
	"posfinance/internal/pagination"
	"posfinance/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// BudgetItemRequest describes a budget line in a create request.
type BudgetItemRequest struct {
	CategoryID     *string         `json:"category_id" binding:"omitempty,uuid"`
	Name           string          `json:"name"`
	BudgetedAmount decimal.Decimal `json:"budgeted_amount"`
}

// CreateBudgetRequest represents the request payload for creating a budget.
// Items with an empty name or a non-positive amount are skipped.
type CreateBudgetRequest struct {
	Name        string              `json:"name" binding:"required,max=200"`
	Description string              `json:"description" binding:"max=1000"`
	Type        models.BudgetType   `json:"type" binding:"required,budget_type"`
	StartDate   string              `json:"start_date" binding:"required"`
	EndDate     string              `json:"end_date" binding:"required"`
	TotalAmount *decimal.Decimal    `json:"total_amount" binding:"required"`
	Items       []BudgetItemRequest `json:"items" binding:"dive"`
}

// UpdateBudgetStatusRequest represents the request payload for a status change.
type UpdateBudgetStatusRequest struct {
	Status models.BudgetStatus `json:"status" binding:"required,budget_status"`
}

// AddBudgetItemRequest represents the request payload for adding a budget line.
type AddBudgetItemRequest struct {
	CategoryID     *string          `json:"category_id" binding:"omitempty,uuid"`
	Name           string           `json:"name" binding:"required,max=200"`
	BudgetedAmount *decimal.Decimal `json:"budgeted_amount" binding:"required"`
}

// UpdateBudgetItemRequest represents the request payload for changing a budget
// line. Send category_id as an empty string to clear the category.
type UpdateBudgetItemRequest struct {
	CategoryID     *string          `json:"category_id" binding:"omitempty,uuid|eq="`
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	BudgetedAmount *decimal.Decimal `json:"budgeted_amount"`
}

// SetActualAmountRequest overrides the cached actual amount of a budget line.
type SetActualAmountRequest struct {
	ActualAmount *decimal.Decimal `json:"actual_amount" binding:"required"`
}

// RecordTransactionRequest represents a spend against a budget line.
type RecordTransactionRequest struct {
	BudgetItemID    string           `json:"budget_item_id" binding:"required,uuid"`
	Amount          *decimal.Decimal `json:"amount" binding:"required"`
	TransactionDate string           `json:"transaction_date" binding:"required"`
	Description     string           `json:"description" binding:"max=500"`
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Create a budget with its initial items; totals are derived from the items
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input or range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	a, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items := make([]services.BudgetItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.BudgetItemInput{
			CategoryID:     it.CategoryID,
			Name:           it.Name,
			BudgetedAmount: it.BudgetedAmount,
		})
	}

	budget, err := h.budgetService.CreateBudget(a, services.BudgetInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		StartDate:   start,
		EndDate:     end,
		TotalAmount: *req.TotalAmount,
		Items:       items,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(a.UserID, "CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"name": budget.Name, "type": budget.Type, "items": len(budget.Items)})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// ListBudgets handles listing budgets.
// @Summary     List budgets
// @Description Paginated budgets, newest start date first
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "Filter by status (draft/active/closed)"
// @Param       type      query string false "Filter by type (monthly/quarterly/yearly/custom)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.BudgetFilter
	if v := c.Query("status"); v != "" {
		s := models.BudgetStatus(v)
		if !s.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be one of draft, active, closed"))
			return
		}
		filter.Status = &s
	}
	if v := c.Query("type"); v != "" {
		t := models.BudgetType(v)
		if !t.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be one of monthly, quarterly, yearly, custom"))
			return
		}
		filter.Type = &t
	}

	result, err := h.budgetService.ListBudgets(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBudget handles retrieving a budget with its variance.
// @Summary     Get budget by ID
// @Description Budget with items, per-item and overall variance, and time progress
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} services.BudgetDetail "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	detail, err := h.budgetService.GetBudget(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// UpdateBudgetStatus handles a budget status change.
// @Summary     Update budget status
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                    true "Budget ID"
// @Param       request body UpdateBudgetStatusRequest true "New status"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id}/status [patch]
func (h *BudgetHandler) UpdateBudgetStatus(c *gin.Context) {
	a, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudgetStatus(a, budgetID, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(a.UserID, "UPDATE_BUDGET_STATUS", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"status": req.Status})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// AddItem handles adding a line to a budget.
// @Summary     Add budget item
// @Description Adds a line and recomputes the budget totals
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Budget ID"
// @Param       request body AddBudgetItemRequest true "Item details"
// @Success     201 {object} models.BudgetItem "Item created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Budget or category not found"
// @Router      /budgets/{id}/items [post]
func (h *BudgetHandler) AddItem(c *gin.Context) {
	a, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.budgetService.AddItem(a, budgetID, services.BudgetItemInput{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		BudgetedAmount: *req.BudgetedAmount,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(a.UserID, "ADD_BUDGET_ITEM", "budget_item", item.ID, c.ClientIP(),
		map[string]interface{}{"budget_id": budgetID, "name": item.Name, "budgeted_amount": item.BudgetedAmount.String()})

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateItem handles changing a budget line.
// @Summary     Update budget item
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Budget ID"
// @Param       itemId  path string                  true "Budget item ID"
// @Param       request body UpdateBudgetItemRequest true "Changes"
// @Success     200 {object} models.BudgetItem "Updated item"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Budget or item not found"
// @Router      /budgets/{id}/items/{itemId} [put]
func (h *BudgetHandler) UpdateItem(c *gin.Context) {
	a, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	itemID, err := parsePathID(c, "itemId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.budgetService.UpdateItem(a, budgetID, itemID, services.BudgetItemUpdate{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		BudgetedAmount: req.BudgetedAmount,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(a.UserID, "UPDATE_BUDGET_ITEM", "budget_item", itemID, c.ClientIP(),
		map[string]interface{}{"budget_id": budgetID, "name": item.Name, "budgeted_amount": item.BudgetedAmount.String()})

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// SetItemActualAmount handles a manual override of a line's actual amount.
// @Summary     Override item actual amount
// @Description Sets the cached actual amount without touching the ledger; see the reconciliation endpoint for drift
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                 true "Budget ID"
// @Param       itemId  path string                 true "Budget item ID"
// @Param       request body SetActualAmountRequest true "Actual amount"
// @Success     200 {object} models.BudgetItem "Updated item"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Budget or item not found"
// @Router      /budgets/{id}/items/{itemId}/actual [put]
func (h *BudgetHandler) SetItemActualAmount(c *gin.Context) {
	a, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	itemID, err := parsePathID(c, "itemId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetActualAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.budgetService.SetItemActualAmount(a, budgetID, itemID, *req.ActualAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(a.UserID, "OVERRIDE_ACTUAL_AMOUNT", "budget_item", itemID, c.ClientIP(),
		map[string]interface{}{"budget_id": budgetID, "actual_amount": req.ActualAmount.String()})

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// RecordTransaction handles recording a spend against a budget line.
// @Summary     Record budget transaction
// @Description Appends a ledger entry and recomputes the item and budget actuals
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Budget ID"
// @Param       request body RecordTransactionRequest true "Transaction details"
// @Success     201 {object} models.BudgetTransaction "Transaction recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Budget or item not found"
// @Router      /budgets/{id}/transactions [post]
func (h *BudgetHandler) RecordTransaction(c *gin.Context) {
	a, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate("transaction_date", req.TransactionDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txn, err := h.budgetService.RecordTransaction(a, services.TransactionInput{
		BudgetID:        budgetID,
		BudgetItemID:    req.BudgetItemID,
		Amount:          *req.Amount,
		TransactionDate: date,
		Description:     req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(a.UserID, "RECORD_BUDGET_TRANSACTION", "budget_transaction", txn.ID, c.ClientIP(),
		map[string]interface{}{"budget_id": budgetID, "budget_item_id": req.BudgetItemID, "amount": txn.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"transaction": txn})
}

// ListTransactions handles listing the ledger of a budget.
// @Summary     List budget transactions
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Budget ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.BudgetTransaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id}/transactions [get]
func (h *BudgetHandler) ListTransactions(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.budgetService.ListTransactions(budgetID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetReconciliation handles comparing cached actuals with the ledger.
// @Summary     Budget reconciliation
// @Description Lists items whose actual amount differs from the sum of their transactions
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} services.Reconciliation "Reconciliation"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id}/reconciliation [get]
func (h *BudgetHandler) GetReconciliation(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rec, err := h.budgetService.GetReconciliation(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// AuditTrailQuery holds the query parameters for a budget's audit trail.
type AuditTrailQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

// GetAuditTrail handles listing the newest audit entries for a budget.
// @Summary     Budget audit trail
// @Description Lists the most recent audited mutations of a budget, newest first
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  string true  "Budget ID"
// @Param       limit query int    false "Maximum entries (default 20, max 200)"
// @Success     200 {object} map[string]interface{} "Audit entries"
// @Failure     400 {object} ErrorResponse "Invalid budget ID or limit"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id}/audit [get]
func (h *BudgetHandler) GetAuditTrail(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q AuditTrailQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if _, err := h.budgetService.GetBudget(budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.auditService.Recent("budget", budgetID, q.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
