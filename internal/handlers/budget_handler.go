package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	StartDate   time.Time       `json:"startDate" binding:"required"`
	EndDate     time.Time       `json:"endDate" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
// All fields are optional; the amount is intentionally unconstrained so an
// administrative update may set any value.
type UpdateBudgetRequest struct {
	Category    *string          `json:"category" binding:"omitempty,min=1,max=100"`
	Amount      *decimal.Decimal `json:"amount"`
	StartDate   *time.Time       `json:"startDate"`
	EndDate     *time.Time       `json:"endDate"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
}

// BudgetRangeRequest selects budgets for a category inside a date range.
type BudgetRangeRequest struct {
	Category  string    `json:"category" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// CreateBudget handles the allocation of a new budget.
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.CreateBudget(req.Category, req.Amount, req.StartDate, req.EndDate, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Budget created successfully", budget)
}

// GetBudgets handles listing budgets.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.budgetService.GetBudgets(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Budgets retrieved successfully", result)
}

// GetBudget handles retrieving a specific budget.
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budget, err := h.budgetService.GetBudgetByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Budget retrieved successfully", budget)
}

// UpdateBudget handles an administrative budget update.
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Param("id"), services.BudgetUpdateFields{
		Category:    req.Category,
		Amount:      req.Amount,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Budget updated successfully", budget)
}

// DeleteBudget handles deleting a budget.
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	if err := h.budgetService.DeleteBudget(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Budget deleted successfully", nil)
}

// GetBudgetsByRange handles listing a category's budgets inside a date range.
func (h *BudgetHandler) GetBudgetsByRange(c *gin.Context) {
	var req BudgetRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budgets, err := h.budgetService.GetBudgetsByCategoryAndRange(req.Category, req.StartDate, req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Budgets retrieved successfully", budgets)
}
