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

// ExpenseHandler handles expense and aggregation requests.
type ExpenseHandler struct {
	expenseService   services.ExpenseServicer
	analyticsService services.AnalyticsServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, analyticsService services.AnalyticsServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, analyticsService: analyticsService}
}

// CreateExpenseRequest represents the request payload for posting an expense.
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
}

// UpdateExpenseRequest represents the request payload for a direct expense update.
type UpdateExpenseRequest struct {
	Category    *string          `json:"category" binding:"omitempty,min=1,max=100"`
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,gt=0"`
	Date        *time.Time       `json:"date"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
}

// DateRangeRequest selects an inclusive date range.
type DateRangeRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// CategoryRangeRequest selects one category inside an inclusive date range.
type CategoryRangeRequest struct {
	Category  string    `json:"category" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// CreateExpense posts an expense through the budget-expense ledger. This is
// the only path that creates expenses.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.PostExpense(services.ExpenseCandidate{
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Expense created successfully", expense)
}

// GetExpenses handles listing expenses.
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.expenseService.GetExpenses(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Expenses retrieved successfully", result)
}

// GetExpense handles retrieving a specific expense.
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	expense, err := h.expenseService.GetExpenseByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Expense retrieved successfully", expense)
}

// UpdateExpense handles a direct expense update. The linked budget's
// remaining amount is not re-adjusted.
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Param("id"), services.ExpenseUpdateFields{
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Expense updated successfully", expense)
}

// DeleteExpense handles deleting an expense.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	if err := h.expenseService.DeleteExpense(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Expense deleted successfully", nil)
}

// SumByCategory aggregates spending per category inside a date range.
func (h *ExpenseHandler) SumByCategory(c *gin.Context) {
	var req DateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Start date and end date are required"))
		return
	}

	summaries, err := h.analyticsService.SumByCategory(req.StartDate, req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Expenses aggregated by category successfully", summaries)
}

// ExpensesByCategoryAndRange lists one category's expenses inside a date range.
func (h *ExpenseHandler) ExpensesByCategoryAndRange(c *gin.Context) {
	var req CategoryRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category and both startDate and endDate are required"))
		return
	}

	expenses, err := h.analyticsService.ExpensesByCategoryAndRange(req.Category, req.StartDate, req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Expenses retrieved successfully", expenses)
}

// SpendingTrends returns the monthly trend series for a category together
// with generated spending advice.
func (h *ExpenseHandler) SpendingTrends(c *gin.Context) {
	var req CategoryRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category, startDate and endDate are required"))
		return
	}

	trends, err := h.analyticsService.SpendingTrends(c.Request.Context(), req.Category, req.StartDate, req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Spending trends retrieved successfully", trends)
}
