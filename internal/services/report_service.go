package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// reportService assembles the data behind the financial report.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// BuildReport aggregates spending for a category and date range and compares
// it against the budget whose validity window overlaps the range. A missing
// budget contributes a zero amount rather than an error.
func (s *reportService) BuildReport(category string, start, end time.Time) (*ReportData, error) {
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	from, to := dayStart(start), dayEnd(end)

	var agg struct {
		TotalExpenses decimal.Decimal
		Count         int64
	}
	err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0) AS total_expenses, COUNT(*) AS count").
		Where("category = ? AND date BETWEEN ? AND ?", category, from, to).
		Scan(&agg).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrReportFailed, err)
	}

	budgetAmount := decimal.Zero
	var budget models.Budget
	err = s.db.
		Where("category = ? AND start_date <= ? AND end_date >= ?", category, to, from).
		Order("start_date ASC, id ASC").
		First(&budget).Error
	switch {
	case err == nil:
		budgetAmount = budget.Amount
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No budget to compare against; the report still renders.
	default:
		return nil, apperrors.Wrap(apperrors.ErrReportFailed, err)
	}

	variance := agg.TotalExpenses.Sub(budgetAmount)

	return &ReportData{
		Category:       category,
		StartDate:      start,
		EndDate:        end,
		TotalExpenses:  agg.TotalExpenses,
		ExpenseCount:   agg.Count,
		BudgetAmount:   budgetAmount,
		BudgetVariance: variance,
		Suggestion:     varianceMessage(variance),
		GeneratedAt:    time.Now(),
	}, nil
}

// varianceMessage describes the budget variance: positive means overspent,
// negative means under budget.
func varianceMessage(variance decimal.Decimal) string {
	switch variance.Sign() {
	case 1:
		return fmt.Sprintf("You exceeded your budget by $%s.", variance.StringFixed(2))
	case -1:
		return fmt.Sprintf("You saved $%s.", variance.Abs().StringFixed(2))
	default:
		return "You stayed on budget."
	}
}
