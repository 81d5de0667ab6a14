package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// analyticsService produces read-only summaries over the expense table.
type analyticsService struct {
	db        *gorm.DB
	suggester Suggester
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB, suggester Suggester) AnalyticsServicer {
	return &analyticsService{db: db, suggester: suggester}
}

// dayStart normalizes t to the beginning of its calendar day.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dayEnd normalizes t to the last nanosecond of its calendar day, making
// range filters inclusive of the end date.
func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// normalizeMonth folds out-of-range month buckets back into 1..12, so a
// 13th bucket collapses into January.
func normalizeMonth(m int) int {
	return (m-1)%12 + 1
}

// SumByCategory groups expenses in the inclusive date range by category,
// summing amounts and counting records, ordered by total spent descending.
func (s *analyticsService) SumByCategory(start, end time.Time) ([]CategorySummary, error) {
	var summaries []CategorySummary
	err := s.db.Model(&models.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS count").
		Where("date BETWEEN ? AND ?", dayStart(start), dayEnd(end)).
		Group("category").
		Order("total_amount DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if summaries == nil {
		summaries = []CategorySummary{}
	}
	return summaries, nil
}

// ExpensesByCategoryAndRange lists expenses for one category inside the
// inclusive date range, in a stable order.
func (s *analyticsService) ExpensesByCategoryAndRange(category string, start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.
		Where("category = ? AND date BETWEEN ? AND ?", category, dayStart(start), dayEnd(end)).
		Order("date ASC, id ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// MonthlyTrend sums a category's spending per calendar month (January = 1)
// over the inclusive date range, ordered by month ascending. Month numbers
// pass through normalizeMonth so an off-by-one bucket folds into January.
func (s *analyticsService) MonthlyTrend(category string, start, end time.Time) ([]MonthlyTotal, error) {
	expenses, err := s.ExpensesByCategoryAndRange(category, start, end)
	if err != nil {
		return nil, err
	}

	totals := make(map[int]decimal.Decimal)
	for _, e := range expenses {
		m := normalizeMonth(int(e.Date.Month()))
		totals[m] = totals[m].Add(e.Amount)
	}

	trend := make([]MonthlyTotal, 0, len(totals))
	for month, total := range totals {
		trend = append(trend, MonthlyTotal{Month: month, TotalAmount: total})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Month < trend[j].Month })

	return trend, nil
}

// SpendingTrends combines the monthly trend series with generated advice.
// Suggestion generation never fails: on any internal error the suggester
// returns its fallback text.
func (s *analyticsService) SpendingTrends(ctx context.Context, category string, start, end time.Time) (*TrendReport, error) {
	trends, err := s.MonthlyTrend(category, start, end)
	if err != nil {
		return nil, err
	}

	return &TrendReport{
		Trends:      trends,
		Suggestions: s.suggester.GenerateSuggestions(ctx, trends),
	}, nil
}
