package services

import (
	"strings"
	"testing"
	"time"

	"fintrack/internal/testutil"
)

func TestBuildReport(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)

	t.Run("overspent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)
		testutil.CreateTestBudgetWithRange(t, db, "food", "100", start, end)
		testutil.CreateTestExpense(t, db, "food", "80", start.AddDate(0, 0, 10))
		testutil.CreateTestExpense(t, db, "food", "45", start.AddDate(0, 1, 0))

		report, err := svc.BuildReport("food", start, end)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, "125", report.TotalExpenses)
		if report.ExpenseCount != 2 {
			t.Errorf("expected 2 expenses, got %d", report.ExpenseCount)
		}
		testutil.AssertDecimalEqual(t, "100", report.BudgetAmount)
		testutil.AssertDecimalEqual(t, "25", report.BudgetVariance)
		if report.Suggestion != "You exceeded your budget by $25.00." {
			t.Errorf("unexpected suggestion: %q", report.Suggestion)
		}
	})

	t.Run("under_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)
		testutil.CreateTestBudgetWithRange(t, db, "food", "100", start, end)
		testutil.CreateTestExpense(t, db, "food", "60", start.AddDate(0, 0, 10))

		report, err := svc.BuildReport("food", start, end)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, "-40", report.BudgetVariance)
		if report.Suggestion != "You saved $40.00." {
			t.Errorf("unexpected suggestion: %q", report.Suggestion)
		}
	})

	t.Run("on_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)
		testutil.CreateTestBudgetWithRange(t, db, "food", "100", start, end)
		testutil.CreateTestExpense(t, db, "food", "100", start.AddDate(0, 0, 10))

		report, err := svc.BuildReport("food", start, end)
		testutil.AssertNoError(t, err)

		if report.Suggestion != "You stayed on budget." {
			t.Errorf("unexpected suggestion: %q", report.Suggestion)
		}
	})

	t.Run("missing_budget_contributes_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)
		testutil.CreateTestExpense(t, db, "food", "30", start.AddDate(0, 0, 10))

		report, err := svc.BuildReport("food", start, end)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, "0", report.BudgetAmount)
		testutil.AssertDecimalEqual(t, "30", report.BudgetVariance)
		if !strings.Contains(report.Suggestion, "exceeded") {
			t.Errorf("expected overspend message, got %q", report.Suggestion)
		}
	})

	t.Run("ignores_expenses_outside_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)
		testutil.CreateTestBudgetWithRange(t, db, "food", "100", start, end)
		testutil.CreateTestExpense(t, db, "food", "50", start.AddDate(0, 0, 10))
		testutil.CreateTestExpense(t, db, "food", "500", end.AddDate(0, 1, 0))
		testutil.CreateTestExpense(t, db, "travel", "500", start.AddDate(0, 0, 10))

		report, err := svc.BuildReport("food", start, end)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, "50", report.TotalExpenses)
		if report.ExpenseCount != 1 {
			t.Errorf("expected 1 expense, got %d", report.ExpenseCount)
		}
	})

	t.Run("empty_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db)

		_, err := svc.BuildReport("", start, end)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
