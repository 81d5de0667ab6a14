package services

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/testutil"
)

// stubSuggester returns canned advice and records the trends it saw.
type stubSuggester struct {
	advice string
	trends []MonthlyTotal
}

func (s *stubSuggester) GenerateSuggestions(_ context.Context, trends []MonthlyTotal) string {
	s.trends = trends
	return s.advice
}

func TestSumByCategory(t *testing.T) {
	t.Run("groups_and_orders_by_total_descending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, &stubSuggester{})

		day := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
		testutil.CreateTestExpense(t, db, "food", "25", day)
		testutil.CreateTestExpense(t, db, "food", "25", day.AddDate(0, 0, 1))
		testutil.CreateTestExpense(t, db, "transport", "5", day)

		summaries, err := svc.SumByCategory(day.AddDate(0, 0, -5), day.AddDate(0, 0, 5))
		testutil.AssertNoError(t, err)

		if len(summaries) != 2 {
			t.Fatalf("expected 2 summaries, got %d", len(summaries))
		}
		if summaries[0].Category != "food" {
			t.Errorf("expected food first, got %s", summaries[0].Category)
		}
		testutil.AssertDecimalEqual(t, "50", summaries[0].TotalAmount)
		if summaries[0].Count != 2 {
			t.Errorf("expected count 2 for food, got %d", summaries[0].Count)
		}
		if summaries[1].Category != "transport" {
			t.Errorf("expected transport second, got %s", summaries[1].Category)
		}
		testutil.AssertDecimalEqual(t, "5", summaries[1].TotalAmount)
	})

	t.Run("range_is_inclusive_of_boundary_days", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, &stubSuggester{})

		start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestExpense(t, db, "food", "10", start.Add(5*time.Minute))
		testutil.CreateTestExpense(t, db, "food", "10", end.Add(23*time.Hour))
		testutil.CreateTestExpense(t, db, "food", "10", end.AddDate(0, 0, 1))

		summaries, err := svc.SumByCategory(start, end)
		testutil.AssertNoError(t, err)

		if len(summaries) != 1 {
			t.Fatalf("expected 1 summary, got %d", len(summaries))
		}
		testutil.AssertDecimalEqual(t, "20", summaries[0].TotalAmount)
	})

	t.Run("empty_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, &stubSuggester{})

		summaries, err := svc.SumByCategory(time.Now(), time.Now())
		testutil.AssertNoError(t, err)
		if len(summaries) != 0 {
			t.Errorf("expected no summaries, got %d", len(summaries))
		}
	})
}

func TestExpensesByCategoryAndRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAnalyticsService(db, &stubSuggester{})

	day := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	testutil.CreateTestExpense(t, db, "food", "10", day.AddDate(0, 0, 2))
	testutil.CreateTestExpense(t, db, "food", "20", day)
	testutil.CreateTestExpense(t, db, "travel", "30", day)

	expenses, err := svc.ExpensesByCategoryAndRange("food", day.AddDate(0, 0, -5), day.AddDate(0, 0, 5))
	testutil.AssertNoError(t, err)

	if len(expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(expenses))
	}
	// Ordered by date ascending.
	testutil.AssertDecimalEqual(t, "20", expenses[0].Amount)
	testutil.AssertDecimalEqual(t, "10", expenses[1].Amount)
}

func TestMonthlyTrend(t *testing.T) {
	t.Run("sums_per_month_ascending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, &stubSuggester{})

		jan := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
		mar := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestExpense(t, db, "food", "10", jan)
		testutil.CreateTestExpense(t, db, "food", "15", jan.AddDate(0, 0, 1))
		testutil.CreateTestExpense(t, db, "food", "40", mar)

		trend, err := svc.MonthlyTrend("food",
			time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC))
		testutil.AssertNoError(t, err)

		if len(trend) != 2 {
			t.Fatalf("expected 2 trend points, got %d", len(trend))
		}
		if trend[0].Month != 1 || trend[1].Month != 3 {
			t.Errorf("expected months [1 3], got [%d %d]", trend[0].Month, trend[1].Month)
		}
		testutil.AssertDecimalEqual(t, "25", trend[0].TotalAmount)
		testutil.AssertDecimalEqual(t, "40", trend[1].TotalAmount)
	})

	t.Run("empty_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db, &stubSuggester{})

		trend, err := svc.MonthlyTrend("food", time.Now().AddDate(0, -6, 0), time.Now())
		testutil.AssertNoError(t, err)
		if len(trend) != 0 {
			t.Errorf("expected empty trend, got %d points", len(trend))
		}
	})
}

func TestNormalizeMonth(t *testing.T) {
	cases := map[int]int{1: 1, 6: 6, 12: 12, 13: 1, 14: 2, 24: 12}
	for in, want := range cases {
		if got := normalizeMonth(in); got != want {
			t.Errorf("normalizeMonth(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestSpendingTrends(t *testing.T) {
	t.Run("pairs_trends_with_advice", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		suggester := &stubSuggester{advice: "Spend less on snacks."}
		svc := NewAnalyticsService(db, suggester)

		jan := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestExpense(t, db, "food", "10", jan)

		report, err := svc.SpendingTrends(context.Background(), "food",
			jan.AddDate(0, -1, 0), jan.AddDate(0, 1, 0))
		testutil.AssertNoError(t, err)

		if report.Suggestions != "Spend less on snacks." {
			t.Errorf("unexpected suggestions: %q", report.Suggestions)
		}
		if len(report.Trends) != 1 {
			t.Fatalf("expected 1 trend point, got %d", len(report.Trends))
		}
		if len(suggester.trends) != 1 {
			t.Errorf("suggester should receive the trend series, got %d points", len(suggester.trends))
		}
	})
}
