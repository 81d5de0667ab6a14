package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, name, email, password string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	UpdatePassword(ctx context.Context, email, newPassword string) (*models.User, error)
	SetBlocked(userID string, blocked bool) (*models.User, error)
	GetUserByID(userID string) (*models.User, error)
	GetUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	DeleteUser(userID string) error
}

// BudgetServicer defines the contract for budget administration. These
// operations bypass the posting ledger and perform no cross-entity checks.
type BudgetServicer interface {
	CreateBudget(category string, amount decimal.Decimal, startDate, endDate time.Time, description string) (*models.Budget, error)
	GetBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(budgetID string) (*models.Budget, error)
	UpdateBudget(budgetID string, fields BudgetUpdateFields) (*models.Budget, error)
	DeleteBudget(budgetID string) error
	GetBudgetsByCategoryAndRange(category string, start, end time.Time) ([]models.Budget, error)
}

// BudgetUpdateFields holds the optional fields of a budget update.
// Nil pointers leave the stored value untouched.
type BudgetUpdateFields struct {
	Category    *string
	Amount      *decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
	Description *string
}

// ExpenseCandidate is the input to the posting ledger.
type ExpenseCandidate struct {
	Category    string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// ExpenseUpdateFields holds the optional fields of a direct expense update.
type ExpenseUpdateFields struct {
	Category    *string
	Amount      *decimal.Decimal
	Date        *time.Time
	Description *string
}

// ExpenseServicer defines the contract for the budget-expense ledger and
// direct expense CRUD. PostExpense is the only path that creates expenses;
// update and delete intentionally do not reconcile the budget balance.
type ExpenseServicer interface {
	PostExpense(candidate ExpenseCandidate) (*models.Expense, error)
	GetExpenses(page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(expenseID string) (*models.Expense, error)
	UpdateExpense(expenseID string, fields ExpenseUpdateFields) (*models.Expense, error)
	DeleteExpense(expenseID string) error
}

// CategorySummary is one row of the per-category spending aggregation.
type CategorySummary struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int64           `json:"count"`
}

// MonthlyTotal is one point of a spending trend series.
type MonthlyTotal struct {
	Month       int             `json:"month"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// TrendReport pairs a trend series with generated advice.
type TrendReport struct {
	Trends      []MonthlyTotal `json:"trends"`
	Suggestions string         `json:"suggestions"`
}

// AnalyticsServicer defines read-only aggregation queries over expenses.
type AnalyticsServicer interface {
	SumByCategory(start, end time.Time) ([]CategorySummary, error)
	ExpensesByCategoryAndRange(category string, start, end time.Time) ([]models.Expense, error)
	MonthlyTrend(category string, start, end time.Time) ([]MonthlyTotal, error)
	SpendingTrends(ctx context.Context, category string, start, end time.Time) (*TrendReport, error)
}

// Suggester turns a trend series into free-text spending advice.
// Implementations must not fail: on any internal error they return a
// fixed fallback string instead.
type Suggester interface {
	GenerateSuggestions(ctx context.Context, trends []MonthlyTotal) string
}

// ReportData holds everything the PDF report renders.
type ReportData struct {
	Category       string          `json:"category"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	ExpenseCount   int64           `json:"expense_count"`
	BudgetAmount   decimal.Decimal `json:"budget_amount"`
	BudgetVariance decimal.Decimal `json:"budget_variance"`
	Suggestion     string          `json:"suggestion"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// ReportServicer assembles the data behind the financial report.
type ReportServicer interface {
	BuildReport(category string, start, end time.Time) (*ReportData, error)
}

// Notifier publishes account event notifications. Implementations are
// best-effort: failures are logged by the caller, never propagated.
type Notifier interface {
	Notify(ctx context.Context, kind, email, name string) error
}
