package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email. The plain
// password is always "password123".
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBudget creates a budget for the given category and amount,
// valid for the current calendar year.
func CreateTestBudget(t *testing.T, db *gorm.DB, category string, amount string) *models.Budget {
	t.Helper()

	now := time.Now().UTC()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), time.December, 31, 23, 59, 59, 0, time.UTC)
	return CreateTestBudgetWithRange(t, db, category, amount, start, end)
}

// CreateTestBudgetWithRange creates a budget with an explicit validity window.
func CreateTestBudgetWithRange(t *testing.T, db *gorm.DB, category, amount string, start, end time.Time) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Category:  category,
		Amount:    decimal.RequireFromString(amount),
		StartDate: start,
		EndDate:   end,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestExpense creates an expense record directly, bypassing the ledger.
func CreateTestExpense(t *testing.T, db *gorm.DB, category, amount string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
		Date:        date,
		Description: fmt.Sprintf("test expense %d", nextID()),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
