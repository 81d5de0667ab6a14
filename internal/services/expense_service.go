package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// expenseService implements the budget-expense ledger and direct expense CRUD.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// PostExpense records an expense against the budget for its category and
// deducts the amount from the budget's remaining allowance.
//
// The expense insert and the budget deduction run in one database
// transaction. The deduction is a conditional update (amount >= posted
// amount in the WHERE clause), so concurrent postings against the same
// budget serialize on the budget row and can never overdraw it: whichever
// posting loses the race gets zero affected rows and rolls back, taking its
// inserted expense with it.
func (s *expenseService) PostExpense(candidate ExpenseCandidate) (*models.Expense, error) {
	if candidate.Category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if candidate.Amount.Sign() <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if candidate.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	// Several budgets may share a category; the ledger posts against the
	// one with the earliest start date.
	var budget models.Budget
	err := s.db.
		Where("category = ?", candidate.Category).
		Order("start_date ASC, id ASC").
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNoBudgetForCategory,
				fmt.Sprintf("no budget exists for the category %q", candidate.Category))
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	expense := &models.Expense{
		Category:    candidate.Category,
		Amount:      candidate.Amount,
		Date:        candidate.Date,
		Description: candidate.Description,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		res := tx.Model(&models.Budget{}).
			Where("id = ? AND amount >= ?", budget.ID, candidate.Amount).
			Update("amount", gorm.Expr("amount - ?", candidate.Amount))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			// The balance check failed at commit time, either because the
			// initial read was stale or because the budget never had enough.
			var current models.Budget
			available := budget.Amount
			if err := tx.Where("id = ?", budget.ID).First(&current).Error; err == nil {
				available = current.Amount
			}
			return apperrors.WithMessage(apperrors.ErrBudgetExceeded,
				fmt.Sprintf("expense amount $%s exceeds the available budget of $%s for the category %q",
					candidate.Amount.StringFixed(2), available.StringFixed(2), candidate.Category))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return expense, nil
}

// GetExpenses returns a paginated list of expenses, most recent first.
func (s *expenseService) GetExpenses(page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID returns an expense by ID.
func (s *expenseService) GetExpenseByID(expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ?", expenseID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense applies a direct update. The associated budget's remaining
// amount is NOT re-adjusted; only the posting path touches budget balances.
func (s *expenseService) UpdateExpense(expenseID string, fields ExpenseUpdateFields) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(expenseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Category != nil && *fields.Category != "" {
		updates["category"] = *fields.Category
	}
	if fields.Amount != nil {
		if fields.Amount.Sign() <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *fields.Amount
	}
	if fields.Date != nil {
		updates["date"] = *fields.Date
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", expense.ID).First(expense).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return expense, nil
}

// DeleteExpense soft-deletes an expense. The budget balance is not restored.
func (s *expenseService) DeleteExpense(expenseID string) error {
	expense, err := s.GetExpenseByID(expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
