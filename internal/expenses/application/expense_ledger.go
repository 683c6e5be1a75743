package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/ExpenseTracker/internal/expenses/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

type UserDirectoryInterface interface {
	GetUserByID(ctx context.Context, id int64) (*user.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type CategoryRegistryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
}

// ExpenseInput carries the fields of a create or update request. ExpenseDate is
// optional and defaults to today on create.
type ExpenseInput struct {
	Amount      decimal.Decimal
	Description string
	CategoryID  int64
	UserID      int64
	ExpenseDate *time.Time
}

// ExpenseLedger is the only component that reasons across users, categories
// and expenses. Every referenced entity is resolved explicitly before a write.
type ExpenseLedger struct {
	repo             domain.ExpenseRepository
	userDirectory    UserDirectoryInterface
	categoryRegistry CategoryRegistryInterface
	now              func() time.Time
}

func NewExpenseLedger(repo domain.ExpenseRepository, userDirectory UserDirectoryInterface, categoryRegistry CategoryRegistryInterface) *ExpenseLedger {
	return &ExpenseLedger{
		repo:             repo,
		userDirectory:    userDirectory,
		categoryRegistry: categoryRegistry,
		now:              time.Now,
	}
}

// Create resolves the user before the category, so a missing user is reported
// even when the category is missing too.
func (s *ExpenseLedger) Create(ctx context.Context, input ExpenseInput) (*domain.ExpenseSnapshot, error) {
	owner, err := s.userDirectory.GetUserByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRegistry.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expense := &domain.Expense{
		Amount:      input.Amount,
		Description: input.Description,
		CategoryID:  category.ID,
		UserID:      owner.ID,
		ExpenseDate: domain.DateOnly(now),
		CreatedAt:   now.UTC(),
	}
	if input.ExpenseDate != nil {
		expense.ExpenseDate = domain.DateOnly(*input.ExpenseDate)
	}
	expense.RoundToTwoDecimalPlaces()
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return newSnapshot(expense, owner, category), nil
}

func (s *ExpenseLedger) ListAll(ctx context.Context) ([]domain.ExpenseSnapshot, error) {
	expenses, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.snapshots(ctx, expenses)
}

func (s *ExpenseLedger) ListByUser(ctx context.Context, userID int64) ([]domain.ExpenseSnapshot, error) {
	exists, err := s.userDirectory.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, expenseErrors.ErrUserNotFound
	}

	expenses, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.snapshots(ctx, expenses)
}

func (s *ExpenseLedger) GetByID(ctx context.Context, id int64) (*domain.ExpenseSnapshot, error) {
	expense, err := s.findExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, expense)
}

// Update changes amount, description and category only. The user association
// and the expense date of the stored expense are kept whatever the input says.
func (s *ExpenseLedger) Update(ctx context.Context, id int64, input ExpenseInput) (*domain.ExpenseSnapshot, error) {
	expense, err := s.findExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRegistry.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	updated := *expense
	updated.Amount = input.Amount
	updated.Description = input.Description
	updated.CategoryID = category.ID
	updatedAt := s.now().UTC()
	updated.UpdatedAt = &updatedAt
	updated.RoundToTwoDecimalPlaces()
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	owner, err := s.userDirectory.GetUserByID(ctx, updated.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, &updated); err != nil {
		if errors.Is(err, expenseErrors.ErrRecordNotFound) {
			return nil, expenseErrors.ErrExpenseNotFound
		}
		return nil, err
	}
	return newSnapshot(&updated, owner, category), nil
}

func (s *ExpenseLedger) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return expenseErrors.ErrExpenseNotFound
	}
	return s.repo.DeleteByID(ctx, id)
}

func (s *ExpenseLedger) findExpense(ctx context.Context, id int64) (*domain.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, expenseErrors.ErrRecordNotFound) {
			return nil, expenseErrors.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// snapshots resolves references one expense at a time; there is no batching or cache.
func (s *ExpenseLedger) snapshots(ctx context.Context, expenses []domain.Expense) ([]domain.ExpenseSnapshot, error) {
	result := make([]domain.ExpenseSnapshot, 0, len(expenses))
	for i := range expenses {
		snapshot, err := s.snapshot(ctx, &expenses[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *snapshot)
	}
	return result, nil
}

func (s *ExpenseLedger) snapshot(ctx context.Context, expense *domain.Expense) (*domain.ExpenseSnapshot, error) {
	owner, err := s.userDirectory.GetUserByID(ctx, expense.UserID)
	if err != nil {
		return nil, err
	}

	var category *domain.Category
	if expense.HasCategory() {
		category, err = s.categoryRegistry.GetByID(ctx, expense.CategoryID)
		if err != nil {
			return nil, err
		}
	}
	return newSnapshot(expense, owner, category), nil
}

func newSnapshot(expense *domain.Expense, owner *user.User, category *domain.Category) *domain.ExpenseSnapshot {
	snapshot := &domain.ExpenseSnapshot{
		ID:          expense.ID,
		Amount:      expense.Amount,
		Description: expense.Description,
		UserID:      owner.ID,
		UserName:    owner.Name,
		ExpenseDate: expense.ExpenseDate,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
	if category != nil {
		snapshot.CategoryID = category.ID
		snapshot.CategoryName = category.Name
	}
	return snapshot
}
