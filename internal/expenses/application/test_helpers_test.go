package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sebuszqo/ExpenseTracker/internal/expenses/domain"
	"github.com/sebuszqo/ExpenseTracker/internal/expenses/infrastructure"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

var fixedNow = time.Date(2024, time.March, 9, 14, 30, 0, 0, time.UTC)

// countingExpenseRepository records writes so tests can assert that a failed
// operation never reached the store.
type countingExpenseRepository struct {
	domain.ExpenseRepository
	saves, deletes int
}

func (r *countingExpenseRepository) Save(ctx context.Context, e *domain.Expense) error {
	r.saves++
	return r.ExpenseRepository.Save(ctx, e)
}

func (r *countingExpenseRepository) DeleteByID(ctx context.Context, id int64) error {
	r.deletes++
	return r.ExpenseRepository.DeleteByID(ctx, id)
}

type countingCategoryRepository struct {
	domain.CategoryRepository
	deletes int
}

func (r *countingCategoryRepository) DeleteByID(ctx context.Context, id int64) error {
	r.deletes++
	return r.CategoryRepository.DeleteByID(ctx, id)
}

type fixture struct {
	store        *infrastructure.MemoryStore
	users        user.Service
	categories   *CategoryRegistry
	ledger       *ExpenseLedger
	expenseRepo  *countingExpenseRepository
	categoryRepo *countingCategoryRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := infrastructure.NewMemoryStore()
	expenseRepo := &countingExpenseRepository{ExpenseRepository: store.Expenses()}
	categoryRepo := &countingCategoryRepository{CategoryRepository: store.Categories()}

	users := user.NewUserService(store.Users())
	categories := NewCategoryRegistry(categoryRepo)
	categories.now = func() time.Time { return fixedNow }
	ledger := NewExpenseLedger(expenseRepo, users, categories)
	ledger.now = func() time.Time { return fixedNow }

	return &fixture{
		store:        store,
		users:        users,
		categories:   categories,
		ledger:       ledger,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

func (f *fixture) johnDoe(t *testing.T) *user.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), "John Doe", "john.doe@example.com", "securepassword123")
	require.NoError(t, err)
	return u
}

func (f *fixture) groceries(t *testing.T) *domain.Category {
	t.Helper()
	c, err := f.categories.Create(context.Background(), "Groceries", "Food and household supplies")
	require.NoError(t, err)
	return c
}
