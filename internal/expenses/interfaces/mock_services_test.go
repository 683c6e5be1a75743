package interfaces

import (
	"context"

	"github.com/sebuszqo/ExpenseTracker/internal/expenses/application"
	"github.com/sebuszqo/ExpenseTracker/internal/expenses/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
)

type MockCategoryService struct {
	categories []domain.Category
	err        error
	deleted    []int64
}

func (m *MockCategoryService) Create(_ context.Context, name, description string) (*domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	category := domain.Category{ID: int64(len(m.categories) + 1), Name: name, Description: description}
	m.categories = append(m.categories, category)
	return &category, nil
}

func (m *MockCategoryService) ListAll(_ context.Context) ([]domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *MockCategoryService) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.categories {
		if m.categories[i].ID == id {
			return &m.categories[i], nil
		}
	}
	return nil, expenseErrors.ErrCategoryNotFound
}

func (m *MockCategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := m.GetByID(ctx, id); err != nil {
		return err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type MockExpenseService struct {
	snapshots []domain.ExpenseSnapshot
	err       error
	lastInput *application.ExpenseInput
}

func (m *MockExpenseService) Create(_ context.Context, input application.ExpenseInput) (*domain.ExpenseSnapshot, error) {
	m.lastInput = &input
	if m.err != nil {
		return nil, m.err
	}
	snapshot := domain.ExpenseSnapshot{
		ID:           1,
		Amount:       input.Amount,
		Description:  input.Description,
		CategoryID:   input.CategoryID,
		CategoryName: "Groceries",
		UserID:       input.UserID,
		UserName:     "John Doe",
	}
	if input.ExpenseDate != nil {
		snapshot.ExpenseDate = *input.ExpenseDate
	}
	return &snapshot, nil
}

func (m *MockExpenseService) ListAll(_ context.Context) ([]domain.ExpenseSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.snapshots, nil
}

func (m *MockExpenseService) ListByUser(_ context.Context, userID int64) ([]domain.ExpenseSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []domain.ExpenseSnapshot{}
	for _, s := range m.snapshots {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *MockExpenseService) GetByID(_ context.Context, id int64) (*domain.ExpenseSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.snapshots {
		if m.snapshots[i].ID == id {
			return &m.snapshots[i], nil
		}
	}
	return nil, expenseErrors.ErrExpenseNotFound
}

func (m *MockExpenseService) Update(ctx context.Context, id int64, input application.ExpenseInput) (*domain.ExpenseSnapshot, error) {
	m.lastInput = &input
	snapshot, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *snapshot
	updated.Amount = input.Amount
	updated.Description = input.Description
	updated.CategoryID = input.CategoryID
	return &updated, nil
}

func (m *MockExpenseService) Delete(ctx context.Context, id int64) error {
	_, err := m.GetByID(ctx, id)
	return err
}
