package application

import (
	"context"
	"errors"
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/expenses/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
)

type CategoryRegistry struct {
	repo domain.CategoryRepository
	now  func() time.Time
}

func NewCategoryRegistry(repo domain.CategoryRepository) *CategoryRegistry {
	return &CategoryRegistry{repo: repo, now: time.Now}
}

func (s *CategoryRegistry) Create(ctx context.Context, name, description string) (*domain.Category, error) {
	category := &domain.Category{
		Name:        name,
		Description: description,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListAll returns categories in store order.
func (s *CategoryRegistry) ListAll(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *CategoryRegistry) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, expenseErrors.ErrRecordNotFound) {
			return nil, expenseErrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Delete does not look at expenses referencing the category; the store detaches them.
func (s *CategoryRegistry) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return expenseErrors.ErrCategoryNotFound
	}
	return s.repo.DeleteByID(ctx, id)
}
