package domain

import (
	"context"
	"time"
)

type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id int64) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// DeleteByID must detach the category from existing expenses (category_id = NULL).
	DeleteByID(ctx context.Context, id int64) error
}
