package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/expenses/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
)

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Save(ctx context.Context, category *domain.Category) error {
	if category.ID == 0 {
		return r.create(ctx, category)
	}
	return r.update(ctx, category)
}

func (r *categoryRepository) create(ctx context.Context, category *domain.Category) error {
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO categories (name, description, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, category.Name, nullString(category.Description), category.CreatedAt).
		Scan(&category.ID)
	if err != nil {
		return mapWriteError("category", err)
	}
	return nil
}

func (r *categoryRepository) update(ctx context.Context, category *domain.Category) error {
	query := `UPDATE categories SET name = $1, description = $2, updated_at = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, category.Name, nullString(category.Description), category.UpdatedAt, category.ID)
	if err != nil {
		return mapWriteError("category", err)
	}
	return requireAffected(result)
}

func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM categories WHERE id = $1`
	category, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expenseErrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("could not find category: %w", err)
	}
	return category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM categories ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// DeleteByID relies on ON DELETE SET NULL to detach the category from expenses.
func (r *categoryRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var (
		category    domain.Category
		description sql.NullString
		updatedAt   sql.NullTime
	)
	if err := row.Scan(&category.ID, &category.Name, &description, &category.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	category.Description = description.String
	if updatedAt.Valid {
		category.UpdatedAt = &updatedAt.Time
	}
	return &category, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return expenseErrors.ErrRecordNotFound
	}
	return nil
}
