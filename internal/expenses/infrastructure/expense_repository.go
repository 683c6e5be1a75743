package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/ExpenseTracker/internal/expenses/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
)

const expenseColumns = `id, amount, description, category_id, user_id, expense_date, created_at, updated_at`

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) domain.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Save(ctx context.Context, expense *domain.Expense) error {
	if expense.ID == 0 {
		return r.create(ctx, expense)
	}
	return r.update(ctx, expense)
}

func (r *expenseRepository) create(ctx context.Context, expense *domain.Expense) error {
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO expenses (amount, description, category_id, user_id, expense_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		expense.Amount,
		nullString(expense.Description),
		nullCategory(expense.CategoryID),
		expense.UserID,
		expense.ExpenseDate,
		expense.CreatedAt,
	).Scan(&expense.ID)
	if err != nil {
		return mapWriteError("expense", err)
	}
	return nil
}

// update never touches user_id, expense_date or created_at.
func (r *expenseRepository) update(ctx context.Context, expense *domain.Expense) error {
	query := `
		UPDATE expenses
		SET amount = $1, description = $2, category_id = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		expense.Amount,
		nullString(expense.Description),
		nullCategory(expense.CategoryID),
		expense.UpdatedAt,
		expense.ID,
	)
	if err != nil {
		return mapWriteError("expense", err)
	}
	return requireAffected(result)
}

func (r *expenseRepository) FindByID(ctx context.Context, id int64) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	expense, err := scanExpense(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expenseErrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("could not find expense: %w", err)
	}
	return expense, nil
}

func (r *expenseRepository) FindAll(ctx context.Context) ([]domain.Expense, error) {
	return r.query(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY id`)
}

func (r *expenseRepository) FindByUserID(ctx context.Context, userID int64) ([]domain.Expense, error) {
	return r.query(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *expenseRepository) query(ctx context.Context, query string, args ...any) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	return expenses, rows.Err()
}

func (r *expenseRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM expenses WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *expenseRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	return err
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var (
		expense     domain.Expense
		amount      decimal.Decimal
		description sql.NullString
		categoryID  sql.NullInt64
		updatedAt   sql.NullTime
	)
	err := row.Scan(
		&expense.ID,
		&amount,
		&description,
		&categoryID,
		&expense.UserID,
		&expense.ExpenseDate,
		&expense.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	expense.Amount = amount
	expense.Description = description.String
	expense.CategoryID = categoryID.Int64
	expense.ExpenseDate = domain.DateOnly(expense.ExpenseDate)
	if updatedAt.Valid {
		expense.UpdatedAt = &updatedAt.Time
	}
	return &expense, nil
}

func nullCategory(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}
