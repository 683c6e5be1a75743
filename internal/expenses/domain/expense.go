package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
)

// MaxAmount is the first value that no longer fits NUMERIC(10, 2).
var MaxAmount = decimal.New(1, 8)

type ExpenseRepository interface {
	Save(ctx context.Context, expense *Expense) error
	FindByID(ctx context.Context, id int64) (*Expense, error)
	FindAll(ctx context.Context) ([]Expense, error)
	FindByUserID(ctx context.Context, userID int64) ([]Expense, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
}

// Expense references its user and category by id. CategoryID is zero once the
// store has detached a deleted category.
type Expense struct {
	ID          int64
	Amount      decimal.Decimal
	Description string
	CategoryID  int64
	UserID      int64
	ExpenseDate time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (e *Expense) HasCategory() bool {
	return e.CategoryID != 0
}

func (e *Expense) RoundToTwoDecimalPlaces() {
	e.Amount = e.Amount.Round(2)
}

func (e *Expense) Validate() error {
	if !e.Amount.IsPositive() {
		return errors.ErrAmountNotPositive
	}
	if e.Amount.GreaterThanOrEqual(MaxAmount) {
		return errors.ErrAmountTooLarge
	}
	return nil
}

// ExpenseSnapshot is an expense joined with the names of its user and category
// as they were at read time.
type ExpenseSnapshot struct {
	ID           int64
	Amount       decimal.Decimal
	Description  string
	CategoryID   int64
	CategoryName string
	UserID       int64
	UserName     string
	ExpenseDate  time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// DateOnly truncates t to its calendar date, expressed in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
