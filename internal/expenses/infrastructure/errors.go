package infrastructure

import (
	"errors"
	"fmt"

	database "github.com/sebuszqo/ExpenseTracker/db"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
)

var (
	errDuplicateEmail   = errors.New("email already exists")
	errMissingReference = errors.New("referenced row does not exist")
)

func mapWriteError(entity string, err error) error {
	if database.IsUniqueViolation(err) || database.IsForeignKeyViolation(err) {
		return expenseErrors.NewConstraintViolationError(database.ConstraintName(err), err)
	}
	return fmt.Errorf("could not save %s: %w", entity, err)
}
