package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	database "github.com/sebuszqo/ExpenseTracker/db"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
)

// Repository is the user store. Lookups that match nothing return
// expenseErrors.ErrRecordNotFound. Save inserts when ID is zero and updates otherwise.
type Repository interface {
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Save(ctx context.Context, user *User) error {
	if user.ID == 0 {
		return r.createUser(ctx, user)
	}
	return r.updateUser(ctx, user)
}

func (r *userRepository) createUser(ctx context.Context, user *User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO users (name, email, password, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, user.Name, user.Email, user.Secret, user.CreatedAt).Scan(&id)
	if err != nil {
		return mapWriteError(err)
	}

	user.ID = id
	return nil
}

func (r *userRepository) updateUser(ctx context.Context, user *User) error {
	query := `UPDATE users SET name = $1, email = $2, password = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.Secret, user.ID)
	if err != nil {
		return mapWriteError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return expenseErrors.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT id, name, email, password, created_at FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, name, email, password, created_at FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) scanUser(row *sql.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Secret, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expenseErrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("could not find user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, password, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Secret, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// DeleteByID relies on ON DELETE CASCADE to remove the user's expenses.
func (r *userRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func mapWriteError(err error) error {
	if database.IsUniqueViolation(err) {
		return expenseErrors.NewConstraintViolationError(database.ConstraintName(err), err)
	}
	return fmt.Errorf("could not save user: %w", err)
}
