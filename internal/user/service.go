package user

import (
	"context"
	"errors"
	"time"

	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Secret    string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service is the user directory: it owns user identity and lookup by email.
// The secret is stored exactly as given; callers hash it before registering.
type Service interface {
	Register(ctx context.Context, name, email, secret string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{repo: repo}
}

// Register performs a single store write. Email uniqueness is left to the store;
// a duplicate surfaces as the store's constraint violation.
func (s *service) Register(ctx context.Context, name, email, secret string) (*User, error) {
	user := &User{
		Name:   name,
		Email:  email,
		Secret: secret,
	}
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) GetUserByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, expenseErrors.ErrRecordNotFound) {
			return nil, expenseErrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, expenseErrors.ErrRecordNotFound) {
			return nil, expenseErrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *service) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.ExistsByID(ctx, id)
}
