package user

import (
	"context"
	"errors"
	"time"

	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
)

type MockRepository struct {
	users      map[int64]User
	nextID     int64
	failWith   error
	saveCalls  int
	existCalls int
}

func NewMockRepository(users ...User) *MockRepository {
	m := &MockRepository{users: make(map[int64]User)}
	for _, u := range users {
		m.users[u.ID] = u
		if u.ID > m.nextID {
			m.nextID = u.ID
		}
	}
	return m
}

func (m *MockRepository) Save(_ context.Context, user *User) error {
	m.saveCalls++
	if m.failWith != nil {
		return m.failWith
	}
	for _, existing := range m.users {
		if existing.Email == user.Email && existing.ID != user.ID {
			return expenseErrors.NewConstraintViolationError("users_email_key", errors.New("duplicate email"))
		}
	}
	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
		user.CreatedAt = time.Now()
	}
	m.users[user.ID] = *user
	return nil
}

func (m *MockRepository) FindByID(_ context.Context, id int64) (*User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	u, ok := m.users[id]
	if !ok {
		return nil, expenseErrors.ErrRecordNotFound
	}
	return &u, nil
}

func (m *MockRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, expenseErrors.ErrRecordNotFound
}

func (m *MockRepository) FindAll(_ context.Context) ([]User, error) {
	users := make([]User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *MockRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	m.existCalls++
	if m.failWith != nil {
		return false, m.failWith
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockRepository) DeleteByID(_ context.Context, id int64) error {
	delete(m.users, id)
	return nil
}
