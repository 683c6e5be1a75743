package user

import (
	"context"
	"encoding/json"
	"net/http"

	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}

	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}

	respondJSON(w, status, payload)
}

type MockService struct {
	users          map[int64]*User
	registerErr    error
	registeredWith []string
}

func (m *MockService) Register(_ context.Context, name, email, secret string) (*User, error) {
	m.registeredWith = []string{name, email, secret}
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return &User{ID: 1, Name: name, Email: email, Secret: secret}, nil
}

func (m *MockService) GetUserByID(_ context.Context, id int64) (*User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, expenseErrors.ErrUserNotFound
}

func (m *MockService) GetUserByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, expenseErrors.ErrUserNotFound
}

func (m *MockService) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}
