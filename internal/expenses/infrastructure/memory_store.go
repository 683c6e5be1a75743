package infrastructure

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/expenses/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

// MemoryStore keeps users, categories and expenses in process memory. It
// performs the cascades a SQL schema would: deleting a user removes their
// expenses, deleting a category detaches it from expenses.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[int64]user.User
	categories map[int64]domain.Category
	expenses   map[int64]domain.Expense
	lastID     struct{ user, category, expense int64 }
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[int64]user.User),
		categories: make(map[int64]domain.Category),
		expenses:   make(map[int64]domain.Expense),
	}
}

func (s *MemoryStore) Users() user.Repository { return &memoryUserRepository{s} }

func (s *MemoryStore) Categories() domain.CategoryRepository { return &memoryCategoryRepository{s} }

func (s *MemoryStore) Expenses() domain.ExpenseRepository { return &memoryExpenseRepository{s} }

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type memoryUserRepository struct{ s *MemoryStore }

func (r *memoryUserRepository) Save(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, existing := range r.s.users {
		if existing.Email == u.Email && id != u.ID {
			return expenseErrors.NewConstraintViolationError("users_email_key", errDuplicateEmail)
		}
	}
	if u.ID == 0 {
		r.s.lastID.user++
		u.ID = r.s.lastID.user
		if u.CreatedAt.IsZero() {
			u.CreatedAt = time.Now().UTC()
		}
	} else if _, ok := r.s.users[u.ID]; !ok {
		return expenseErrors.ErrRecordNotFound
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id int64) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, expenseErrors.ErrRecordNotFound
	}
	return &u, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, expenseErrors.ErrRecordNotFound
}

func (r *memoryUserRepository) FindAll(_ context.Context) ([]user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]user.User, 0, len(r.s.users))
	for _, id := range sortedKeys(r.s.users) {
		users = append(users, r.s.users[id])
	}
	return users, nil
}

func (r *memoryUserRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.users[id]
	return ok, nil
}

func (r *memoryUserRepository) DeleteByID(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.users, id)
	for expenseID, e := range r.s.expenses {
		if e.UserID == id {
			delete(r.s.expenses, expenseID)
		}
	}
	return nil
}

type memoryCategoryRepository struct{ s *MemoryStore }

func (r *memoryCategoryRepository) Save(_ context.Context, c *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if c.ID == 0 {
		r.s.lastID.category++
		c.ID = r.s.lastID.category
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now().UTC()
		}
	} else if _, ok := r.s.categories[c.ID]; !ok {
		return expenseErrors.ErrRecordNotFound
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *memoryCategoryRepository) FindByID(_ context.Context, id int64) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, expenseErrors.ErrRecordNotFound
	}
	return &c, nil
}

func (r *memoryCategoryRepository) FindAll(_ context.Context) ([]domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	categories := make([]domain.Category, 0, len(r.s.categories))
	for _, id := range sortedKeys(r.s.categories) {
		categories = append(categories, r.s.categories[id])
	}
	return categories, nil
}

func (r *memoryCategoryRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.categories[id]
	return ok, nil
}

func (r *memoryCategoryRepository) DeleteByID(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.categories, id)
	for expenseID, e := range r.s.expenses {
		if e.CategoryID == id {
			e.CategoryID = 0
			r.s.expenses[expenseID] = e
		}
	}
	return nil
}

type memoryExpenseRepository struct{ s *MemoryStore }

func (r *memoryExpenseRepository) Save(_ context.Context, e *domain.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[e.UserID]; !ok {
		return expenseErrors.NewConstraintViolationError("expenses_user_id_fkey", errMissingReference)
	}
	if _, ok := r.s.categories[e.CategoryID]; e.CategoryID != 0 && !ok {
		return expenseErrors.NewConstraintViolationError("expenses_category_id_fkey", errMissingReference)
	}

	if e.ID == 0 {
		r.s.lastID.expense++
		e.ID = r.s.lastID.expense
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now().UTC()
		}
	} else if _, ok := r.s.expenses[e.ID]; !ok {
		return expenseErrors.ErrRecordNotFound
	}
	r.s.expenses[e.ID] = *e
	return nil
}

func (r *memoryExpenseRepository) FindByID(_ context.Context, id int64) (*domain.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.expenses[id]
	if !ok {
		return nil, expenseErrors.ErrRecordNotFound
	}
	return &e, nil
}

func (r *memoryExpenseRepository) FindAll(_ context.Context) ([]domain.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	expenses := make([]domain.Expense, 0, len(r.s.expenses))
	for _, id := range sortedKeys(r.s.expenses) {
		expenses = append(expenses, r.s.expenses[id])
	}
	return expenses, nil
}

func (r *memoryExpenseRepository) FindByUserID(_ context.Context, userID int64) ([]domain.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	expenses := []domain.Expense{}
	for _, id := range sortedKeys(r.s.expenses) {
		if e := r.s.expenses[id]; e.UserID == userID {
			expenses = append(expenses, e)
		}
	}
	return expenses, nil
}

func (r *memoryExpenseRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.expenses[id]
	return ok, nil
}

func (r *memoryExpenseRepository) DeleteByID(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.expenses, id)
	return nil
}
