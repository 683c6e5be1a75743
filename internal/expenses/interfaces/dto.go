package interfaces

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/ExpenseTracker/internal/expenses/application"
	"github.com/sebuszqo/ExpenseTracker/internal/expenses/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
)

const (
	dateLayout            = "2006-01-02"
	maxCategoryNameLength = 100
)

var minAmount = decimal.New(1, -2)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *categoryRequest) validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)

	problems := &expenseErrors.ValidationErrors{}
	if r.Name == "" {
		problems.AddMessage("Category name is required")
	} else if len(r.Name) > maxCategoryNameLength {
		problems.AddMessage("Category name must be at most 100 characters")
	}
	return problems.ErrOrNil()
}

type categoryResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func toCategoryResponse(c *domain.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCategoryResponses(categories []domain.Category) []categoryResponse {
	responses := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, toCategoryResponse(&categories[i]))
	}
	return responses
}

// expenseRequest is shared by create and update. Amount is a pointer so a
// missing field can be told apart from zero.
type expenseRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description string           `json:"description"`
	CategoryID  int64            `json:"categoryId"`
	UserID      int64            `json:"userId"`
	ExpenseDate string           `json:"expenseDate"`
}

func (r *expenseRequest) validate(requireUser bool) error {
	r.Description = strings.TrimSpace(r.Description)

	problems := &expenseErrors.ValidationErrors{}
	if r.Amount == nil {
		problems.AddMessage("Amount is required")
	} else if r.Amount.LessThan(minAmount) {
		problems.AddMessage("Amount must be at least 0.01")
	}
	if r.Description == "" {
		problems.AddMessage("Description is required")
	}
	if r.CategoryID <= 0 {
		problems.AddMessage("Category ID must be a positive number")
	}
	if requireUser && r.UserID <= 0 {
		problems.AddMessage("User ID must be a positive number")
	}
	if r.ExpenseDate != "" {
		if _, err := time.Parse(dateLayout, r.ExpenseDate); err != nil {
			problems.AddMessage("Expense date must use the YYYY-MM-DD format")
		}
	}
	return problems.ErrOrNil()
}

// toInput must only be called after validate reported no problems.
func (r *expenseRequest) toInput() application.ExpenseInput {
	input := application.ExpenseInput{
		Amount:      *r.Amount,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		UserID:      r.UserID,
	}
	if r.ExpenseDate != "" {
		date, _ := time.Parse(dateLayout, r.ExpenseDate)
		input.ExpenseDate = &date
	}
	return input
}

type expenseResponse struct {
	ID           int64       `json:"id"`
	Amount       json.Number `json:"amount"`
	Description  string      `json:"description"`
	CategoryID   int64       `json:"categoryId"`
	CategoryName string      `json:"categoryName"`
	UserID       int64       `json:"userId"`
	UserName     string      `json:"userName"`
	ExpenseDate  string      `json:"expenseDate"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    *time.Time  `json:"updatedAt,omitempty"`
}

func toExpenseResponse(s *domain.ExpenseSnapshot) expenseResponse {
	return expenseResponse{
		ID:           s.ID,
		Amount:       json.Number(s.Amount.StringFixed(2)),
		Description:  s.Description,
		CategoryID:   s.CategoryID,
		CategoryName: s.CategoryName,
		UserID:       s.UserID,
		UserName:     s.UserName,
		ExpenseDate:  s.ExpenseDate.Format(dateLayout),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toExpenseResponses(snapshots []domain.ExpenseSnapshot) []expenseResponse {
	responses := make([]expenseResponse, 0, len(snapshots))
	for i := range snapshots {
		responses = append(responses, toExpenseResponse(&snapshots[i]))
	}
	return responses
}
