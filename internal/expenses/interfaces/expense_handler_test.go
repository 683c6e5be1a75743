package interfaces

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebuszqo/ExpenseTracker/internal/expenses/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
)

func newExpenseMux(service ExpenseServiceInterface) *http.ServeMux {
	handler := NewExpenseHandler(service, nil, respondJSON, respondError)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/expenses", handler.CreateExpense)
	mux.HandleFunc("GET /api/expenses", handler.GetExpenses)
	mux.HandleFunc("GET /api/expenses/{id}", handler.GetExpense)
	mux.HandleFunc("GET /api/expenses/user/{userId}", handler.GetUserExpenses)
	mux.HandleFunc("PUT /api/expenses/{id}", handler.UpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", handler.DeleteExpense)
	return mux
}

func storedSnapshot() domain.ExpenseSnapshot {
	return domain.ExpenseSnapshot{
		ID:           7,
		Amount:       decimal.RequireFromString("100.5"),
		Description:  "Monthly groceries",
		CategoryID:   2,
		CategoryName: "Groceries",
		UserID:       1,
		UserName:     "John Doe",
		ExpenseDate:  time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC),
		CreatedAt:    time.Date(2024, time.March, 9, 14, 30, 0, 0, time.UTC),
	}
}

func TestCreateExpense(t *testing.T) {
	service := &MockExpenseService{}
	body := `{"amount":100.50,"description":"Monthly groceries","categoryId":2,"userId":1,"expenseDate":"2024-03-09"}`
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	newExpenseMux(service).ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	require.NotNil(t, service.lastInput)
	assert.Equal(t, "100.50", service.lastInput.Amount.StringFixed(2))
	require.NotNil(t, service.lastInput.ExpenseDate)
	assert.Equal(t, "2024-03-09", service.lastInput.ExpenseDate.Format("2006-01-02"))

	data := decodeBody(t, res)["data"].(map[string]interface{})
	assert.Equal(t, 100.5, data["amount"])
	assert.Equal(t, "Groceries", data["categoryName"])
	assert.Equal(t, "John Doe", data["userName"])
	assert.Equal(t, float64(2), data["categoryId"])
	assert.Equal(t, "2024-03-09", data["expenseDate"])
}

func TestCreateExpense_AmountWireFormat(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/expenses",
		bytes.NewBufferString(`{"amount":"75","description":"Dinner","categoryId":2,"userId":1}`))
	w := httptest.NewRecorder()

	newExpenseMux(&MockExpenseService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"amount":75.00`)
}

func TestCreateExpense_ValidationErrors(t *testing.T) {
	service := &MockExpenseService{}
	body := `{"amount":0,"description":" ","categoryId":0,"userId":-1,"expenseDate":"09/03/2024"}`
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	newExpenseMux(service).ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.ElementsMatch(t, []interface{}{
		"Amount must be at least 0.01",
		"Description is required",
		"Category ID must be a positive number",
		"User ID must be a positive number",
		"Expense date must use the YYYY-MM-DD format",
	}, decodeBody(t, res)["errors"])
	assert.Nil(t, service.lastInput)
}

func TestCreateExpense_MissingAmount(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/expenses",
		bytes.NewBufferString(`{"description":"Lunch","categoryId":2,"userId":1}`))
	w := httptest.NewRecorder()

	newExpenseMux(&MockExpenseService{}).ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, []interface{}{"Amount is required"}, decodeBody(t, res)["errors"])
}

func TestCreateExpense_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"user missing", expenseErrors.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"category missing", expenseErrors.ErrCategoryNotFound, http.StatusNotFound, "Category not found"},
		{"amount too large", expenseErrors.ErrAmountTooLarge, http.StatusBadRequest, "Amount must be less than 100000000"},
		{"store conflict", expenseErrors.NewConstraintViolationError("expenses_user_id_fkey", nil), http.StatusConflict, "Request conflicts with existing data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"amount":10,"description":"Lunch","categoryId":2,"userId":1}`
			req := httptest.NewRequest(http.MethodPost, "/api/expenses", bytes.NewBufferString(body))
			w := httptest.NewRecorder()

			newExpenseMux(&MockExpenseService{err: tt.err}).ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatus, res.StatusCode)
			response := decodeBody(t, res)
			assert.Equal(t, "error", response["status"])
			assert.Equal(t, tt.wantMsg, response["message"])
		})
	}
}

func TestGetExpenses(t *testing.T) {
	service := &MockExpenseService{snapshots: []domain.ExpenseSnapshot{storedSnapshot()}}
	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	w := httptest.NewRecorder()

	newExpenseMux(service).ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	data := decodeBody(t, res)["data"].([]interface{})
	require.Len(t, data, 1)
	expense := data[0].(map[string]interface{})
	assert.Equal(t, float64(7), expense["id"])
	assert.NotContains(t, expense, "updatedAt")
}

func TestGetUserExpenses(t *testing.T) {
	service := &MockExpenseService{snapshots: []domain.ExpenseSnapshot{storedSnapshot()}}

	req := httptest.NewRequest(http.MethodGet, "/api/expenses/user/1", nil)
	w := httptest.NewRecorder()
	newExpenseMux(service).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/expenses/user/5", nil)
	w = httptest.NewRecorder()
	newExpenseMux(service).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)

	req = httptest.NewRequest(http.MethodGet, "/api/expenses/user/x", nil)
	w = httptest.NewRecorder()
	newExpenseMux(service).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/expenses/user/9", nil)
	w = httptest.NewRecorder()
	newExpenseMux(&MockExpenseService{err: expenseErrors.ErrUserNotFound}).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetExpense(t *testing.T) {
	service := &MockExpenseService{snapshots: []domain.ExpenseSnapshot{storedSnapshot()}}

	req := httptest.NewRequest(http.MethodGet, "/api/expenses/7", nil)
	w := httptest.NewRecorder()
	newExpenseMux(service).ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	data := decodeBody(t, res)["data"].(map[string]interface{})
	assert.Equal(t, "Monthly groceries", data["description"])
	assert.Equal(t, "2024-03-09", data["expenseDate"])

	req = httptest.NewRequest(http.MethodGet, "/api/expenses/8", nil)
	w = httptest.NewRecorder()
	newExpenseMux(service).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Expense not found")
}

func TestUpdateExpense(t *testing.T) {
	service := &MockExpenseService{snapshots: []domain.ExpenseSnapshot{storedSnapshot()}}
	body := `{"amount":75.00,"description":"Updated groceries","categoryId":2}`
	req := httptest.NewRequest(http.MethodPut, "/api/expenses/7", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	newExpenseMux(service).ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	data := decodeBody(t, res)["data"].(map[string]interface{})
	assert.Equal(t, float64(75), data["amount"])
	assert.Equal(t, "Updated groceries", data["description"])
	assert.Equal(t, "John Doe", data["userName"])
	assert.Nil(t, service.lastInput.ExpenseDate)
}

func TestUpdateExpense_NotFound(t *testing.T) {
	body := `{"amount":75.00,"description":"Updated groceries","categoryId":2}`
	req := httptest.NewRequest(http.MethodPut, "/api/expenses/99", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	newExpenseMux(&MockExpenseService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteExpense(t *testing.T) {
	service := &MockExpenseService{snapshots: []domain.ExpenseSnapshot{storedSnapshot()}}

	req := httptest.NewRequest(http.MethodDelete, "/api/expenses/7", nil)
	w := httptest.NewRecorder()
	newExpenseMux(service).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	req = httptest.NewRequest(http.MethodDelete, "/api/expenses/8", nil)
	w = httptest.NewRecorder()
	newExpenseMux(service).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExpenseRequestValidate_ReturnsValidationErrors(t *testing.T) {
	req := expenseRequest{Description: "  ", ExpenseDate: "01/02/2024"}

	err := req.validate(true)
	require.Error(t, err)
	assert.True(t, expenseErrors.IsValidationErrors(err))

	var problems *expenseErrors.ValidationErrors
	require.ErrorAs(t, err, &problems)
	assert.ElementsMatch(t, []string{
		"Amount is required",
		"Description is required",
		"Category ID must be a positive number",
		"User ID must be a positive number",
		"Expense date must use the YYYY-MM-DD format",
	}, problems.Messages())

	amount := decimal.RequireFromString("12.50")
	valid := expenseRequest{Amount: &amount, Description: " lunch ", CategoryID: 1, UserID: 1, ExpenseDate: "2024-01-02"}
	assert.NoError(t, valid.validate(true))
	assert.Equal(t, "lunch", valid.Description)
}
