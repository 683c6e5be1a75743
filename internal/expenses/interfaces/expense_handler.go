package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sebuszqo/ExpenseTracker/internal/expenses/application"
	"github.com/sebuszqo/ExpenseTracker/internal/expenses/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/logger"
)

type ExpenseServiceInterface interface {
	Create(ctx context.Context, input application.ExpenseInput) (*domain.ExpenseSnapshot, error)
	ListAll(ctx context.Context) ([]domain.ExpenseSnapshot, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.ExpenseSnapshot, error)
	GetByID(ctx context.Context, id int64) (*domain.ExpenseSnapshot, error)
	Update(ctx context.Context, id int64, input application.ExpenseInput) (*domain.ExpenseSnapshot, error)
	Delete(ctx context.Context, id int64) error
}

type ExpenseHandler struct {
	service      ExpenseServiceInterface
	log          *logger.Logger
	respondJSON  respondJSONFunc
	respondError expenseErrors.RespondErrorFunc
}

func NewExpenseHandler(
	service ExpenseServiceInterface,
	log *logger.Logger,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ExpenseHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &ExpenseHandler{
		service:      service,
		log:          log.With("handler", "expense"),
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *ExpenseHandler) decode(w http.ResponseWriter, r *http.Request, requireUser bool) (*expenseRequest, bool) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := req.validate(requireUser); err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "validate expense")
		return nil, false
	}
	return &req, true
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r, true)
	if !ok {
		return
	}

	expense, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "create expense")
		return
	}

	h.log.Info("Expense created", "expense_id", expense.ID, "user_id", expense.UserID)
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Expense created successfully.",
		"data":    toExpenseResponse(expense),
	})
}

func (h *ExpenseHandler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.service.ListAll(r.Context())
	if err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "list expenses")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expenses retrieved successfully.",
		"data":    toExpenseResponses(expenses),
	})
}

func (h *ExpenseHandler) GetUserExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r, "userId")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	expenses, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "list user expenses")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expenses retrieved successfully.",
		"data":    toExpenseResponses(expenses),
	})
}

func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	expense, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "get expense")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expense retrieved successfully.",
		"data":    toExpenseResponse(expense),
	})
}

// UpdateExpense accepts the create body; userId and expenseDate are optional
// and ignored by the ledger.
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}
	req, ok := h.decode(w, r, false)
	if !ok {
		return
	}

	expense, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "update expense")
		return
	}

	h.log.Info("Expense updated", "expense_id", expense.ID)
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expense updated successfully.",
		"data":    toExpenseResponse(expense),
	})
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "delete expense")
		return
	}

	h.log.Info("Expense deleted", "expense_id", id)
	w.WriteHeader(http.StatusNoContent)
}
