package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sebuszqo/ExpenseTracker/internal/expenses/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/logger"
)

type CategoryServiceInterface interface {
	Create(ctx context.Context, name, description string) (*domain.Category, error)
	ListAll(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	log          *logger.Logger
	respondJSON  respondJSONFunc
	respondError expenseErrors.RespondErrorFunc
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	log *logger.Logger,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *CategoryHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &CategoryHandler{
		service:      service,
		log:          log.With("handler", "category"),
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "validate category")
		return
	}

	category, err := h.service.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "create category")
		return
	}

	h.log.Info("Category created", "category_id", category.ID)
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Category created successfully.",
		"data":    toCategoryResponse(category),
	})
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListAll(r.Context())
	if err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "list categories")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Categories retrieved successfully.",
		"data":    toCategoryResponses(categories),
	})
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "get category")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category retrieved successfully.",
		"data":    toCategoryResponse(category),
	})
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "delete category")
		return
	}

	h.log.Info("Category deleted", "category_id", id)
	w.WriteHeader(http.StatusNoContent)
}
