package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sebuszqo/ExpenseTracker/internal/expenses/interfaces"
	"github.com/sebuszqo/ExpenseTracker/internal/logger"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

const requestIDHeader = "X-Request-ID"

type Response struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":    "error",
		"message":   message,
		"code":      status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}

	respondJSON(w, status, payload)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware tags every request with an id (reusing the caller's
// X-Request-ID when present) and logs one line per completed request.
func loggingMiddleware(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []interface{}{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestID,
		}
		switch {
		case rec.status >= 500:
			log.Error("HTTP request", fields...)
		case rec.status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	})
}

type Server struct {
	router          *http.ServeMux
	log             *logger.Logger
	userHandler     *user.Handler
	categoryHandler *interfaces.CategoryHandler
	expenseHandler  *interfaces.ExpenseHandler
	health          func(ctx context.Context) map[string]string
}

func NewServer(
	log *logger.Logger,
	userHandler *user.Handler,
	categoryHandler *interfaces.CategoryHandler,
	expenseHandler *interfaces.ExpenseHandler,
	health func(ctx context.Context) map[string]string,
) *Server {
	return &Server{
		router:          http.NewServeMux(),
		log:             log,
		userHandler:     userHandler,
		categoryHandler: categoryHandler,
		expenseHandler:  expenseHandler,
		health:          health,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	stats := s.health(ctx)
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, stats)
}

func (s *Server) RegisterRoutes() {
	apiRoutes := http.NewServeMux()
	apiRoutes.HandleFunc("GET /api/ready", s.handleReady)
	apiRoutes.HandleFunc("GET /api/health", s.handleHealth)

	// USERS
	apiRoutes.HandleFunc("POST /api/users/register", s.userHandler.HandleRegister)
	apiRoutes.HandleFunc("GET /api/users/{id}", s.userHandler.HandleGetUser)
	apiRoutes.HandleFunc("GET /api/users/email/{email}", s.userHandler.HandleGetUserByEmail)

	// CATEGORIES
	apiRoutes.HandleFunc("POST /api/categories", s.categoryHandler.CreateCategory)
	apiRoutes.HandleFunc("GET /api/categories", s.categoryHandler.GetCategories)
	apiRoutes.HandleFunc("GET /api/categories/{id}", s.categoryHandler.GetCategory)
	apiRoutes.HandleFunc("DELETE /api/categories/{id}", s.categoryHandler.DeleteCategory)

	// EXPENSES
	apiRoutes.HandleFunc("POST /api/expenses", s.expenseHandler.CreateExpense)
	apiRoutes.HandleFunc("GET /api/expenses", s.expenseHandler.GetExpenses)
	apiRoutes.HandleFunc("GET /api/expenses/{id}", s.expenseHandler.GetExpense)
	apiRoutes.HandleFunc("PUT /api/expenses/{id}", s.expenseHandler.UpdateExpense)
	apiRoutes.HandleFunc("DELETE /api/expenses/{id}", s.expenseHandler.DeleteExpense)
	apiRoutes.HandleFunc("GET /api/expenses/user/{userId}", s.expenseHandler.GetUserExpenses)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", apiRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func (s *Server) Handler() http.Handler {
	return loggingMiddleware(s.log, s.router)
}
