package user

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"

	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/logger"
)

const (
	maxNameLength     = 100
	maxEmailLength    = 255
	minPasswordLength = 6
)

type Handler struct {
	userService  Service
	bcryptCost   int
	log          *logger.Logger
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError expenseErrors.RespondErrorFunc
}

func NewHandler(
	userService Service,
	bcryptCost int,
	log *logger.Logger,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *Handler {
	if userService == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		userService:  userService,
		bcryptCost:   bcryptCost,
		log:          log.With("handler", "user"),
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserResponse(u *User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// validate trims name and email in place before checking them; the password
// is taken as typed.
func (r *registerRequest) validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)

	problems := &expenseErrors.ValidationErrors{}
	if r.Name == "" {
		problems.AddMessage("Name is required")
	} else if len(r.Name) > maxNameLength {
		problems.AddMessage("Name must be at most 100 characters")
	}
	if r.Email == "" {
		problems.AddMessage("Email is required")
	} else if len(r.Email) > maxEmailLength || checkmail.ValidateFormat(r.Email) != nil {
		problems.AddMessage("Email address is not valid")
	}
	if strings.TrimSpace(r.Password) == "" {
		problems.AddMessage("Password is required")
	} else if len(r.Password) < minPasswordLength {
		problems.AddMessage("Password must be at least 6 characters")
	}
	return problems.ErrOrNil()
}

func hashPassword(password string, cost int) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(hashedPasswordBytes), err
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "validate registration")
		return
	}

	passwordHash, err := hashPassword(req.Password, h.bcryptCost)
	if err != nil {
		h.log.Error("Error during hashing the password", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Could not register user")
		return
	}

	user, err := h.userService.Register(r.Context(), req.Name, req.Email, passwordHash)
	if err != nil {
		if expenseErrors.IsConstraintViolation(err) {
			h.respondError(w, http.StatusConflict, "Email already exists")
			return
		}
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "register user")
		return
	}

	h.log.Info("User registered", "user_id", user.ID)
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "User successfully registered.",
		"data":    toUserResponse(user),
	})
}

func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), id)
	if err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "get user")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "User retrieved successfully.",
		"data":    toUserResponse(user),
	})
}

func (h *Handler) HandleGetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PathValue("email"))
	if email == "" || checkmail.ValidateFormat(email) != nil {
		h.respondError(w, http.StatusBadRequest, "Email address is not valid")
		return
	}

	user, err := h.userService.GetUserByEmail(r.Context(), email)
	if err != nil {
		expenseErrors.RespondServiceError(h.log, h.respondError, w, err, "get user by email")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "User retrieved successfully.",
		"data":    toUserResponse(user),
	})
}
