package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRecordNotFound is returned by repositories when no row matches the lookup.
// Services translate it into a NotFoundError naming the missing subject.
var ErrRecordNotFound = errors.New("record not found")

type NotFoundError struct {
	Subject string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Subject)
}

// Is makes errors.Is match any NotFoundError with the same subject.
func (e *NotFoundError) Is(target error) bool {
	var other *NotFoundError
	if !errors.As(target, &other) {
		return false
	}
	return other.Subject == e.Subject
}

func NewNotFoundError(subject string) error {
	return &NotFoundError{Subject: subject}
}

func IsNotFound(err error) bool {
	var notFoundError *NotFoundError
	return errors.As(err, &notFoundError)
}

// NotFoundSubject returns the subject of a NotFoundError in err's chain, or "".
func NotFoundSubject(err error) string {
	var notFoundError *NotFoundError
	if errors.As(err, &notFoundError) {
		return notFoundError.Subject
	}
	return ""
}

var (
	ErrUserNotFound     = NewNotFoundError("user")
	ErrCategoryNotFound = NewNotFoundError("category")
	ErrExpenseNotFound  = NewNotFoundError("expense")
)

// ConstraintViolationError wraps a store-level integrity failure (duplicate email,
// broken foreign key). It is never interpreted by the services, only passed on.
type ConstraintViolationError struct {
	Constraint string
	Err        error
}

func (e *ConstraintViolationError) Error() string {
	if e.Constraint == "" {
		return fmt.Sprintf("constraint violation: %v", e.Err)
	}
	return fmt.Sprintf("constraint violation on %s: %v", e.Constraint, e.Err)
}

func (e *ConstraintViolationError) Unwrap() error {
	return e.Err
}

func NewConstraintViolationError(constraint string, err error) error {
	return &ConstraintViolationError{Constraint: constraint, Err: err}
}

func IsConstraintViolation(err error) bool {
	var constraintError *ConstraintViolationError
	return errors.As(err, &constraintError)
}

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

var (
	ErrAmountNotPositive = NewValidationError("Amount must be greater than zero")
	ErrAmountTooLarge    = NewValidationError("Amount must be less than 100000000")
)

type ValidationErrors struct {
	Errors []error
}

func (ve *ValidationErrors) Error() string {
	errorMessages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		errorMessages[i] = err.Error()
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(errorMessages, "; "))
}

func (ve *ValidationErrors) Add(err error) {
	ve.Errors = append(ve.Errors, err)
}

// AddMessage records a validation failure described only by its message.
func (ve *ValidationErrors) AddMessage(msg string) {
	ve.Add(NewValidationError(msg))
}

// ErrOrNil returns ve as an error, or nil when nothing was recorded.
func (ve *ValidationErrors) ErrOrNil() error {
	if ve == nil || len(ve.Errors) == 0 {
		return nil
	}
	return ve
}

func (ve *ValidationErrors) Messages() []string {
	errorMessages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		errorMessages[i] = err.Error()
	}
	return errorMessages
}

func IsValidationErrors(err error) bool {
	var validationErrors *ValidationErrors
	ok := errors.As(err, &validationErrors)
	return ok
}
