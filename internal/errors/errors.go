// Package errors provides custom error types for the monthwise API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "A user with this username already exists", StatusCode: http.StatusConflict}
)

// Month errors.
var (
	ErrMonthNotFound      = &AppError{Code: "MONTH_NOT_FOUND", Message: "Month not found", StatusCode: http.StatusNotFound}
	ErrMonthClosed        = &AppError{Code: "MONTH_CLOSED", Message: "Month is closed and can no longer be modified", StatusCode: http.StatusBadRequest}
	ErrMonthAlreadyClosed = &AppError{Code: "MONTH_ALREADY_CLOSED", Message: "Month has already been closed", StatusCode: http.StatusConflict}
	ErrSnapshotNotFound   = &AppError{Code: "SNAPSHOT_NOT_FOUND", Message: "No report snapshot exists for this month", StatusCode: http.StatusNotFound}
	ErrDuplicateSnapshot  = &AppError{Code: "DUPLICATE_SNAPSHOT", Message: "A report snapshot already exists for this month", StatusCode: http.StatusConflict}
)

// Category and budget errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrBudgetNotFound   = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Monthly budget not found", StatusCode: http.StatusNotFound}
)

// Entry errors.
var (
	ErrIncomeEntryNotFound  = &AppError{Code: "INCOME_ENTRY_NOT_FOUND", Message: "Income entry not found", StatusCode: http.StatusNotFound}
	ErrItemNotFound         = &AppError{Code: "ITEM_NOT_FOUND", Message: "Item not found", StatusCode: http.StatusNotFound}
	ErrFixedExpenseNotFound = &AppError{Code: "FIXED_EXPENSE_NOT_FOUND", Message: "Fixed expense not found", StatusCode: http.StatusNotFound}
)
