package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// IsInternal reports whether the error must be hidden from the caller.
func (e *AppError) IsInternal() bool {
	return e.HTTPStatus >= http.StatusInternalServerError
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

const (
	CodeValidation          = "VAL_001"
	CodeBodyTooLarge        = "VAL_002"
	CodeServiceNotFound     = "TRX_001"
	CodeInsufficientBalance = "TRX_002"
	CodeInternal            = "SYS_001"
	CodeAccountNotFound     = "SYS_002"
	CodeInvalidCredentials  = "AUTH_001"
	CodeEmailExists         = "AUTH_002"
	CodeInvalidToken        = "AUTH_003"
	CodeRateLimitExceeded   = "RATE_001"
)

// ---- Validation (VAL) ----

// Validation returns a VAL_001 error carrying a user-facing message.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return Validation("Amount must be a positive integer")
}

func ErrBodyTooLarge() *AppError {
	return New(CodeBodyTooLarge, "Request body too large", http.StatusRequestEntityTooLarge)
}

// ---- Ledger business rules (TRX) ----

func ErrServiceNotFound() *AppError {
	return New(CodeServiceNotFound, "Service not found", http.StatusNotFound)
}

func ErrInsufficientBalance() *AppError {
	return New(CodeInsufficientBalance, "Insufficient balance", http.StatusPaymentRequired)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
}

func ErrEmailExists() *AppError {
	return New(CodeEmailExists, "Email already registered", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// ErrAccountNotFound reports a missing balance row. Every identity is provisioned
// with one at creation, so this is a consistency fault, not a user error.
func ErrAccountNotFound(identityID int64) *AppError {
	return Wrap(CodeAccountNotFound, "Internal server error", http.StatusInternalServerError,
		fmt.Errorf("no balance row for identity %d", identityID))
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}
