package errors

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeAlreadyMinted    ErrorCode = "already_minted"
	ErrCodeSupplyExceeded   ErrorCode = "supply_exceeded"
	ErrCodeRateLimited      ErrorCode = "rate_limited"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeDatabaseError ErrorCode = "database_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewForbiddenError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeForbidden,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewAlreadyMintedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeAlreadyMinted,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewSupplyExceededError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeSupplyExceeded,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewRateLimitedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeRateLimited,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// StatusCode returns the HTTP status that carries the error code
func (e *APIError) StatusCode() int {
	switch e.Code {
	case ErrCodeBadRequest, ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeAlreadyMinted, ErrCodeSupplyExceeded:
		return http.StatusConflict
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewDatabaseError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}
