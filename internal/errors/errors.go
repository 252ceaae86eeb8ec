package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// ErrorTypeConfiguration covers missing prompt templates, missing stage
	// defaults and unrecognized provider/model pairings. Fatal, no retry.
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeValidation covers malformed requests rejected before any
	// external call is made.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeProviderTransient covers rate limits, timeouts and 5xx
	// responses from a model provider. Eligible for bounded retry.
	ErrorTypeProviderTransient ErrorType = "provider_transient"
	// ErrorTypeProviderPermanent covers auth failures, invalid requests and
	// exhausted quotas. Never retried.
	ErrorTypeProviderPermanent ErrorType = "provider_permanent"
	// ErrorTypeMalformedOutput means neither structured nor plain-text
	// extraction could recover a usable result from the model output.
	ErrorTypeMalformedOutput ErrorType = "malformed_output"
	ErrorTypeTimeout         ErrorType = "timeout"
	ErrorTypeInternal        ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeConfiguration,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewTransientProviderError creates a retryable provider error
func NewTransientProviderError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeProviderTransient,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewPermanentProviderError creates a non-retryable provider error
func NewPermanentProviderError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeProviderPermanent,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewMalformedOutputError creates an error for unusable model output.
// Treated as a permanent provider-class failure for the affected language.
func NewMalformedOutputError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeMalformedOutput,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// IsTransient reports whether the error may succeed on retry. Timeouts are
// treated as transient per the provider failure policy.
func IsTransient(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeProviderTransient || appErr.Type == ErrorTypeTimeout
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
