package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Configuration Errors (CONFIG_*) are programmer faults, never missing evidence
	ErrorCodeConfigInvalidDisputeType ErrorCode = "CONFIG_INVALID_DISPUTE_TYPE"
	ErrorCodeConfigInvalid            ErrorCode = "CONFIG_INVALID"

	// Validation Errors (VALIDATION_*)
	ErrorCodeValidationFailed       ErrorCode = "VALIDATION_FAILED"
	ErrorCodeValidationMissingField ErrorCode = "VALIDATION_MISSING_FIELD"

	// Internal Errors (INTERNAL_*)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail field to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsConfigurationError reports whether err is a caller/programmer fault such as an
// unknown dispute-type selector
func IsConfigurationError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeConfigInvalidDisputeType ||
		code == ErrorCodeConfigInvalid
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeValidationFailed ||
		code == ErrorCodeValidationMissingField
}

// NewInvalidDisputeTypeError builds the configuration fault returned for an unknown selector
func NewInvalidDisputeTypeError(value string) *DomainError {
	return NewDomainError(ErrorCodeConfigInvalidDisputeType, "unrecognized dispute type").
		WithDetail("dispute_type", value)
}

// NewMissingFieldError builds a validation error naming the missing field
func NewMissingFieldError(field string) *DomainError {
	return NewDomainError(ErrorCodeValidationMissingField, "required field missing").
		WithDetail("field", field)
}

// Structured error instances
var (
	ErrInvalidDisputeType     = NewDomainError(ErrorCodeConfigInvalidDisputeType, "unrecognized dispute type")
	ErrInvalidConfig          = NewDomainError(ErrorCodeConfigInvalid, "invalid configuration")
	ErrValidationFailed       = NewDomainError(ErrorCodeValidationFailed, "validation failed")
	ErrValidationMissingField = NewDomainError(ErrorCodeValidationMissingField, "required field missing")
	ErrInternalError          = NewDomainError(ErrorCodeInternalError, "internal error")
)

// Plain sentinels for conditions that carry no structured detail
var (
	ErrNilBundle = errors.New("evidence bundle is nil")
	ErrNilForm   = errors.New("case form is nil")
)
