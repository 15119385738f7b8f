// Package services provides standardized error types for service layer operations.
package services

import (
	"errors"
	"fmt"
)

// Request errors. These indicate client errors (4xx responses).
var (
	// Validation Errors (400 Bad Request).
	ErrInvalidRequest    = errors.New("invalid request")
	ErrGraphRequired     = errors.New("workflow graph is required")
	ErrFieldPathRequired = errors.New("field path is required")
	ErrRegistryRequired  = errors.New("object type registry is empty")

	// Lookup errors (404 Not Found).
	ErrNodeNotFound       = errors.New("node not found")
	ErrObjectTypeNotFound = errors.New("object type not found")
	ErrFieldNotFound      = errors.New("field not found")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrGraphRequired) ||
		errors.Is(err, ErrFieldPathRequired) ||
		errors.Is(err, ErrRegistryRequired)
}

// IsNotFoundError checks if an error names a missing node, object type or field (HTTP 404).
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNodeNotFound) ||
		errors.Is(err, ErrObjectTypeNotFound) ||
		errors.Is(err, ErrFieldNotFound)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError creates a lookup error with context.
func NewNotFoundError(op, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    "not_found",
		Message: message,
		Err:     err,
	}
}
