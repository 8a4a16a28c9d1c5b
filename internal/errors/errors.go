// Package errors provides a lightweight structured error type (GateError)
// for category-based classification of step failures in the orchestration and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a gate error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// External collaborator errors
	CategoryExtraction ErrorCategory = "extraction"
	CategoryService    ErrorCategory = "service"
	CategoryGit        ErrorCategory = "git"

	// Decision and reporting errors
	CategoryPolicy ErrorCategory = "policy"
	CategoryReport ErrorCategory = "report"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryStorage  ErrorCategory = "storage"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// GateError is a structured error with category, severity, and context
type GateError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Interrupt bool          `json:"interrupt"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for GateError
type ContextFields map[string]any

// Error implements the error interface
func (e *GateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *GateError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *GateError) WithContext(key string, value any) *GateError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new GateError
func New(category ErrorCategory, severity ErrorSeverity, message string) *GateError {
	return &GateError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new GateError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *GateError {
	return &GateError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// WrapError wraps an existing error with a new GateError at error severity
func WrapError(err error, category ErrorCategory, message string) *GateError {
	return &GateError{
		Category: category,
		Severity: SeverityError,
		Message:  message,
		Cause:    err,
	}
}

// Interrupted creates a GateError marking a host-initiated abort. Interruptions
// are logged but never set a build result on their own.
func Interrupted(err error) *GateError {
	return &GateError{
		Category:  CategoryRuntime,
		Severity:  SeverityInfo,
		Message:   "run interrupted by host",
		Cause:     err,
		Interrupt: true,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if ge, ok := err.(*GateError); ok {
		return ge.Category == category
	}
	return false
}

// IsInterrupt reports whether the error represents a host abort signal.
func IsInterrupt(err error) bool {
	if ge, ok := err.(*GateError); ok {
		return ge.Interrupt
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a GateError
func GetCategory(err error) ErrorCategory {
	if ge, ok := err.(*GateError); ok {
		return ge.Category
	}
	return CategoryInternal
}
