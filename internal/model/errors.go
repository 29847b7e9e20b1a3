package model

import (
	"errors"
	"fmt"
)

// ErrInvalidAmount is matched by every *InvalidAmountError via errors.Is
var ErrInvalidAmount = errors.New("invalid amount")

// ErrUnknownRoundingPolicy is returned for policy names other than paise or rupee
var ErrUnknownRoundingPolicy = errors.New("unknown rounding policy")

// InvalidAmountError represents a rejected monetary input (negative, non-finite, out of range)
type InvalidAmountError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *InvalidAmountError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("invalid amount for %s: %s (value=%v)", e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("invalid amount for %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidAmount
func (e *InvalidAmountError) Is(target error) bool {
	return target == ErrInvalidAmount
}

// NewInvalidAmountError creates a new invalid amount error
func NewInvalidAmountError(field string, value interface{}, reason string) *InvalidAmountError {
	return &InvalidAmountError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// ParseError represents input document parsing errors with format context
type ParseError struct {
	Format  Format
	Field   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Format, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Format, e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(format Format, field, message string, cause error) *ParseError {
	return &ParseError{
		Format:  format,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}
