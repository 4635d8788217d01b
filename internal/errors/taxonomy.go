package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinels for errors.Is matching against the typed errors below.
var (
	ErrConfiguration = stderrors.New("configuration error")
	ErrNotFound      = stderrors.New("not found")
	ErrParse         = stderrors.New("parse error")
	ErrValidation    = stderrors.New("validation error")
)

// ConfigurationError reports invalid grid bounds or interval.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return "invalid configuration: " + e.Msg }
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NotFoundError reports a missing record, usually a profile.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found: %s", e.Kind, e.Key) }
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ParseError reports a malformed date or time string.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot parse %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("cannot parse %s %q", e.Field, e.Value)
}
func (e *ParseError) Unwrap() error { return e.Err }
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationError reports an input record that violates its invariants.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Msg
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Msg)
}
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewConfigurationError(format string, args ...interface{}) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(kind, key string) error {
	return &NotFoundError{Kind: kind, Key: key}
}

func NewParseError(field, value string, err error) error {
	return &ParseError{Field: field, Value: value, Err: err}
}

func NewValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

// IsParse reports whether err is or wraps a ParseError.
func IsParse(err error) bool {
	return stderrors.Is(err, ErrParse)
}
