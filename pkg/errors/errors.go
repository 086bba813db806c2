// Package errors defines the typed errors returned across toolmap.
//
// Callers test for a category with the sentinels (errors.Is) or pull out
// detail with the concrete types (errors.As). Every wrapping type
// implements Unwrap so the original cause stays reachable.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Re-exports so callers need a single errors import.
var (
	New  = errors.New
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Sentinels.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrTimeout      = errors.New("operation timed out")
	ErrCanceled     = errors.New("operation canceled")

	// ErrNotConnected means a server key has no live session.
	ErrNotConnected = errors.New("not connected")

	// ErrUnsupported covers unknown transports and file formats.
	ErrUnsupported = errors.New("unsupported")
)

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidationError reports whether err is or wraps ErrInvalidInput.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsTimeout reports whether err is or wraps ErrTimeout.
func IsTimeout(err error) bool { return errors.Is(err, ErrTimeout) }

// IsCanceled reports whether err is or wraps ErrCanceled.
func IsCanceled(err error) bool { return errors.Is(err, ErrCanceled) }

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// NotFoundError reports a missing server, session or file entry.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError reports a descriptor field, flag or config value that
// is not acceptable.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError creates a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// WrapValidation turns err into a ValidationError on field. Nil stays nil.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// ConfigError reports a CLI configuration problem.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "configuration error: " + e.Message
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError reports a catalog or overrides file that could not be decoded.
type ParseError struct {
	Format  string // yaml, toml or json
	File    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError creates a ParseError.
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// WrapParse turns err into a ParseError. Nil stays nil.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// IOError reports a failed read, stat or open of a catalog or overrides file.
type IOError struct {
	Operation string
	Path      string
	Message   string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError creates an IOError.
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Message: causeText(err), Err: err}
}

// WrapIO turns err into an IOError. Nil stays nil.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// LoadError records which refresh input failed: "catalog", "overrides" or
// "active". A load cut short by a newer refresh or by the load timeout
// also matches ErrCanceled or ErrTimeout.
type LoadError struct {
	Load string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s load failed: %v", e.Load, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is maps context errors from the cause onto the sentinels.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrCanceled:
		return errors.Is(e.Err, context.Canceled)
	case ErrTimeout:
		return errors.Is(e.Err, context.DeadlineExceeded)
	}
	return false
}

// NewLoadError creates a LoadError.
func NewLoadError(load string, err error) *LoadError {
	return &LoadError{Load: load, Err: err}
}

// SessionError reports a failure to connect to, or talk to, an MCP server.
type SessionError struct {
	Server    string
	Transport string
	Err       error
}

func (e *SessionError) Error() string {
	if e.Transport == "" {
		return fmt.Sprintf("session error for %s: %v", e.Server, e.Err)
	}
	return fmt.Sprintf("session error for %s (%s): %v", e.Server, e.Transport, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// ResourceError reports a failed create, load or close of a client-level
// resource.
type ResourceError struct {
	Operation string
	Resource  string
	ID        string
	Message   string
	Err       error
}

func (e *ResourceError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
	}
	return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// NewResourceError creates a ResourceError.
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Message: causeText(err), Err: err}
}

// WrapResource turns err into a ResourceError. Nil stays nil.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// TimeoutError reports an operation that did not finish in time, such as
// closing the client on shutdown.
type TimeoutError struct {
	Operation string
	Duration  string
	Message   string
}

func (e *TimeoutError) Error() string {
	if e.Duration == "" {
		return fmt.Sprintf("operation %s timed out: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("operation %s timed out after %s: %s", e.Operation, e.Duration, e.Message)
}

// Is matches ErrTimeout.
func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }
