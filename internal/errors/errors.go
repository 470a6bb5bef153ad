// Package errors provides centralized error definitions and error handling utilities
// for vslaunch. It defines domain-specific errors, sentinel errors, and the
// classification used by the entry point to choose a process exit code.
//
// # Error Types
//
//   - ArgumentError: a launch argument could not be parsed (exit code 403)
//   - InstanceError: an editor instance could not be spawned or driven
//
// Everything that is not an ArgumentError exits with code 500.
//
// # Usage
//
//	err := errors.NewArgumentError("line", "abc", strconvErr)
//	if errors.IsArgumentError(err) { ... }
//
//	err := errors.NewInstanceError("spawn failed", errors.ErrProcessExited).WithPID(4120)
//	if errors.Is(err, errors.ErrProcessExited) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Exit codes returned by the vslaunch binary.
const (
	ExitOK            = 0
	ExitArgumentError = 403
	ExitFailure       = 500
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Registry-related sentinel errors
var (
	// ErrRegistryUnavailable indicates that the instance registry could not be queried.
	ErrRegistryUnavailable = New("instance registry unavailable")
	// ErrUnsupportedPlatform indicates that the current OS has no registry or automation backend.
	ErrUnsupportedPlatform = New("not supported on this platform")
)

// Instance-related sentinel errors
var (
	// ErrInstanceNotFound indicates that no registry entry matched a spawned process.
	ErrInstanceNotFound = New("instance not found in registry")
	// ErrSpawnFailed indicates that the editor process could not be started.
	ErrSpawnFailed = New("failed to spawn editor process")
	// ErrProcessExited indicates that a spawned process exited before it became ready.
	ErrProcessExited = New("process exited before window appeared")
	// ErrNoAutomation indicates that an instance has no automation handle.
	ErrNoAutomation = New("instance has no automation handle")
)

// -----------------------------------------------------------------------------
// ArgumentError
// -----------------------------------------------------------------------------

// ArgumentError reports a command-line argument that could not be parsed.
//
// Example:
//
//	err := errors.NewArgumentError("line", "abc", strconvErr)
//	fmt.Println(err) // `invalid argument line="abc": strconv.Atoi: parsing "abc": invalid syntax`
type ArgumentError struct {
	Field string
	Value string
	cause error
}

// NewArgumentError creates a new ArgumentError.
func NewArgumentError(field, value string, cause error) *ArgumentError {
	return &ArgumentError{Field: field, Value: value, cause: cause}
}

// Error returns the formatted error message.
func (e *ArgumentError) Error() string {
	msg := fmt.Sprintf("invalid argument %s=%q", e.Field, e.Value)
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ArgumentError) Unwrap() error {
	return e.cause
}

// -----------------------------------------------------------------------------
// InstanceError
// -----------------------------------------------------------------------------

// InstanceError represents errors related to editor instance management.
//
// Example:
//
//	err := errors.NewInstanceError("spawn failed", errors.ErrProcessExited)
//	err = err.WithIdentity("!VisualStudio.DTE.17.0:4120").WithPID(4120)
type InstanceError struct {
	message  string
	cause    error
	Identity string
	PID      int
}

// NewInstanceError creates a new InstanceError.
func NewInstanceError(message string, cause error) *InstanceError {
	return &InstanceError{message: message, cause: cause}
}

// WithIdentity adds the registry identity to the error context.
func (e *InstanceError) WithIdentity(identity string) *InstanceError {
	e.Identity = identity
	return e
}

// WithPID adds the process id to the error context.
func (e *InstanceError) WithPID(pid int) *InstanceError {
	e.PID = pid
	return e
}

// Error returns the formatted error message.
func (e *InstanceError) Error() string {
	var parts []string
	if e.Identity != "" {
		parts = append(parts, fmt.Sprintf("identity=%s", e.Identity))
	}
	if e.PID > 0 {
		parts = append(parts, fmt.Sprintf("pid=%d", e.PID))
	}

	prefix := "instance error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("instance error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Unwrap returns the underlying error.
func (e *InstanceError) Unwrap() error {
	return e.cause
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// IsArgumentError reports whether err (or anything it wraps) is an ArgumentError.
func IsArgumentError(err error) bool {
	var argErr *ArgumentError
	return As(err, &argErr)
}

// ExitCode maps an error returned from command execution to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsArgumentError(err):
		return ExitArgumentError
	default:
		return ExitFailure
	}
}

// Wrap wraps an error with a message. Returns nil if err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
