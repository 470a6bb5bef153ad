package errors

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
)

// -----------------------------------------------------------------------------
// ArgumentError Tests
// -----------------------------------------------------------------------------

func TestNewArgumentError(t *testing.T) {
	_, cause := strconv.Atoi("abc")
	err := NewArgumentError("line", "abc", cause)

	if err.Field != "line" {
		t.Errorf("Field = %q, want %q", err.Field, "line")
	}
	if err.Value != "abc" {
		t.Errorf("Value = %q, want %q", err.Value, "abc")
	}
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Error("errors.Is(err, strconv.ErrSyntax) = false, want true")
	}
}

func TestArgumentError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ArgumentError
		want string
	}{
		{
			name: "without cause",
			err:  NewArgumentError("file", "a.cs", nil),
			want: `invalid argument file="a.cs"`,
		},
		{
			name: "with cause",
			err:  NewArgumentError("line", "x", New("not a number")),
			want: `invalid argument line="x": not a number`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// InstanceError Tests
// -----------------------------------------------------------------------------

func TestInstanceError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *InstanceError
		want string
	}{
		{
			name: "bare",
			err:  NewInstanceError("spawn failed", nil),
			want: "instance error: spawn failed",
		},
		{
			name: "with pid and cause",
			err:  NewInstanceError("spawn failed", ErrProcessExited).WithPID(42),
			want: "instance error [pid=42]: spawn failed: process exited before window appeared",
		},
		{
			name: "with identity and pid",
			err:  NewInstanceError("lookup failed", nil).WithIdentity("!VisualStudio.DTE.17.0:42").WithPID(42),
			want: "instance error [identity=!VisualStudio.DTE.17.0:42, pid=42]: lookup failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInstanceError_Unwrap(t *testing.T) {
	err := NewInstanceError("spawn failed", ErrInstanceNotFound)
	if !Is(err, ErrInstanceNotFound) {
		t.Error("Is(err, ErrInstanceNotFound) = false, want true")
	}
	if Is(err, ErrProcessExited) {
		t.Error("Is(err, ErrProcessExited) = true, want false")
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"argument error", NewArgumentError("line", "x", nil), ExitArgumentError},
		{"wrapped argument error", fmt.Errorf("parse: %w", NewArgumentError("lc", "y", nil)), ExitArgumentError},
		{"instance error", NewInstanceError("boom", nil), ExitFailure},
		{"plain error", New("boom"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	err := Wrap(ErrSpawnFailed, "opening solution")
	if err.Error() != "opening solution: failed to spawn editor process" {
		t.Errorf("Wrap() = %q", err.Error())
	}
	if !Is(err, ErrSpawnFailed) {
		t.Error("wrapped error should match sentinel")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
	err := Wrapf(ErrRegistryUnavailable, "enumerating %s", "rot")
	if err.Error() != "enumerating rot: instance registry unavailable" {
		t.Errorf("Wrapf() = %q", err.Error())
	}
}
