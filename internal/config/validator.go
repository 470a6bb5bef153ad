package config

import (
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "spawn.max_retries")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// apartmentBound is true where editor automation objects belong to the
// thread that enumerated them, which rules out parallel initialization.
var apartmentBound = runtime.GOOS == "windows"

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateEditor()...)
	errors = append(errors, c.validateInstance()...)
	errors = append(errors, c.validateSpawn()...)
	errors = append(errors, c.validateSolution()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateEditor() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Editor.Executable) == "" {
		errors = append(errors, ValidationError{
			Field:   "editor.executable",
			Value:   c.Editor.Executable,
			Message: "must not be empty",
		})
	}
	if strings.TrimSpace(c.Editor.RegistryPrefix) == "" {
		errors = append(errors, ValidationError{
			Field:   "editor.registry_prefix",
			Value:   c.Editor.RegistryPrefix,
			Message: "must not be empty",
		})
	}

	return errors
}

func (c *Config) validateInstance() []ValidationError {
	var errors []ValidationError

	if c.Instance.InitMaxRetries < 0 {
		errors = append(errors, ValidationError{
			Field:   "instance.init_max_retries",
			Value:   c.Instance.InitMaxRetries,
			Message: "must be non-negative",
		})
	}
	if c.Instance.InitRetryIntervalMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "instance.init_retry_interval_ms",
			Value:   c.Instance.InitRetryIntervalMs,
			Message: "must be non-negative",
		})
	}

	const maxConcurrency = 32
	if c.Instance.InitConcurrency < 1 || c.Instance.InitConcurrency > maxConcurrency {
		errors = append(errors, ValidationError{
			Field:   "instance.init_concurrency",
			Value:   c.Instance.InitConcurrency,
			Message: fmt.Sprintf("must be between 1 and %d", maxConcurrency),
		})
	} else if apartmentBound && c.Instance.InitConcurrency > 1 {
		errors = append(errors, ValidationError{
			Field:   "instance.init_concurrency",
			Value:   c.Instance.InitConcurrency,
			Message: "must be 1 on this platform; automation objects are bound to the main thread",
		})
	}

	return errors
}

func (c *Config) validateSpawn() []ValidationError {
	var errors []ValidationError

	if c.Spawn.MaxRetries < 0 {
		errors = append(errors, ValidationError{
			Field:   "spawn.max_retries",
			Value:   c.Spawn.MaxRetries,
			Message: "must be non-negative",
		})
	}
	if c.Spawn.RetryIntervalMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "spawn.retry_interval_ms",
			Value:   c.Spawn.RetryIntervalMs,
			Message: "must be non-negative",
		})
	}
	if c.Spawn.SettleDelayMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "spawn.settle_delay_ms",
			Value:   c.Spawn.SettleDelayMs,
			Message: "must be non-negative",
		})
	}

	return errors
}

func (c *Config) validateSolution() []ValidationError {
	var errors []ValidationError

	if len(c.Solution.Patterns) == 0 {
		errors = append(errors, ValidationError{
			Field:   "solution.patterns",
			Value:   c.Solution.Patterns,
			Message: "must contain at least one pattern",
		})
	}
	for i, pattern := range c.Solution.Patterns {
		if _, err := glob.Compile(pattern); err != nil || strings.TrimSpace(pattern) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("solution.patterns[%d]", i),
				Value:   pattern,
				Message: "must be a valid glob pattern",
			})
		}
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
