package domain

import "fmt"

// HealthRequest carries the invocation options for one pipeline run
type HealthRequest struct {
	// Path is the project root to analyze
	Path string

	// Quick skips the duplication, circular-dependency and
	// architecture-boundary checks
	Quick bool

	// Fix passes an auto-fix directive to the adapters that support
	// it (currently only the lint adapter)
	Fix bool

	// OutputDir is where the markdown and compact JSON artifacts are
	// written; both are fully overwritten each run
	OutputDir string
}

// ProgressManager manages progress display for long-running analyses
type ProgressManager interface {
	// StartTask begins tracking a named task with a known total
	StartTask(description string, total int) TaskProgress

	// IsInteractive reports whether progress output is rendered
	IsInteractive() bool

	// Close cleans up all active tasks
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	// Increment adds n to the current progress
	Increment(n int)

	// Describe updates the current item description
	Describe(description string)

	// Complete marks the task as finished
	Complete()
}

// ConfigError represents a configuration loading or validation failure
type ConfigError struct {
	Message string
	Cause   error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new configuration error
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{Message: message, Cause: cause}
}
