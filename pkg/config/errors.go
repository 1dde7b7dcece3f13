package config

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed or incomplete configuration. It is raised
// before any rendering begins; a run that fails validation never touches the
// output directory.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config: %s", e.Reason)
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports internally inconsistent resolved state, such as a
// role no layer mapping knows about. Unlike ValidationError it signals a
// programming error rather than bad user input, but both abort the run.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "config: " + e.Reason
}

// NewConfigurationError builds a ConfigurationError from a formatted reason.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

func joinFields(fields []string) string {
	return strings.Join(fields, ", ")
}
