package config

import (
	"fmt"
	"slices"
	"strings"

	"svw.info/patrol/internal/domain"
	"svw.info/patrol/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "enumerator.workers")
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

// ValidColorModes returns the accepted render.color values
func ValidColorModes() []string {
	return []string{"auto", "always", "never"}
}

// Validate checks the Config and returns every problem found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(logging.ValidLevels(), strings.ToLower(c.Log.Level)) {
		errors = append(errors, ValidationError{
			Field:   "log.level",
			Value:   c.Log.Level,
			Message: fmt.Sprintf("must be one of %v", logging.ValidLevels()),
		})
	}
	if !slices.Contains(logging.ValidFormats(), strings.ToLower(c.Log.Format)) {
		errors = append(errors, ValidationError{
			Field:   "log.format",
			Value:   c.Log.Format,
			Message: fmt.Sprintf("must be one of %v", logging.ValidFormats()),
		})
	}

	if _, ok := domain.ParseStrategy(c.Enumerator.Strategy); !ok {
		errors = append(errors, ValidationError{
			Field:   "enumerator.strategy",
			Value:   c.Enumerator.Strategy,
			Message: "must be path or brute",
		})
	}
	if c.Enumerator.Workers < 0 {
		errors = append(errors, ValidationError{
			Field:   "enumerator.workers",
			Value:   c.Enumerator.Workers,
			Message: "must be non-negative",
		})
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		errors = append(errors, ValidationError{
			Field:   "server.addr",
			Value:   c.Server.Addr,
			Message: "must not be empty",
		})
	}
	if c.Server.ReadHeaderTimeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "server.read_header_timeout",
			Value:   c.Server.ReadHeaderTimeout,
			Message: "must be positive",
		})
	}

	if strings.TrimSpace(c.Storage.Dir) == "" {
		errors = append(errors, ValidationError{
			Field:   "storage.dir",
			Value:   c.Storage.Dir,
			Message: "must not be empty",
		})
	}

	if !slices.Contains(ValidColorModes(), c.Render.Color) {
		errors = append(errors, ValidationError{
			Field:   "render.color",
			Value:   c.Render.Color,
			Message: fmt.Sprintf("must be one of %v", ValidColorModes()),
		})
	}

	return errors
}
