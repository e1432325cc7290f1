package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a version this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidTool indicates an escalation tool name that cannot be executed.
	ErrInvalidTool = errors.New("invalid escalation tool")

	// ErrInvalidTimeout indicates a negative detection timeout.
	ErrInvalidTimeout = errors.New("timeout must not be negative")

	// ErrInvalidComponent indicates a configured component entry is unusable.
	ErrInvalidComponent = errors.New("invalid component")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, &FieldError{
			Field: "version",
			Value: fmt.Sprint(cfg.Version),
			Err:   ErrUnsupportedVersion,
		})
	}

	if err := validatePath(cfg.BackupRoot); err != nil {
		errs = append(errs, &FieldError{Field: "backup_root", Value: cfg.BackupRoot, Err: err})
	}

	for i, tool := range cfg.Escalation.Tools {
		if tool == "" || strings.ContainsAny(tool, " \t\n/") {
			errs = append(errs, &FieldError{
				Field: fmt.Sprintf("escalation.tools[%d]", i),
				Value: tool,
				Err:   ErrInvalidTool,
			})
		}
	}

	if cfg.Detect.Timeout < 0 {
		errs = append(errs, &FieldError{
			Field: "detect.timeout",
			Value: cfg.Detect.Timeout.String(),
			Err:   ErrInvalidTimeout,
		})
	}

	seen := make(map[string]bool, len(cfg.Components))
	for i, entry := range cfg.Components {
		field := fmt.Sprintf("components[%d]", i)
		if err := entry.Spec().Validate(); err != nil {
			errs = append(errs, &FieldError{Field: field, Value: entry.ID, Err: fmt.Errorf("%w: %w", ErrInvalidComponent, err)})
			continue
		}
		if seen[entry.ID] {
			errs = append(errs, &FieldError{Field: field, Value: entry.ID, Err: errors.Wrap(ErrInvalidComponent, "duplicate id")})
		}
		seen[entry.ID] = true
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an error for a specific configuration field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
