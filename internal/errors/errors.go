package errors

import (
	"errors"
	"fmt"
	"os"

	"habitkeep/internal/logger"
)

// Sentinel kinds for the core error taxonomy. Callers match with errors.Is.
var (
	// ErrValidation marks input rejected before any write, e.g. a habit
	// referencing a nonexistent category.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an update or delete against an id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness-constraint violation, e.g. a duplicate
	// (habit, date) completion written outside the repository's toggle path.
	// It indicates a logic bug in the caller, not a recoverable condition.
	ErrConflict = errors.New("constraint violation")

	// ErrStorage marks schema or migration failure at startup. There is no
	// transient-failure class for a local store; this is fatal to the caller.
	ErrStorage = errors.New("storage unavailable")
)

// Validationf wraps a formatted message with ErrValidation.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// NotFoundf wraps a formatted message with ErrNotFound.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Conflictf wraps a formatted message with ErrConflict.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

// Storagef wraps a formatted message with ErrStorage.
func Storagef(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrStorage)...)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
