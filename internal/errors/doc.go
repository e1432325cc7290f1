// Package errors provides error handling conventions for the themesnap CLI.
//
// The package re-exports the constructors of github.com/cockroachdb/errors so
// every package wraps errors the same way, defines sentinel errors for common
// failure conditions, and provides an ExitError type for CLI exit code
// handling.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrAborted) {
//	    // the user abandoned the backup
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): backup created, possibly with warnings
//   - ExitUser (1): user-related error or aborted flow
//   - ExitSystem (2): system-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := errors.NewUserError(errors.ErrAborted, "Run: themesnap check")
//	os.Exit(errors.ExitCode(err))
package errors
