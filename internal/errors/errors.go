package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for the agentcfg CLI. Each failure class gets its own code
// so calling scripts can branch on the kind of failure.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, flags, etc.).
	ExitUser = 1

	// ExitSystem indicates a file-system or I/O error.
	ExitSystem = 2

	// ExitParse indicates the unified configuration failed to parse.
	ExitParse = 3

	// ExitValidation indicates schema validation failed.
	ExitValidation = 4

	// ExitExpansion indicates variable expansion failed (cycle or depth).
	ExitExpansion = 5

	// ExitTransform indicates a transformer or serialization failure.
	ExitTransform = 6

	// ExitPartial indicates some tool outputs were written and others failed.
	ExitPartial = 7
)

// Sentinel errors for common failure conditions.
var (
	// ErrNotFound indicates the configuration file does not exist.
	ErrNotFound = errors.New("configuration file not found")

	// ErrPermission indicates the file could not be accessed due to permissions.
	ErrPermission = errors.New("permission denied")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownTool indicates the tool is not in the known tool list.
	ErrUnknownTool = errors.New("unknown tool")
)

// Re-exported helpers from cockroachdb/errors so callers only need this
// package for the common cases.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// ExitError wraps an error with an exit code and optional suggestion for
// the CLI boundary. It implements the error interface and supports
// unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewExitErrorWithSuggestion creates an ExitError with a suggestion.
func NewExitErrorWithSuggestion(err error, code int, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: code, Suggestion: suggestion}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
