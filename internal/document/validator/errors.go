// Package validator checks a parsed document against the schema rules.
// It collects every violation instead of failing fast, so a user fixing
// a configuration sees the complete list in one pass.
package validator

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation failures.
var (
	// ErrNoServers indicates the document defines no servers.
	ErrNoServers = errors.New("no servers defined")

	// ErrBadVersion indicates the settings version is malformed or unsupported.
	ErrBadVersion = errors.New("unsupported version")

	// ErrUnknownTool indicates a target entry is not a recognized tool name.
	ErrUnknownTool = errors.New("unknown tool name")

	// ErrDuplicateTarget indicates a default target is listed twice.
	ErrDuplicateTarget = errors.New("duplicate target")

	// ErrMissingCommand indicates a stdio server has a blank command.
	ErrMissingCommand = errors.New("command is empty")

	// ErrBadURL indicates an HTTP server URL has an unaccepted scheme.
	ErrBadURL = errors.New("invalid URL scheme")
)

// ValidationError is one schema violation with the context it occurred in.
type ValidationError struct {
	// Message is a human-readable description of the problem.
	Message string `json:"message"`

	// Context names the section or server the problem belongs to,
	// e.g. "settings.version" or "mcp.servers.github". Empty for
	// document-level issues.
	Context string `json:"context,omitempty"`

	// Err is the underlying sentinel error, if any.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s", e.Context, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches the target sentinel.
func (e *ValidationError) Is(target error) bool {
	return e.Err != nil && errors.Is(e.Err, target)
}
