// Package errors provides error handling conventions for the agentcfg CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type for CLI exit code handling, and one exit code per
// failure class so shell scripts can branch on the kind of failure:
//
//   - ExitSuccess (0): command completed successfully
//   - ExitUser (1): user error (flags, invalid input)
//   - ExitSystem (2): file-system or I/O error
//   - ExitParse (3): configuration parse error
//   - ExitValidation (4): schema validation failed
//   - ExitExpansion (5): variable expansion failed
//   - ExitTransform (6): transformer or serialization failure
//   - ExitPartial (7): some outputs written, some failed
//
// ExitError supports error unwrapping via [errors.Unwrap] and [errors.As]:
//
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    if exitErr.Suggestion != "" {
//	        fmt.Fprintln(os.Stderr, "Suggestion:", exitErr.Suggestion)
//	    }
//	    os.Exit(exitErr.Code)
//	}
package errors
