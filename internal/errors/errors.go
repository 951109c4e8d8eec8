package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the structured error type used across the resolver and its host.
type Error struct {
	// Code is the unique error code (e.g., "ERR_202_NOT_WRITABLE").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is derived from the code.
	Category Category

	// Severity is derived from the code.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error, if any.
	Cause error

	// Suggestion is an actionable hint for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by code so errors.Is works with sentinel values.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *Error) WithDetail(key, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// New creates a new Error. Category and severity are derived from the code.
func New(code string, message string, cause error) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates an Error from an existing error, reusing its message.
func Wrap(code string, err error) *Error {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// Sentinels for errors.Is comparisons.
var (
	ErrConfigMissing     = New(ErrCodeConfigMissing, "no log path available", nil)
	ErrSymlinkUnresolved = New(ErrCodeSymlinkUnresolved, "symlink target could not be resolved", nil)
	ErrNotWritable       = New(ErrCodeNotWritable, "target is not writable", nil)
)

// ConfigMissing reports that neither an argument nor a fallback path was available.
func ConfigMissing(message string) *Error {
	return New(ErrCodeConfigMissing, message, nil)
}

// ConfigInvalid reports a configuration value that failed validation.
func ConfigInvalid(message string, cause error) *Error {
	return New(ErrCodeConfigInvalid, message, cause)
}

// SymlinkUnresolved reports a symlink whose target could not be read.
func SymlinkUnresolved(path string, cause error) *Error {
	return New(ErrCodeSymlinkUnresolved, "Detected a symlink but failed to resolve the target: "+path, cause).
		WithDetail("path", path)
}

// NotWritable reports an existing directory or file that cannot be written.
// kind is "directory" or "file".
func NotWritable(kind, path string) *Error {
	return New(ErrCodeNotWritable, fmt.Sprintf("Detected a %s but is not writable: %s", kind, path), nil).
		WithDetail("path", path).
		WithDetail("kind", kind)
}

// IndeterminateTarget reports a path that is neither a directory nor a regular
// file. It is informational: the path is still applied.
func IndeterminateTarget(path string) *Error {
	return New(ErrCodeIndeterminateTarget, "Could not determine the exact setting to use, applying it as given: "+path, nil).
		WithDetail("path", path).
		WithSuggestion("create the file or directory first to have it checked for writability")
}

// GetCode extracts the error code from an *Error anywhere in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsInfo reports whether err carries informational severity.
func IsInfo(err error) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Severity == SeverityInfo
	}
	return false
}
