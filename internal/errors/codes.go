// Package errors provides structured error handling for the debug log file resolver.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Filesystem errors (symlinks, permissions, target type)
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryFS indicates filesystem probing errors.
	CategoryFS Category = "FS"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityError indicates the resolution attempt was abandoned.
	SeverityError Severity = "ERROR"
	// SeverityInfo indicates informational only; the operation proceeds.
	SeverityInfo Severity = "INFO"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigMissing = "ERR_101_CONFIG_MISSING"
	ErrCodeConfigInvalid = "ERR_102_CONFIG_INVALID"

	// Filesystem errors (200-299)
	ErrCodeSymlinkUnresolved   = "ERR_201_SYMLINK_UNRESOLVED"
	ErrCodeNotWritable         = "ERR_202_NOT_WRITABLE"
	ErrCodeIndeterminateTarget = "ERR_203_INDETERMINATE_TARGET"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// "101" from "ERR_101_CONFIG_MISSING"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryFS
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	if code == ErrCodeIndeterminateTarget {
		return SeverityInfo
	}
	return SeverityError
}
