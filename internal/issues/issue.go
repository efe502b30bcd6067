// Package issues provides a unified issue type for validation and
// compatibility problems.
package issues

import (
	"fmt"

	"github.com/integkit/integtools/internal/severity"
)

// Issue represents a single problem found during validation or
// compatibility analysis.
type Issue struct {
	// Path is the dotted path to the problematic field
	// (e.g., "script.commands.ip.outputs")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Field is the specific field name that has the issue
	Field string
	// Value is the problematic value (optional)
	Value any
	// File is the path of the definition file under test (empty if unknown)
	File string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	if i.File != "" {
		return fmt.Sprintf("%s %s %s: %s", symbol, i.File, i.Path, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, i.Path, i.Message)
}

// Location returns the file path of the definition under test, falling back
// to the dotted field path when the file is unknown.
func (i Issue) Location() string {
	if i.File != "" {
		return i.File
	}
	return i.Path
}
