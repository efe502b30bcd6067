// Package severity provides severity level constants and utilities
// for issues reported by the validator and differ packages.
//
// All severity levels are exported by each public package that uses them:
//   - SeverityInfo: Informational messages about non-breaking changes
//   - SeverityWarning: Cosmetic violations or degraded operations worth noting
//   - SeverityError: Schema violations or breaking changes that make a revision invalid
//   - SeverityCritical: Removed commands or other changes no consumer can tolerate
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue found during validation
// or compatibility analysis.
type Severity int

const (
	// SeverityError indicates a schema violation or breaking change that makes
	// the definition invalid. Used by both the validator and differ packages.
	SeverityError Severity = iota

	// SeverityWarning indicates cosmetic violations (such as a wrong output
	// description) or degraded operations (such as a failed old-revision fetch)
	// that don't flip validity but should be addressed.
	SeverityWarning

	// SeverityInfo indicates informational messages about non-breaking changes.
	// These are non-actionable notices that may be useful for review.
	SeverityInfo

	// SeverityCritical indicates changes no existing consumer can tolerate,
	// such as a removed command.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
