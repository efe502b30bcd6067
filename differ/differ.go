package differ

import (
	"fmt"

	"github.com/integkit/integtools/catalog"
	"github.com/integkit/integtools/internal/severity"
	"github.com/integkit/integtools/oldrev"
	"github.com/integkit/integtools/parser"
)

// ChangeType indicates whether a change is an addition, removal, or modification
type ChangeType string

const (
	// ChangeTypeAdded indicates a new element was added
	ChangeTypeAdded ChangeType = "added"
	// ChangeTypeRemoved indicates an element was removed
	ChangeTypeRemoved ChangeType = "removed"
	// ChangeTypeModified indicates an existing element was changed
	ChangeTypeModified ChangeType = "modified"
)

// ChangeCategory indicates which part of the integration was changed
type ChangeCategory string

const (
	// CategoryCommand indicates a command-level change
	CategoryCommand ChangeCategory = "command"
	// CategoryArgument indicates a command argument change
	CategoryArgument ChangeCategory = "argument"
	// CategoryOutput indicates a command output (context path) change
	CategoryOutput ChangeCategory = "output"
	// CategoryConfiguration indicates a configuration parameter change
	CategoryConfiguration ChangeCategory = "configuration"
	// CategoryScript indicates a script-level change (subtype, docker image)
	CategoryScript ChangeCategory = "script"
)

// Severity indicates the severity level of a change
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational changes
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates potentially problematic changes
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates breaking changes
	SeverityError = severity.SeverityError
	// SeverityCritical indicates critical breaking changes (removed commands)
	SeverityCritical = severity.SeverityCritical
)

// Change represents a single backward-compatibility difference between the
// old revision and the current document
type Change struct {
	// Path is the dotted path to the changed element
	// (e.g. "script.commands.url.outputs.URL.Data")
	Path string
	// Type indicates if this is an addition, removal, or modification
	Type ChangeType
	// Category indicates which part of the integration was changed
	Category ChangeCategory
	// Severity indicates the impact level
	Severity Severity
	// OldValue is the value in the old revision (nil for additions)
	OldValue any
	// NewValue is the value in the current document (nil for removals)
	NewValue any
	// Message is a human-readable description of the change
	Message string
}

// String returns a formatted string representation of the change
func (c Change) String() string {
	var symbol string
	switch c.Severity {
	case SeverityError, SeverityCritical:
		symbol = "✗"
	case SeverityWarning:
		symbol = "⚠"
	case SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "·"
	}
	return fmt.Sprintf("%s %s [%s] %s: %s", symbol, c.Path, c.Type, c.Category, c.Message)
}

// Result contains the outcome of a backward-compatibility check
type Result struct {
	// Compatible is true when no breaking changes were detected.
	// Warnings and informational changes never affect compatibility.
	Compatible bool
	// Changes contains all detected changes
	Changes []Change
	// BreakingCount is the number of breaking changes (Critical + Error severity)
	BreakingCount int
	// WarningCount is the number of warnings
	WarningCount int
	// InfoCount is the number of informational changes
	InfoCount int
	// OldPresent is true when an old revision was available for comparison
	OldPresent bool
	// SourcePath is the current document's source path, if known
	SourcePath string
	// Stats contains statistical information about the current document
	Stats parser.DocumentStats
}

// Differ performs backward-compatibility checks between integration revisions
type Differ struct {
	// IncludeInfo determines whether informational changes are included
	// in results. Defaults to true.
	IncludeInfo bool
	// UserAgent is the User-Agent string used when fetching URLs.
	// Defaults to the library user agent if not set.
	UserAgent string
	// Catalog provides the reference tables used by shared validation
	// rules re-run during the compatibility check
	Catalog catalog.Catalog
	// Rules configures severity and suppression per rule.
	// When nil, default rules are used.
	Rules *RulesConfig
}

// New creates a new Differ instance with default settings
func New() *Differ {
	return &Differ{
		IncludeInfo: true,
		Catalog:     catalog.Default(),
	}
}

// Check parses the current document from a file path or URL and compares it
// against the given old revision.
func (d *Differ) Check(path string, old oldrev.Revision) (*Result, error) {
	p := parser.New()
	if d.UserAgent != "" {
		p.UserAgent = d.UserAgent
	}
	parsed, err := p.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse current document: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("current document has %d parse error(s)", len(parsed.Errors))
	}
	return d.CheckParsed(*parsed, old)
}

// CheckParsed compares an already-parsed current document against the given
// old revision. The document may come from parser.Parse, parser.ParseBytes,
// or parser.ParseWithOptions.
func (d *Differ) CheckParsed(current parser.ParseResult, old oldrev.Revision) (*Result, error) {
	if current.Document == nil {
		return nil, fmt.Errorf("current document is nil")
	}

	result := &Result{
		Compatible: true,
		OldPresent: old.Present,
		SourcePath: current.SourcePath,
		Stats:      current.Stats,
	}

	if !old.Present {
		// Nothing to compare against. A brand-new integration cannot
		// break anyone; if the revision carries a fetch warning,
		// surface it so callers can see why no comparison happened.
		if old.Warning != "" {
			result.addChange(Change{
				Path:     "old",
				Type:     ChangeTypeRemoved,
				Category: CategoryScript,
				Severity: SeverityWarning,
				Message:  old.Warning,
			})
		}
		return d.finish(result), nil
	}

	rules := d.Rules.withDefaults()

	d.checkCommandsAndArguments(result, rules, current.Document, old.Document)
	d.checkContextPaths(result, rules, current.Document, old.Document)
	d.checkRequiredParams(result, rules, current.Document, old.Document)
	d.checkSubtype(result, rules, current.Document, old.Document)
	d.checkDockerImage(result, rules, current.Document, old.Document)
	d.checkCurrentIntegrity(result, rules, current.Document)

	return d.finish(result), nil
}

// addChange records a change, honoring the IncludeInfo filter.
func (r *Result) addChange(c Change) {
	r.Changes = append(r.Changes, c)
	switch c.Severity {
	case SeverityError, SeverityCritical:
		r.BreakingCount++
		r.Compatible = false
	case SeverityWarning:
		r.WarningCount++
	case SeverityInfo:
		r.InfoCount++
	}
}

// finish applies the IncludeInfo filter to the accumulated changes.
func (d *Differ) finish(result *Result) *Result {
	if d.IncludeInfo || result.InfoCount == 0 {
		return result
	}
	filtered := result.Changes[:0]
	for _, c := range result.Changes {
		if c.Severity == SeverityInfo {
			continue
		}
		filtered = append(filtered, c)
	}
	result.Changes = filtered
	result.InfoCount = 0
	return result
}
