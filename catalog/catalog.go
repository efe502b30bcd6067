// Package catalog holds the static reference tables the validator and differ
// packages consume: allowed categories, python subtypes, the reputation
// command output contracts, and the conventional parameter contracts.
//
// The tables are plain values passed into the rule sets at construction
// rather than ambient globals, so tests can run the rules against alternate
// tables. Default returns the production tables.
package catalog

import "slices"

// ContextStandardURL documents the canonical context output contract that the
// reputation command rules enforce.
const ContextStandardURL = "https://xsoar.pan.dev/docs/integrations/context-standards"

// ParamContract describes the fixed configuration required for one of the
// conventional instance parameters (proxy, insecure).
type ParamContract struct {
	// Names lists the accepted parameter names for this contract. The first
	// name is canonical; the rest are tolerated aliases.
	Names []string
	// Display is the exact display label the parameter must carry
	Display string
	// Optional marks contracts that apply only when one of the names is
	// present in the configuration (the insecure-family contract).
	Optional bool
}

// Catalog bundles every static reference table referenced by the rule sets.
type Catalog struct {
	// Categories is the fixed set of allowed metadata categories
	Categories []string
	// PythonSubtypes is the fixed pair of allowed script subtypes for
	// python-typed integrations
	PythonSubtypes []string
	// ReputationCommands is the fixed set of command names with a
	// standardized output contract
	ReputationCommands []string
	// ScoreOutputs maps each canonical score context path to its canonical
	// description. Absence of a path is an error; a mismatched description
	// is only a warning.
	ScoreOutputs map[string]string
	// IndicatorOutputs maps each reputation command to its type-specific
	// canonical context paths. At least one must be present among the
	// command's outputs. Commands without an entry (email) skip the check.
	IndicatorOutputs map[string][]string
	// ParamContracts lists the conventional parameter contracts
	ParamContracts []ParamContract
	// BooleanParamType is the numeric type code conventional parameters
	// must declare
	BooleanParamType int
	// DockerPinnedBelow is the platform version at which runtime image
	// pinning stopped mattering: revisions whose old fromversion is at or
	// above it skip the image regression check.
	DockerPinnedBelow string
}

// Default returns the production reference tables.
func Default() Catalog {
	return Catalog{
		Categories: []string{
			"Analytics & SIEM",
			"Utilities",
			"Messaging",
			"Endpoint",
			"Network Security",
			"Vulnerability Management",
			"Case Management",
			"Forensics & Malware Analysis",
			"IT Services",
			"Data Enrichment & Threat Intelligence",
			"Authentication",
			"Database",
			"Deception",
			"Email Gateway",
		},
		PythonSubtypes:     []string{"python2", "python3"},
		ReputationCommands: []string{"domain", "email", "file", "ip", "url"},
		ScoreOutputs: map[string]string{
			"DBotScore.Indicator": "The indicator that was tested.",
			"DBotScore.Type":      "The indicator type.",
			"DBotScore.Vendor":    "The vendor used to calculate the score.",
			"DBotScore.Score":     "The actual score.",
		},
		IndicatorOutputs: map[string][]string{
			"domain": {"Domain.Name"},
			"file":   {"File.MD5", "File.SHA1", "File.SHA256"},
			"ip":     {"IP.Address"},
			"url":    {"URL.Data"},
		},
		ParamContracts: []ParamContract{
			{Names: []string{"proxy"}, Display: "Use system proxy settings"},
			{Names: []string{"insecure", "unsecure"}, Display: "Trust any certificate (not secure)", Optional: true},
		},
		BooleanParamType:  8,
		DockerPinnedBelow: "5.0.0",
	}
}

// HasCategory reports whether category is in the allowed set.
func (c Catalog) HasCategory(category string) bool {
	return slices.Contains(c.Categories, category)
}

// HasPythonSubtype reports whether subtype is an allowed python subtype.
func (c Catalog) HasPythonSubtype(subtype string) bool {
	return slices.Contains(c.PythonSubtypes, subtype)
}

// IsReputationCommand reports whether name is a reputation command.
func (c Catalog) IsReputationCommand(name string) bool {
	return slices.Contains(c.ReputationCommands, name)
}
