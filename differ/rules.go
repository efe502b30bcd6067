package differ

// BreakingChangeRule configures how a specific change type is treated.
type BreakingChangeRule struct {
	// Severity overrides the default severity for this change type.
	// If nil, the default severity is used.
	Severity *Severity

	// Ignore completely ignores this change type (not included in results).
	Ignore bool
}

// RulesConfig configures which changes are considered breaking and at what
// severity. Use this to tune the check to your repository's compatibility
// policy.
//
// Example:
//
//	rules := &differ.RulesConfig{
//	    DockerImageChanged: &differ.BreakingChangeRule{
//	        Severity: differ.SeverityPtr(differ.SeverityInfo), // pinned elsewhere
//	    },
//	    DuplicateParam: &differ.BreakingChangeRule{Ignore: true},
//	}
//	d := differ.New()
//	d.Rules = rules
type RulesConfig struct {
	// CommandRemoved configures the rule for when a command present in the
	// old revision is missing from the current document.
	// Default: SeverityCritical
	CommandRemoved *BreakingChangeRule

	// ArgumentRemoved configures the rule for when a command argument
	// present in the old revision is missing from the current document.
	// Default: SeverityError
	ArgumentRemoved *BreakingChangeRule

	// ArgumentRequiredChanged configures the rule for when an argument's
	// required flag differs from the old revision.
	// Default: SeverityError
	ArgumentRequiredChanged *BreakingChangeRule

	// ContextPathRemoved configures the rule for when a documented output
	// context path is missing from the current document.
	// Default: SeverityError
	ContextPathRemoved *BreakingChangeRule

	// RequiredParamAdded configures the rule for when a configuration
	// parameter is required in the current document but was absent from,
	// or optional in, the old revision.
	// Default: SeverityError
	RequiredParamAdded *BreakingChangeRule

	// SubtypeChanged configures the rule for when a Python integration's
	// subtype differs from the old revision.
	// Default: SeverityError
	SubtypeChanged *BreakingChangeRule

	// DockerImageChanged configures the rule for when the docker image
	// differs from the old revision on an integration whose old fromversion
	// is below the pinning threshold.
	// Default: SeverityError
	DockerImageChanged *BreakingChangeRule

	// DuplicateArgument configures the rule for duplicate argument names
	// within a command of the current document.
	// Default: SeverityError
	DuplicateArgument *BreakingChangeRule

	// DuplicateParam configures the rule for duplicate configuration
	// parameter names in the current document.
	// Default: SeverityError
	DuplicateParam *BreakingChangeRule

	// ReputationOutputs configures the rule for reputation command output
	// contract violations in the current document. Overriding the severity
	// affects only the error-level violations; description mismatches stay
	// warnings.
	// Default: SeverityError
	ReputationOutputs *BreakingChangeRule
}

// SeverityPtr returns a pointer to the given severity, for use in
// BreakingChangeRule literals.
func SeverityPtr(s Severity) *Severity {
	return &s
}

// withDefaults returns a non-nil config so rule lookups never nil-check.
func (rc *RulesConfig) withDefaults() *RulesConfig {
	if rc == nil {
		return &RulesConfig{}
	}
	return rc
}

// resolve returns the effective severity for a rule and whether the rule is
// suppressed entirely.
func resolve(rule *BreakingChangeRule, def Severity) (Severity, bool) {
	if rule == nil {
		return def, false
	}
	if rule.Ignore {
		return def, true
	}
	if rule.Severity != nil {
		return *rule.Severity, false
	}
	return def, false
}
