package parser

import "sort"

// CommandArgRequired builds the command → argument → required-flag projection:
// for each command, a mapping from each of its argument names to the
// argument's required flag. When a command declares the same argument name
// twice, the last occurrence wins; duplicates are reported by the validator,
// not resolved here.
//
// Safe on a nil document (returns an empty map), which is how an absent old
// revision is projected.
func CommandArgRequired(doc *IntegrationDocument) map[string]map[string]bool {
	result := make(map[string]map[string]bool)
	for _, cmd := range doc.Commands() {
		args := make(map[string]bool, len(cmd.Arguments))
		for _, arg := range cmd.Arguments {
			args[arg.Name] = arg.Required
		}
		result[cmd.Name] = args
	}
	return result
}

// CommandContextPaths builds the command → sorted context-path projection:
// for each command with at least one output, the lexicographically sorted
// list of its output contextPath values. Outputs without a contextPath are
// skipped (the parser records a warning for them at parse time). Commands
// with no outputs are omitted entirely.
func CommandContextPaths(doc *IntegrationDocument) map[string][]string {
	result := make(map[string][]string)
	for _, cmd := range doc.Commands() {
		if len(cmd.Outputs) == 0 {
			continue
		}
		paths := make([]string, 0, len(cmd.Outputs))
		for _, out := range cmd.Outputs {
			if out.ContextPath == "" {
				continue
			}
			paths = append(paths, out.ContextPath)
		}
		sort.Strings(paths)
		result[cmd.Name] = paths
	}
	return result
}

// ParamRequired builds the configuration-field → required-flag projection.
// Last occurrence wins on duplicate names, mirroring CommandArgRequired.
func ParamRequired(doc *IntegrationDocument) map[string]bool {
	result := make(map[string]bool)
	if doc == nil {
		return result
	}
	for _, param := range doc.Configuration {
		result[param.Name] = param.Required
	}
	return result
}
