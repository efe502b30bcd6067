package differ

import (
	"fmt"
	"slices"

	"github.com/integkit/integtools/internal/versionutil"
	"github.com/integkit/integtools/parser"
	"github.com/integkit/integtools/validator"
)

// checkCommandsAndArguments verifies that every command of the old revision
// still exists and that none of its arguments was removed or had its required
// flag changed.
func (d *Differ) checkCommandsAndArguments(result *Result, rules *RulesConfig, current, old *parser.IntegrationDocument) {
	curArgs := parser.CommandArgRequired(current)
	oldArgs := parser.CommandArgRequired(old)

	removedSev, removedIgnored := resolve(rules.CommandRemoved, SeverityCritical)
	argRemovedSev, argRemovedIgnored := resolve(rules.ArgumentRemoved, SeverityError)
	reqSev, reqIgnored := resolve(rules.ArgumentRequiredChanged, SeverityError)

	for _, cmd := range sortedKeys(oldArgs) {
		curCmd, ok := curArgs[cmd]
		if !ok {
			if !removedIgnored {
				result.addChange(Change{
					Path:     "script.commands." + cmd,
					Type:     ChangeTypeRemoved,
					Category: CategoryCommand,
					Severity: removedSev,
					OldValue: cmd,
					Message:  fmt.Sprintf("command %q was removed", cmd),
				})
			}
			continue
		}
		for _, arg := range sortedKeys(oldArgs[cmd]) {
			oldRequired := oldArgs[cmd][arg]
			curRequired, ok := curCmd[arg]
			if !ok {
				if !argRemovedIgnored {
					result.addChange(Change{
						Path:     fmt.Sprintf("script.commands.%s.arguments.%s", cmd, arg),
						Type:     ChangeTypeRemoved,
						Category: CategoryArgument,
						Severity: argRemovedSev,
						OldValue: arg,
						Message:  fmt.Sprintf("command %q: argument %q was removed", cmd, arg),
					})
				}
				continue
			}
			if curRequired != oldRequired && !reqIgnored {
				result.addChange(Change{
					Path:     fmt.Sprintf("script.commands.%s.arguments.%s.required", cmd, arg),
					Type:     ChangeTypeModified,
					Category: CategoryArgument,
					Severity: reqSev,
					OldValue: oldRequired,
					NewValue: curRequired,
					Message:  fmt.Sprintf("command %q: argument %q required changed from %t to %t", cmd, arg, oldRequired, curRequired),
				})
			}
		}
	}
}

// checkContextPaths verifies that for every command present in both
// revisions, the old revision's output context paths are all still produced.
// Commands removed entirely are reported by checkCommandsAndArguments.
func (d *Differ) checkContextPaths(result *Result, rules *RulesConfig, current, old *parser.IntegrationDocument) {
	sev, ignored := resolve(rules.ContextPathRemoved, SeverityError)
	if ignored {
		return
	}

	curPaths := parser.CommandContextPaths(current)
	oldPaths := parser.CommandContextPaths(old)

	for _, cmd := range sortedKeys(oldPaths) {
		cur, ok := curPaths[cmd]
		if !ok {
			continue
		}
		for _, path := range oldPaths[cmd] {
			if !slices.Contains(cur, path) {
				result.addChange(Change{
					Path:     fmt.Sprintf("script.commands.%s.outputs.%s", cmd, path),
					Type:     ChangeTypeRemoved,
					Category: CategoryOutput,
					Severity: sev,
					OldValue: path,
					Message:  fmt.Sprintf("command %q: context path %q was removed", cmd, path),
				})
			}
		}
	}
}

// checkRequiredParams verifies that no configuration parameter is required in
// the current document unless the old revision already required it.
func (d *Differ) checkRequiredParams(result *Result, rules *RulesConfig, current, old *parser.IntegrationDocument) {
	sev, ignored := resolve(rules.RequiredParamAdded, SeverityError)
	if ignored {
		return
	}

	curParams := parser.ParamRequired(current)
	oldParams := parser.ParamRequired(old)

	for _, name := range sortedKeys(curParams) {
		if !curParams[name] {
			continue
		}
		oldRequired, existed := oldParams[name]
		switch {
		case !existed:
			result.addChange(Change{
				Path:     "configuration." + name,
				Type:     ChangeTypeAdded,
				Category: CategoryConfiguration,
				Severity: sev,
				NewValue: name,
				Message:  fmt.Sprintf("parameter %q was added as required", name),
			})
		case !oldRequired:
			result.addChange(Change{
				Path:     fmt.Sprintf("configuration.%s.required", name),
				Type:     ChangeTypeModified,
				Category: CategoryConfiguration,
				Severity: sev,
				OldValue: false,
				NewValue: true,
				Message:  fmt.Sprintf("parameter %q became required", name),
			})
		}
	}
}

// checkSubtype verifies that a Python integration keeps the interpreter
// subtype declared by the old revision. A subtype change forces every
// installed instance onto a different runtime.
func (d *Differ) checkSubtype(result *Result, rules *RulesConfig, current, old *parser.IntegrationDocument) {
	sev, ignored := resolve(rules.SubtypeChanged, SeverityError)
	if ignored {
		return
	}
	if current.Script.Type != "python" {
		return
	}
	oldSubtype := old.Script.Subtype
	if oldSubtype == "" || oldSubtype == current.Script.Subtype {
		return
	}
	result.addChange(Change{
		Path:     "script.subtype",
		Type:     ChangeTypeModified,
		Category: CategoryScript,
		Severity: sev,
		OldValue: oldSubtype,
		NewValue: current.Script.Subtype,
		Message:  fmt.Sprintf("subtype changed from %q to %q", oldSubtype, current.Script.Subtype),
	})
}

// checkDockerImage verifies that the docker image stays pinned for
// integrations whose old revision targets a server version below the pinning
// threshold. From the threshold on, images are resolved at install time and
// may change freely.
func (d *Differ) checkDockerImage(result *Result, rules *RulesConfig, current, old *parser.IntegrationDocument) {
	sev, ignored := resolve(rules.DockerImageChanged, SeverityError)
	if ignored {
		return
	}
	oldFrom := old.FromVersion
	if oldFrom == "" {
		oldFrom = "0"
	}
	if versionutil.Compare(oldFrom, d.Catalog.DockerPinnedBelow) >= 0 {
		return
	}
	if old.Script.DockerImage == current.Script.DockerImage {
		return
	}
	result.addChange(Change{
		Path:     "script.dockerimage",
		Type:     ChangeTypeModified,
		Category: CategoryScript,
		Severity: sev,
		OldValue: old.Script.DockerImage,
		NewValue: current.Script.DockerImage,
		Message:  fmt.Sprintf("docker image changed from %q to %q", old.Script.DockerImage, current.Script.DockerImage),
	})
}

// checkCurrentIntegrity re-runs the structural rules that hold regardless of
// the old revision: duplicate names and the reputation output contract. A
// duplicate introduced by the candidate change makes existing lookups
// ambiguous, so these count against compatibility too.
func (d *Differ) checkCurrentIntegrity(result *Result, rules *RulesConfig, current *parser.IntegrationDocument) {
	dupArgSev, dupArgIgnored := resolve(rules.DuplicateArgument, SeverityError)
	if !dupArgIgnored {
		for _, issue := range validator.DuplicateArgumentIssues(current) {
			result.addChange(issueChange(issue, CategoryArgument, dupArgSev))
		}
	}

	dupParamSev, dupParamIgnored := resolve(rules.DuplicateParam, SeverityError)
	if !dupParamIgnored {
		for _, issue := range validator.DuplicateParamIssues(current) {
			result.addChange(issueChange(issue, CategoryConfiguration, dupParamSev))
		}
	}

	repSev, repIgnored := resolve(rules.ReputationOutputs, SeverityError)
	if !repIgnored {
		for _, issue := range validator.ReputationOutputIssues(current, d.Catalog) {
			sev := issue.Severity
			if sev == SeverityError {
				sev = repSev
			}
			result.addChange(issueChange(issue, CategoryOutput, sev))
		}
	}
}

// issueChange converts a shared validation issue into a change against the
// current document.
func issueChange(issue validator.ValidationError, category ChangeCategory, sev Severity) Change {
	return Change{
		Path:     issue.Path,
		Type:     ChangeTypeModified,
		Category: category,
		Severity: sev,
		NewValue: issue.Value,
		Message:  issue.Message,
	}
}

// sortedKeys returns the map's keys in sorted order for deterministic output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
