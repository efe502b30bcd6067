package validator

import (
	"fmt"
	"strings"

	"github.com/integkit/integtools/catalog"
	"github.com/integkit/integtools/parser"
)

// checkValidCategory fails unless the category is non-empty and in the
// allowed set.
func (v *Validator) checkValidCategory(doc *parser.IntegrationDocument, result *ValidationResult) {
	if doc.Category != "" && v.Catalog.HasCategory(doc.Category) {
		return
	}
	v.addError(result, "category",
		fmt.Sprintf("category %q is not in the schema, valid options: %s",
			doc.Category, strings.Join(v.Catalog.Categories, ", ")),
		withField("category"),
		withValue(doc.Category),
	)
}

// checkValidSubtype fails when a python-typed script declares a subtype
// outside the allowed pair. Non-python scripts have no subtype constraint.
func (v *Validator) checkValidSubtype(doc *parser.IntegrationDocument, result *ValidationResult) {
	if doc.Script.Type != "python" {
		return
	}
	if v.Catalog.HasPythonSubtype(doc.Script.Subtype) {
		return
	}
	v.addError(result, "script.subtype",
		fmt.Sprintf("subtype %q is invalid for a python integration, valid options: %s",
			doc.Script.Subtype, strings.Join(v.Catalog.PythonSubtypes, ", ")),
		withField("subtype"),
		withValue(doc.Script.Subtype),
	)
}

// checkDefaultArguments fails for every reputation command whose same-named
// argument is explicitly marked default: false. An unset default is left for
// the platform to fill in and is not a violation.
func (v *Validator) checkDefaultArguments(doc *parser.IntegrationDocument, result *ValidationResult) {
	for _, cmd := range doc.Commands() {
		if !v.Catalog.IsReputationCommand(cmd.Name) {
			continue
		}
		for _, arg := range cmd.Arguments {
			if arg.Name != cmd.Name {
				continue
			}
			if arg.Default != nil && !*arg.Default {
				v.addError(result, fmt.Sprintf("script.commands.%s.arguments.%s", cmd.Name, arg.Name),
					fmt.Sprintf("argument %q of command %q is not configured as default", arg.Name, cmd.Name),
					withField("default"),
				)
			}
		}
	}
}

// checkParamContracts validates the conventional proxy and insecure-family
// parameters: fixed display label, empty or "false" default, not required,
// and the boolean type code. A contract marked Optional is a no-op pass when
// none of its names appear in the configuration.
func (v *Validator) checkParamContracts(doc *parser.IntegrationDocument, result *ValidationResult) {
	for _, contract := range v.Catalog.ParamContracts {
		for _, param := range doc.Configuration {
			if !contractMatches(contract, param.Name) {
				continue
			}
			path := fmt.Sprintf("configuration.%s", param.Name)
			if param.Display != contract.Display {
				v.addError(result, path,
					fmt.Sprintf("the display name of the %s parameter should be %q", param.Name, contract.Display),
					withField("display"),
					withValue(param.Display),
				)
			}
			if param.DefaultValue != "" && param.DefaultValue != "false" {
				v.addError(result, path,
					fmt.Sprintf("the default value of the %s parameter should be empty or \"false\"", param.Name),
					withField("defaultvalue"),
					withValue(param.DefaultValue),
				)
			}
			if param.Required {
				v.addError(result, path,
					fmt.Sprintf("the %s parameter must not be required", param.Name),
					withField("required"),
				)
			}
			if param.Type != v.Catalog.BooleanParamType {
				v.addError(result, path,
					fmt.Sprintf("the type of the %s parameter should be %d", param.Name, v.Catalog.BooleanParamType),
					withField("type"),
					withValue(param.Type),
				)
			}
		}
	}
}

func contractMatches(contract catalog.ParamContract, name string) bool {
	for _, candidate := range contract.Names {
		if candidate == name {
			return true
		}
	}
	return false
}

// checkDuplicateArguments fails for every command whose argument list repeats
// a name, citing the repeated values.
func (v *Validator) checkDuplicateArguments(doc *parser.IntegrationDocument, result *ValidationResult) {
	for _, issue := range DuplicateArgumentIssues(doc) {
		issue.File = result.SourcePath
		result.Errors = append(result.Errors, issue)
	}
}

// checkDuplicateParams fails when the configuration list repeats a parameter
// name, citing the repeated values.
func (v *Validator) checkDuplicateParams(doc *parser.IntegrationDocument, result *ValidationResult) {
	for _, issue := range DuplicateParamIssues(doc) {
		issue.File = result.SourcePath
		result.Errors = append(result.Errors, issue)
	}
}

// checkReputationOutputs enforces the context output contract for reputation
// commands: missing score paths and missing indicator paths are errors,
// mismatched descriptions only warnings.
func (v *Validator) checkReputationOutputs(doc *parser.IntegrationDocument, result *ValidationResult) {
	for _, issue := range ReputationOutputIssues(doc, v.Catalog) {
		issue.File = result.SourcePath
		if issue.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, issue)
		} else {
			result.Errors = append(result.Errors, issue)
		}
	}
}

// checkValidBeta enforces the beta metadata rules: the display name must
// contain "beta" and the beta flag must be set. For newly introduced files,
// neither the id nor the name may contain "beta" (both are immutable once
// published, so the substring would be stuck after the integration leaves beta).
func (v *Validator) checkValidBeta(doc *parser.IntegrationDocument, isNew bool, result *ValidationResult) {
	if !containsFold(doc.Display, "beta") {
		v.addError(result, "display",
			"a beta integration must include \"beta\" in its display name",
			withField("display"),
			withValue(doc.Display),
		)
	}
	if !doc.Beta {
		v.addError(result, "beta",
			"a beta integration must set the field \"beta: true\"",
			withField("beta"),
		)
	}
	if !isNew {
		return
	}
	if containsFold(doc.CommonFields.ID, "beta") {
		v.addError(result, "commonfields.id",
			"a new beta integration must not include \"beta\" in its id",
			withField("id"),
			withValue(doc.CommonFields.ID),
		)
	}
	if containsFold(doc.Name, "beta") {
		v.addError(result, "name",
			"a new beta integration must not include \"beta\" in its name",
			withField("name"),
			withValue(doc.Name),
		)
	}
}

// DuplicateArgumentIssues returns one error per command whose argument list
// repeats a name. Shared between the schema pass and the compatibility gate,
// which always applies it to the current document.
func DuplicateArgumentIssues(doc *parser.IntegrationDocument) []ValidationError {
	var found []ValidationError
	for _, cmd := range doc.Commands() {
		names := make([]string, 0, len(cmd.Arguments))
		for _, arg := range cmd.Arguments {
			names = append(names, arg.Name)
		}
		duplicates := findDuplicates(names)
		if len(duplicates) == 0 {
			continue
		}
		found = append(found, ValidationError{
			Path:     fmt.Sprintf("script.commands.%s.arguments", cmd.Name),
			Message:  fmt.Sprintf("command %q declares duplicate arguments: %s", cmd.Name, strings.Join(duplicates, ", ")),
			Severity: SeverityError,
			Field:    "arguments",
			Value:    duplicates,
		})
	}
	return found
}

// DuplicateParamIssues returns an error when the configuration list repeats
// a parameter name. Shared between the schema pass and the compatibility gate.
func DuplicateParamIssues(doc *parser.IntegrationDocument) []ValidationError {
	if doc == nil {
		return nil
	}
	names := make([]string, 0, len(doc.Configuration))
	for _, param := range doc.Configuration {
		names = append(names, param.Name)
	}
	duplicates := findDuplicates(names)
	if len(duplicates) == 0 {
		return nil
	}
	return []ValidationError{{
		Path:     "configuration",
		Message:  fmt.Sprintf("the configuration declares duplicate parameters: %s", strings.Join(duplicates, ", ")),
		Severity: SeverityError,
		Field:    "configuration",
		Value:    duplicates,
	}}
}

// ReputationOutputIssues enforces the reputation output contract for every
// reputation command in doc: each canonical score path must be present
// (error), a present score path should carry its canonical description
// (warning only), and at least one of the command's type-specific indicator
// paths must be present (error). Shared between the schema pass and the
// compatibility gate.
func ReputationOutputIssues(doc *parser.IntegrationDocument, cat catalog.Catalog) []ValidationError {
	var found []ValidationError
	for _, cmd := range doc.Commands() {
		if !cat.IsReputationCommand(cmd.Name) {
			continue
		}

		paths := make(map[string]bool, len(cmd.Outputs))
		descriptions := make(map[string]bool, len(cmd.Outputs))
		for _, out := range cmd.Outputs {
			paths[out.ContextPath] = true
			descriptions[out.Description] = true
		}

		var missingPaths, missingDescriptions []string
		for _, scorePath := range sortedKeys(cat.ScoreOutputs) {
			if !paths[scorePath] {
				missingPaths = append(missingPaths, scorePath)
				continue
			}
			if !descriptions[cat.ScoreOutputs[scorePath]] {
				missingDescriptions = append(missingDescriptions, scorePath)
			}
		}

		outputsPath := fmt.Sprintf("script.commands.%s.outputs", cmd.Name)
		if len(missingPaths) > 0 {
			found = append(found, ValidationError{
				Path: outputsPath,
				Message: fmt.Sprintf("command %q is missing the score outputs %s, see %s",
					cmd.Name, strings.Join(missingPaths, ", "), catalog.ContextStandardURL),
				Severity: SeverityError,
				Field:    "outputs",
				Value:    missingPaths,
			})
		}
		if len(missingDescriptions) > 0 {
			found = append(found, ValidationError{
				Path: outputsPath,
				Message: fmt.Sprintf("command %q has non-standard descriptions for %s, see %s",
					cmd.Name, strings.Join(missingDescriptions, ", "), catalog.ContextStandardURL),
				Severity: SeverityWarning,
				Field:    "outputs",
				Value:    missingDescriptions,
			})
		}

		indicatorPaths, ok := cat.IndicatorOutputs[cmd.Name]
		if !ok {
			continue
		}
		if !anyPresent(paths, indicatorPaths) {
			found = append(found, ValidationError{
				Path: outputsPath,
				Message: fmt.Sprintf("command %q must output at least one of %s, see %s",
					cmd.Name, strings.Join(indicatorPaths, ", "), catalog.ContextStandardURL),
				Severity: SeverityError,
				Field:    "outputs",
				Value:    indicatorPaths,
			})
		}
	}
	return found
}

func anyPresent(set map[string]bool, candidates []string) bool {
	for _, candidate := range candidates {
		if set[candidate] {
			return true
		}
	}
	return false
}
