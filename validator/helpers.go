package validator

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lowerCaser folds strings for the case-insensitive beta substring checks.
// strings.ToLower would do for ASCII, but display names are free text.
var lowerCaser = cases.Lower(language.Und)

// containsFold reports whether substr occurs in s, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(lowerCaser.String(s), lowerCaser.String(substr))
}

// findDuplicates returns the distinct values that occur more than once in
// names, in first-repeat order. An empty result means no duplicates.
func findDuplicates(names []string) []string {
	seen := make(map[string]bool, len(names))
	reported := make(map[string]bool)
	var duplicates []string
	for _, name := range names {
		if seen[name] && !reported[name] {
			duplicates = append(duplicates, name)
			reported[name] = true
		}
		seen[name] = true
	}
	return duplicates
}

// sortedKeys returns the keys of m in lexicographic order, keeping
// diagnostics deterministic across runs.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
