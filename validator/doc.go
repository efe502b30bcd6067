// Package validator validates a single integration definition against the
// content schema: category and subtype membership, conventional parameter
// contracts, duplicate detection, the reputation command output contract,
// and the beta naming rules.
//
// Every rule always runs and reports. A failing rule appends error-severity
// issues to the result rather than aborting the pass, so one invocation
// surfaces every problem in the file at once; overall validity is simply
// "no errors were emitted". Cosmetic problems (a wrong output description)
// are warnings and never flip validity.
//
// The compatibility rules that compare two revisions live in the differ
// package; the shared rules (duplicates, reputation outputs) are implemented
// here once and invoked from both gates.
package validator
