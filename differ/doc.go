// Package differ compares two revisions of an integration definition and
// reports backward-compatibility changes.
//
// The comparison is directional: the old revision is the contract already
// shipped to users, the current revision is the candidate change. A change is
// breaking when it narrows that contract, for example removing a command,
// removing a documented context path, or flipping a configuration parameter
// to required. Additions are never breaking.
//
// The old revision arrives as an oldrev.Revision. When the revision is absent
// (a brand-new integration file) the check passes immediately with zero
// changes; only the revision's fetch warning, if any, is surfaced.
//
// Basic usage:
//
//	d := differ.New()
//	result, err := d.Check("MyIntegration.yml", oldrev.FetchGit(oldrev.GitConfig{
//		Dir:  ".",
//		Path: "MyIntegration.yml",
//	}))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !result.Compatible {
//		for _, c := range result.Changes {
//			fmt.Println(c)
//		}
//	}
//
// Severity of each rule can be tuned or a rule disabled entirely through
// RulesConfig; see CheckWithOptions and WithRules.
package differ
