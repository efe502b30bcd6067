// Package integtools provides tools for validating integration definitions in a
// content repository and for gating changes on backward compatibility.
//
// An integration definition is a YAML (or JSON) document describing one
// pluggable module: its metadata, configuration parameters, and the commands it
// exposes together with their arguments and outputs. integtools parses such
// documents, validates them against the content schema, and compares a proposed
// revision against the last accepted revision to detect breaking changes.
//
// # Overview
//
// The library consists of four primary packages:
//
//   - parser: Parse integration definitions and derive comparable projections
//   - validator: Validate a definition against the content schema
//   - differ: Compare two revisions and report breaking changes
//   - oldrev: Retrieve the last accepted revision from a content host or git clone
//
// The catalog package holds the static reference tables (allowed categories,
// python subtypes, reputation output contracts) that both the validator and
// the differ consume.
//
// # Quick Start
//
// Parse an integration definition:
//
//	import "github.com/integkit/integtools/parser"
//
//	p := parser.New()
//	result, err := p.Parse("integration-Example.yml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Name: %s\n", result.Document.Name)
//
// Validate it against the schema:
//
//	import "github.com/integkit/integtools/validator"
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithFilePath("integration-Example.yml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !result.Valid {
//		fmt.Printf("Found %d errors\n", result.ErrorCount)
//	}
//
// Check backward compatibility against the last accepted revision:
//
//	import (
//	    "github.com/integkit/integtools/differ"
//	    "github.com/integkit/integtools/oldrev"
//	)
//
//	old := oldrev.FetchRemote(ctx, oldrev.RemoteConfig{
//	    BaseURL: "https://raw.githubusercontent.com/example/content",
//	    Branch:  "master",
//	    Path:    "Integrations/integration-Example.yml",
//	})
//	result, err := differ.CheckWithOptions(
//	    differ.WithCurrentFilePath("integration-Example.yml"),
//	    differ.WithOldRevision(old),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !result.Compatible {
//		for _, c := range result.Changes {
//			fmt.Println(c)
//		}
//	}
//
// # CLI
//
// The cmd/integtools command exposes the same functionality as the
// validate, compat, parse, and mcp subcommands. The mcp subcommand runs an
// MCP server over stdio so agent tooling can call the validators directly.
//
// # Design
//
// Every rule in validator and differ is a pure predicate over immutable
// document snapshots: rules append issues to the result, never abort the run,
// and overall validity is simply "no error-severity issues were emitted". A
// missing old revision (newly added file, or a failed fetch degraded to a
// warning) short-circuits the compatibility pass to "compatible".
package integtools
