// Package parser reads integration definitions from files, URLs, readers, or
// raw bytes and decodes them into typed documents.
//
// Decoding is deliberately lenient: an integration definition is a
// semi-structured document and missing keys are never an error. Every field
// defaults to its zero value (empty string, false, empty slice) so that the
// validator and differ packages can run their rules against partially absent
// documents without nil checks.
//
// The package also provides the comparable projections the differ package is
// built on: CommandArgRequired, CommandContextPaths, and ParamRequired.
package parser
