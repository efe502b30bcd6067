package validator

import (
	"fmt"
	"time"

	"github.com/integkit/integtools/catalog"
	"github.com/integkit/integtools/internal/issues"
	"github.com/integkit/integtools/internal/severity"
	"github.com/integkit/integtools/parser"
)

// Severity indicates the severity level of a validation issue
type Severity = severity.Severity

const (
	// SeverityError indicates a schema violation that makes the definition invalid
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a cosmetic violation or recommendation
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
	// SeverityCritical indicates critical issues
	SeverityCritical = severity.SeverityCritical
)

// ValidationError represents a single validation issue
type ValidationError = issues.Issue

// ValidationResult contains the results of validating an integration definition
type ValidationResult struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool
	// Errors contains all validation errors
	Errors []ValidationError
	// Warnings contains all validation warnings
	Warnings []ValidationError
	// ErrorCount is the total number of errors
	ErrorCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats parser.DocumentStats
	// SourcePath is the path of the definition file under test
	SourcePath string
}

// Validator validates integration definitions against the content schema.
type Validator struct {
	// IncludeWarnings determines whether warnings are collected
	IncludeWarnings bool
	// Catalog holds the static reference tables the rules check against
	Catalog catalog.Catalog
}

// New creates a new Validator with the production reference tables.
func New() *Validator {
	return &Validator{
		IncludeWarnings: true,
		Catalog:         catalog.Default(),
	}
}

// Validate reads an integration definition from a file path or URL and runs
// the schema pass against it.
func (v *Validator) Validate(docPath string) (*ValidationResult, error) {
	p := parser.New()
	parseResult, err := p.Parse(docPath)
	if err != nil {
		return nil, err
	}
	return v.ValidateParsed(*parseResult)
}

// ValidateParsed runs the schema pass against an already parsed definition.
// Every rule runs regardless of earlier failures; Valid reports whether any
// rule emitted an error.
func (v *Validator) ValidateParsed(parseResult parser.ParseResult) (*ValidationResult, error) {
	doc := parseResult.Document
	if doc == nil {
		return nil, fmt.Errorf("parse result has no document")
	}
	result := v.newResult(parseResult)

	v.checkValidCategory(doc, result)
	v.checkValidSubtype(doc, result)
	v.checkDefaultArguments(doc, result)
	v.checkParamContracts(doc, result)
	v.checkDuplicateArguments(doc, result)
	v.checkDuplicateParams(doc, result)
	v.checkReputationOutputs(doc, result)

	v.finish(result)
	return result, nil
}

// ValidateBetaParsed runs the beta pass against an already parsed definition:
// the default-argument rule plus the beta naming rules. isNew applies the
// stricter id/name checks that only make sense for newly introduced files.
func (v *Validator) ValidateBetaParsed(parseResult parser.ParseResult, isNew bool) (*ValidationResult, error) {
	doc := parseResult.Document
	if doc == nil {
		return nil, fmt.Errorf("parse result has no document")
	}
	result := v.newResult(parseResult)

	v.checkDefaultArguments(doc, result)
	v.checkValidBeta(doc, isNew, result)

	v.finish(result)
	return result, nil
}

// ValidateBeta reads a definition from a file path or URL and runs the beta pass.
func (v *Validator) ValidateBeta(docPath string, isNew bool) (*ValidationResult, error) {
	p := parser.New()
	parseResult, err := p.Parse(docPath)
	if err != nil {
		return nil, err
	}
	return v.ValidateBetaParsed(*parseResult, isNew)
}

func (v *Validator) newResult(parseResult parser.ParseResult) *ValidationResult {
	return &ValidationResult{
		Errors:     make([]ValidationError, 0),
		Warnings:   make([]ValidationError, 0),
		LoadTime:   parseResult.LoadTime,
		SourceSize: parseResult.SourceSize,
		Stats:      parseResult.Stats,
		SourcePath: parseResult.SourcePath,
	}
}

func (v *Validator) finish(result *ValidationResult) {
	if !v.IncludeWarnings {
		result.Warnings = result.Warnings[:0]
	}
	result.ErrorCount = len(result.Errors)
	result.WarningCount = len(result.Warnings)
	result.Valid = result.ErrorCount == 0
}

// addError appends a validation error to the result.
func (v *Validator) addError(result *ValidationResult, path, message string, opts ...func(*ValidationError)) {
	err := ValidationError{
		Path:     path,
		Message:  message,
		Severity: SeverityError,
		File:     result.SourcePath,
	}
	for _, opt := range opts {
		opt(&err)
	}
	result.Errors = append(result.Errors, err)
}

// addWarning appends a validation warning to the result.
func (v *Validator) addWarning(result *ValidationResult, path, message string, opts ...func(*ValidationError)) {
	warn := ValidationError{
		Path:     path,
		Message:  message,
		Severity: SeverityWarning,
		File:     result.SourcePath,
	}
	for _, opt := range opts {
		opt(&warn)
	}
	result.Warnings = append(result.Warnings, warn)
}

// withField sets the Field on a ValidationError.
func withField(field string) func(*ValidationError) {
	return func(e *ValidationError) { e.Field = field }
}

// withValue sets the Value on a ValidationError.
func withValue(value any) func(*ValidationError) {
	return func(e *ValidationError) { e.Value = value }
}
