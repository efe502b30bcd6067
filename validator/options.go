package validator

import (
	"fmt"

	"github.com/integkit/integtools/catalog"
	"github.com/integkit/integtools/internal/options"
	"github.com/integkit/integtools/parser"
)

// Option is a function that configures a validation operation
type Option func(*validateConfig) error

// validateConfig holds configuration for a validation operation
type validateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	// Configuration options
	includeWarnings bool
	cat             *catalog.Catalog
	betaPass        bool
	newFile         bool
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		includeWarnings: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath or WithParsed)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateWithOptions validates an integration definition using functional
// options. By default this is the schema pass; WithBetaPass switches to the
// beta pass.
//
// Example:
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithFilePath("integration-Example.yml"),
//	)
func ValidateWithOptions(opts ...Option) (*ValidationResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}

	v := New()
	v.IncludeWarnings = cfg.includeWarnings
	if cfg.cat != nil {
		v.Catalog = *cfg.cat
	}

	var parseResult parser.ParseResult
	if cfg.filePath != nil {
		p := parser.New()
		res, err := p.Parse(*cfg.filePath)
		if err != nil {
			return nil, err
		}
		parseResult = *res
	} else {
		parseResult = *cfg.parsed
	}

	if cfg.betaPass {
		return v.ValidateBetaParsed(parseResult, cfg.newFile)
	}
	return v.ValidateParsed(parseResult)
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *validateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *validateConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithIncludeWarnings enables or disables warning collection
// Default: true
func WithIncludeWarnings(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.includeWarnings = enabled
		return nil
	}
}

// WithCatalog overrides the reference tables the rules check against
// Default: catalog.Default()
func WithCatalog(cat catalog.Catalog) Option {
	return func(cfg *validateConfig) error {
		cfg.cat = &cat
		return nil
	}
}

// WithBetaPass switches validation to the beta pass: the default-argument
// rule plus the beta naming rules. isNew applies the stricter id/name checks
// for newly introduced files.
// Default: schema pass
func WithBetaPass(isNew bool) Option {
	return func(cfg *validateConfig) error {
		cfg.betaPass = true
		cfg.newFile = isNew
		return nil
	}
}
