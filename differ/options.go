package differ

import (
	"fmt"

	"github.com/integkit/integtools/catalog"
	"github.com/integkit/integtools/internal/options"
	"github.com/integkit/integtools/oldrev"
	"github.com/integkit/integtools/parser"
)

// Option is a function that configures a compatibility check
type Option func(*checkConfig) error

// checkConfig holds configuration for a compatibility check
type checkConfig struct {
	// Current input source (exactly one must be set)
	currentFilePath *string
	currentParsed   *parser.ParseResult

	// Old revision to compare against
	old    oldrev.Revision
	oldSet bool

	includeInfo bool
	userAgent   string
	cat         *catalog.Catalog
	rules       *RulesConfig
}

// CheckWithOptions performs a backward-compatibility check using functional
// options.
//
// Example:
//
//	result, err := differ.CheckWithOptions(
//	    differ.WithCurrentFilePath("MyIntegration.yml"),
//	    differ.WithOldRevision(oldrev.FetchGit(oldrev.GitConfig{
//	        Dir:  ".",
//	        Path: "MyIntegration.yml",
//	    })),
//	)
func CheckWithOptions(opts ...Option) (*Result, error) {
	cfg := &checkConfig{includeInfo: true}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("differ: invalid options: %w", err)
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify a current document (use WithCurrentFilePath or WithCurrentParsed)",
		"must specify exactly one current document",
		cfg.currentFilePath != nil, cfg.currentParsed != nil,
	); err != nil {
		return nil, fmt.Errorf("differ: invalid options: %w", err)
	}
	if !cfg.oldSet {
		return nil, fmt.Errorf("differ: invalid options: must specify an old revision (use WithOldRevision)")
	}

	d := New()
	d.IncludeInfo = cfg.includeInfo
	d.UserAgent = cfg.userAgent
	d.Rules = cfg.rules
	if cfg.cat != nil {
		d.Catalog = *cfg.cat
	}

	if cfg.currentFilePath != nil {
		return d.Check(*cfg.currentFilePath, cfg.old)
	}
	return d.CheckParsed(*cfg.currentParsed, cfg.old)
}

// WithCurrentFilePath sets the current document source to a file path or URL
func WithCurrentFilePath(path string) Option {
	return func(cfg *checkConfig) error {
		cfg.currentFilePath = &path
		return nil
	}
}

// WithCurrentParsed sets the current document source to an existing parse
// result
func WithCurrentParsed(parsed *parser.ParseResult) Option {
	return func(cfg *checkConfig) error {
		if parsed == nil {
			return fmt.Errorf("parsed result cannot be nil")
		}
		cfg.currentParsed = parsed
		return nil
	}
}

// WithOldRevision sets the old revision to compare against. Use
// oldrev.Absent() for a brand-new integration, or one of the oldrev fetch
// helpers for an existing one.
func WithOldRevision(old oldrev.Revision) Option {
	return func(cfg *checkConfig) error {
		cfg.old = old
		cfg.oldSet = true
		return nil
	}
}

// WithIncludeInfo controls whether informational changes are included in the
// result. Defaults to true.
func WithIncludeInfo(include bool) Option {
	return func(cfg *checkConfig) error {
		cfg.includeInfo = include
		return nil
	}
}

// WithUserAgent sets the User-Agent header used when the current document is
// fetched from a URL
func WithUserAgent(userAgent string) Option {
	return func(cfg *checkConfig) error {
		cfg.userAgent = userAgent
		return nil
	}
}

// WithCatalog sets the reference catalog used by the shared validation rules.
// Defaults to catalog.Default().
func WithCatalog(cat catalog.Catalog) Option {
	return func(cfg *checkConfig) error {
		cfg.cat = &cat
		return nil
	}
}

// WithRules sets the per-rule severity and suppression configuration
func WithRules(rules *RulesConfig) Option {
	return func(cfg *checkConfig) error {
		cfg.rules = rules
		return nil
	}
}
