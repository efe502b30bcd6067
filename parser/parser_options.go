package parser

import (
	"fmt"
	"io"
	"net/http"

	"github.com/integkit/integtools/internal/options"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	data     []byte
	reader   io.Reader

	// Configuration options
	userAgent          string
	insecureSkipVerify bool
	httpClient         *http.Client
	logger             Logger
}

// ParseWithOptions parses an integration definition using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("integration-Example.yml"),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := New()
	if cfg.userAgent != "" {
		p.UserAgent = cfg.userAgent
	}
	p.InsecureSkipVerify = cfg.insecureSkipVerify
	p.HTTPClient = cfg.httpClient
	p.Logger = cfg.logger

	switch {
	case cfg.filePath != nil:
		return p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		return p.ParseReader(cfg.reader)
	default:
		return p.ParseBytes(cfg.data)
	}
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath, WithBytes, or WithReader)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.data != nil, cfg.reader != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies raw document bytes as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		cfg.data = data
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		cfg.reader = r
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "" (uses the integtools default)
func WithUserAgent(ua string) Option {
	return func(cfg *parseConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithInsecureSkipVerify disables TLS certificate verification for URL sources
// Default: false
func WithInsecureSkipVerify(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.insecureSkipVerify = enabled
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for URL sources.
// When set, WithInsecureSkipVerify is ignored (configure TLS on the client).
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *parseConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithLogger sets the structured logger for parser debug output
// Default: nil (logging disabled)
func WithLogger(logger Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = logger
		return nil
	}
}
