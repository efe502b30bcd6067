package parser

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/integkit/integtools"
)

// defaultHTTPTimeout bounds the single fetch attempt for URL sources.
const defaultHTTPTimeout = 30 * time.Second

// Parser reads integration definitions from files, URLs, readers, or raw bytes.
type Parser struct {
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to the integtools user agent if not set
	UserAgent string
	// InsecureSkipVerify disables TLS certificate verification for URL sources.
	// Content hosts in CI environments frequently sit behind TLS-intercepting
	// proxies; enable only when that is the case.
	InsecureSkipVerify bool
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with a 30-second timeout is created.
	// When set, InsecureSkipVerify is ignored (configure TLS on your client's transport).
	HTTPClient *http.Client
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		UserAgent: integtools.UserAgent(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// ParseResult contains the parsed integration definition and metadata.
//
// Callers should treat ParseResult as read-only after parsing: the validator
// and differ packages share documents across rule invocations and rely on
// them never being mutated.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name of
	// the method and end in '.yaml' or '.json' based on the detected format
	SourcePath string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat SourceFormat
	// Document is the typed integration definition
	Document *IntegrationDocument
	// Data contains the raw parsed data as a map
	Data map[string]any
	// Errors contains any parsing errors encountered
	Errors []error
	// Warnings contains non-fatal issues, such as outputs missing a contextPath
	Warnings []string
	// LoadTime is the time taken to load the source data (file, URL, etc.)
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
}

// Parse reads and decodes an integration definition from a file path or URL.
func (p *Parser) Parse(docPath string) (*ParseResult, error) {
	var data []byte
	var err error
	var format SourceFormat
	var loadTime time.Duration

	if isURL(docPath) {
		var contentType string
		loadStart := time.Now()
		data, contentType, err = p.fetchURL(docPath)
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(docPath, contentType)
	} else {
		loadStart := time.Now()
		data, err = os.ReadFile(docPath)
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, fmt.Errorf("parser: failed to read file: %w", err)
		}
		format = detectFormatFromPath(docPath)
	}

	res, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}

	res.SourcePath = docPath
	res.LoadTime = loadTime
	res.SourceSize = int64(len(data))
	if format != SourceFormatUnknown {
		res.SourceFormat = format
	}
	return res, nil
}

// ParseReader parses an integration definition from an io.Reader.
// Note: since there is no actual source path, ParseResult.SourcePath will be
// set to ParseReader.yaml or ParseReader.json based on the detected format.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(r)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	res, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	res.SourcePath = fmt.Sprintf("ParseReader.%s", res.SourceFormat)
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes parses an integration definition from raw bytes.
// YAML is a superset of JSON, so a single decode path handles both formats.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res := &ParseResult{
		SourceFormat: detectFormatFromContent(data),
		SourceSize:   int64(len(data)),
	}
	res.SourcePath = fmt.Sprintf("ParseBytes.%s", res.SourceFormat)

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parser: failed to decode document: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	doc := &IntegrationDocument{}
	doc.decodeFromMap(raw)

	res.Data = raw
	res.Document = doc
	res.Stats = collectStats(doc)
	p.collectWarnings(doc, res)
	return res, nil
}

// collectWarnings records non-fatal structural notes, currently outputs that
// declare no contextPath. Such outputs are skipped by the projections rather
// than failing the parse.
func (p *Parser) collectWarnings(doc *IntegrationDocument, res *ParseResult) {
	for _, cmd := range doc.Script.Commands {
		for i, out := range cmd.Outputs {
			if out.ContextPath == "" {
				msg := fmt.Sprintf("command %q: output %d has no contextPath", cmd.Name, i)
				res.Warnings = append(res.Warnings, msg)
				p.log().Warn("skipped output without contextPath", "command", cmd.Name, "index", i)
			}
		}
	}
}

// fetchURL performs a single GET for a URL source. There is deliberately no
// retry: callers degrade a failed fetch to "document absent" with a warning.
func (p *Parser) fetchURL(rawURL string) (data []byte, contentType string, err error) {
	client := p.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
		if p.InsecureSkipVerify {
			client.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("parser: invalid URL: %w", err)
	}
	ua := p.UserAgent
	if ua == "" {
		ua = integtools.UserAgent()
	}
	req.Header.Set("User-Agent", ua)

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to fetch URL: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("parser: unexpected status %d fetching %s", resp.StatusCode, rawURL)
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to read response body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
