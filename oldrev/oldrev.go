// Package oldrev retrieves the last accepted revision of an integration
// definition, either from a remote content host over HTTP or from a local git
// clone at a given ref.
//
// Retrieval is deliberately permissive: a revision that cannot be fetched or
// parsed degrades to Absent with a warning instead of failing, so a content
// host outage never blocks unrelated schema validation. The differ package
// treats an Absent revision as "nothing to compare against" and reports the
// change as compatible.
package oldrev

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/integkit/integtools"
	"github.com/integkit/integtools/parser"
)

// fetchTimeout bounds the single fetch attempt. There is no retry loop.
const fetchTimeout = 30 * time.Second

// Revision is the explicit two-variant representation of an old document:
// either Present with a parsed document, or Absent. Newly added files are
// Absent by construction; failed fetches are Absent with a Warning.
type Revision struct {
	// Present is true when Document holds the last accepted revision
	Present bool
	// Document is the parsed old revision (nil when absent)
	Document *parser.IntegrationDocument
	// Warning describes why a fetch degraded to absent (empty otherwise)
	Warning string
}

// Absent returns the revision for a newly added file: nothing to compare against.
func Absent() Revision {
	return Revision{}
}

// AbsentWithWarning returns an absent revision carrying the reason a fetch
// or parse failed.
func AbsentWithWarning(reason string) Revision {
	return Revision{Warning: reason}
}

// Present wraps a parsed document as a present revision.
func Present(doc *parser.IntegrationDocument) Revision {
	return Revision{Present: true, Document: doc}
}

// RemoteConfig configures a fetch from a raw-content host
// (e.g. https://raw.githubusercontent.com/<org>/<repo>).
type RemoteConfig struct {
	// BaseURL is the raw-content root of the content repository
	BaseURL string
	// Branch is the ref to read the old revision from (e.g. "master")
	Branch string
	// Path is the definition file path within the repository. Backslashes
	// are normalized to forward slashes for Windows callers.
	Path string
	// UserAgent overrides the User-Agent header (defaults to the integtools agent)
	UserAgent string
	// InsecureSkipVerify disables TLS certificate verification. Content hosts
	// in CI environments frequently sit behind TLS-intercepting proxies.
	InsecureSkipVerify bool
	// HTTPClient overrides the HTTP client used for the fetch.
	// When set, InsecureSkipVerify is ignored.
	HTTPClient *http.Client
	// Logger is the structured logger for fetch diagnostics (nil disables logging)
	Logger parser.Logger
}

// url assembles the raw-content URL for the configured file.
func (cfg RemoteConfig) url() string {
	path := strings.ReplaceAll(cfg.Path, "\\", "/")
	return strings.TrimSuffix(cfg.BaseURL, "/") + "/" + cfg.Branch + "/" + strings.TrimPrefix(path, "/")
}

// FetchRemote reads the old revision from a remote content host. A single
// attempt is made; on any failure (network, HTTP status, parse) the result
// degrades to an absent revision whose Warning names the cause.
func FetchRemote(ctx context.Context, cfg RemoteConfig) Revision {
	logger := cfg.Logger
	if logger == nil {
		logger = parser.NopLogger{}
	}

	if cfg.BaseURL == "" || cfg.Branch == "" || cfg.Path == "" {
		return AbsentWithWarning("old revision fetch skipped: base URL, branch, and path are all required")
	}

	data, err := fetch(ctx, cfg)
	if err != nil {
		logger.Warn("old revision unavailable, skipping compatibility checks",
			"url", cfg.url(), "error", err)
		return AbsentWithWarning(fmt.Sprintf("could not fetch old revision from %s: %v", cfg.url(), err))
	}

	p := parser.New()
	p.Logger = cfg.Logger
	result, err := p.ParseBytes(data)
	if err != nil {
		logger.Warn("old revision could not be parsed, skipping compatibility checks",
			"url", cfg.url(), "error", err)
		return AbsentWithWarning(fmt.Sprintf("could not parse old revision from %s: %v", cfg.url(), err))
	}
	return Present(result.Document)
}

// fetch performs the single GET against the content host.
func fetch(ctx context.Context, cfg RemoteConfig) ([]byte, error) {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
		if cfg.InsecureSkipVerify {
			client.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.url(), nil)
	if err != nil {
		return nil, err
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = integtools.UserAgent()
	}
	req.Header.Set("User-Agent", ua)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
