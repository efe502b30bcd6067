// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes integtools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/integkit/integtools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `integtools MCP server — parses and validates integration definitions and checks backward compatibility between revisions.

Configuration: All defaults are configurable via INTEGTOOLS_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- INTEGTOOLS_CACHE_FILE_TTL (default: 15m) — cache TTL for local file documents
- INTEGTOOLS_CACHE_URL_TTL (default: 5m) — cache TTL for URL-fetched documents
- INTEGTOOLS_CACHE_ENABLED (default: true) — disable document caching entirely
- INTEGTOOLS_VALIDATE_NO_WARNINGS (default: false) — suppress warnings by default
- INTEGTOOLS_COMPAT_BRANCH (default: master) — default branch for git-based old revisions
- INTEGTOOLS_MAX_INLINE_SIZE (default: 4194304) — maximum inline content size in bytes

Caching: Parsed documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "integtools", Version: integtools.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate an integration definition: category, Python subtype, reputation command arguments and outputs, proxy/insecure parameter contracts, and duplicate names. Use beta=true for the beta naming pass (add new=true when the file is newly added). Warning suppression defaults to INTEGTOOLS_VALIDATE_NO_WARNINGS.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compat",
		Description: "Check backward compatibility of an integration definition against an old revision. The old revision comes from a file, URL, inline content, or a git ref (git_dir + path, default branch configurable via INTEGTOOLS_COMPAT_BRANCH). Omit the old revision entirely for a brand-new integration, which passes with zero changes. Reports removed commands, removed arguments or context paths, required-flag flips, subtype and docker image changes.",
	}, handleCompat)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse an integration definition. Returns a structural summary: id, name, display, category, beta flag, script type and subtype, docker image, parameter/command/argument/output counts, and the command names.",
	}, handleParse)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
