package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// SourceFormat represents the format of the source integration definition file
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// detectFormatFromPath determines the source format from a file extension.
func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return SourceFormatYAML
	case ".json":
		return SourceFormatJSON
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromURL determines the source format from a URL path and the
// Content-Type header returned by the server.
func detectFormatFromURL(rawURL, contentType string) SourceFormat {
	if format := detectFormatFromPath(stripQuery(rawURL)); format != SourceFormatUnknown {
		return format
	}
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"):
		return SourceFormatJSON
	case strings.Contains(ct, "yaml"), strings.Contains(ct, "yml"):
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent guesses the format from the document bytes.
// JSON documents start with '{' after whitespace; everything else is YAML.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

func stripQuery(rawURL string) string {
	if idx := strings.IndexAny(rawURL, "?#"); idx >= 0 {
		return rawURL[:idx]
	}
	return rawURL
}

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// isURL reports whether the given path is an HTTP or HTTPS URL.
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
