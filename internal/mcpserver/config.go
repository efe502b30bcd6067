package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Input settings.
	MaxInlineSize   int64
	AllowPrivateIPs bool

	// Validate tool defaults.
	ValidateNoWarnings bool

	// Compat tool defaults.
	CompatBranch string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from INTEGTOOLS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("INTEGTOOLS_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("INTEGTOOLS_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("INTEGTOOLS_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("INTEGTOOLS_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("INTEGTOOLS_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("INTEGTOOLS_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      int64(envInt("INTEGTOOLS_MAX_INLINE_SIZE", 4*1024*1024)),
		AllowPrivateIPs:    envBool("INTEGTOOLS_ALLOW_PRIVATE_IPS", false),
		ValidateNoWarnings: envBool("INTEGTOOLS_VALIDATE_NO_WARNINGS", false),
		CompatBranch:       envString("INTEGTOOLS_COMPAT_BRANCH", "master"),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
