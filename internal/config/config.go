// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// NodeAddress is the "host:port" endpoint this node agent serves.
	// Tokens are only honored when their service field equals this address.
	NodeAddress string

	// TokenTTL is the validity window applied to newly issued container tokens.
	TokenTTL time.Duration

	// KeyRetentionWindow is the number of retired master keys kept for
	// verification after a rotation.
	KeyRetentionWindow int
	// KeyRotationInterval enables time-driven rotation when positive;
	// zero disables the background rotator.
	KeyRotationInterval time.Duration

	// MasterKeySeed is an optional base64-encoded 32-byte seed for
	// deterministic key derivation. Empty means random keys.
	MasterKeySeed string
	// KMSKeyURI, when set, marks MasterKeySeed as KMS-wrapped ciphertext to
	// be unwrapped through gocloud.dev/secrets at startup.
	KMSKeyURI string

	// RateLimitIssueEnabled indicates whether rate limiting for the token issue endpoint is enabled.
	RateLimitIssueEnabled bool
	// RateLimitIssueRequestsPerSec is the number of requests allowed per second for the issue endpoint.
	RateLimitIssueRequestsPerSec float64
	// RateLimitIssueBurst is the burst size for the issue endpoint rate limiting.
	RateLimitIssueBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// ShutdownTimeout bounds graceful shutdown of the HTTP servers.
	ShutdownTimeout time.Duration
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Node agent endpoint (default matches the conventional node manager port)
		NodeAddress: env.GetString("NODE_ADDRESS", "127.0.0.1:45454"),

		// Token lifecycle
		TokenTTL:            env.GetDuration("TOKEN_TTL_SECONDS", 600, time.Second),
		KeyRetentionWindow:  env.GetInt("KEY_RETENTION_WINDOW", 2),
		KeyRotationInterval: env.GetDuration("KEY_ROTATION_INTERVAL_SECONDS", 0, time.Second),

		// Master key material
		MasterKeySeed: env.GetString("MASTER_KEY_SEED", ""),
		KMSKeyURI:     env.GetString("KMS_KEY_URI", ""),

		// Rate Limiting for the Issue Endpoint (IP-based)
		RateLimitIssueEnabled:        env.GetBool("RATE_LIMIT_ISSUE_ENABLED", true),
		RateLimitIssueRequestsPerSec: env.GetFloat64("RATE_LIMIT_ISSUE_REQUESTS_PER_SEC", 50.0),
		RateLimitIssueBurst:          env.GetInt("RATE_LIMIT_ISSUE_BURST", 100),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "containertoken"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),

		// Shutdown
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 30, time.Second),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
