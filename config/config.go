// Package config provides startup configuration loaded from environment variables.
// Configuration is read once, before the server starts; there is no runtime reconfiguration.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds web server configuration with environment variable support.
type Config struct {
	// Listen address.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":80"`

	// Expected `Host` header value. Empty value matches any host.
	ServerName string `env:"SERVER_NAME" envDefault:""`

	// Static files location.
	DocumentRoot  string `env:"DOCUMENT_ROOT" envDefault:"/usr/share/nginx/html"`
	IndexFileName string `env:"INDEX_FILE" envDefault:"index.html"`
	ErrorFileName string `env:"ERROR_FILE" envDefault:""`

	// Immutable assets prefix and its client-side cache lifetime.
	StaticPrefix string        `env:"STATIC_PREFIX" envDefault:"/static/"`
	StaticMaxAge time.Duration `env:"STATIC_MAX_AGE" envDefault:"8760h"` // one year

	// In-memory file content cache.
	CacheEnabled     bool          `env:"CACHE_ENABLED" envDefault:"true"`
	CacheTTL         time.Duration `env:"CACHE_TTL" envDefault:"5s"`
	CacheMaxFileSize int64         `env:"CACHE_MAX_FILE_SIZE" envDefault:"65536"`
	CacheMaxItems    uint32        `env:"CACHE_MAX_ITEMS" envDefault:"512"`

	// HTTP server timeouts.
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Logging level: debug, info, warn or error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment. An optional `.env` file in the working directory
// is applied first; a missing file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}
