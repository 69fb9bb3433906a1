// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

// Package config loads and validates service configuration from
// defaults, an optional YAML file and environment variables, in that
// order of precedence.
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/kinograph/internal/recommend"
)

// Config is the root configuration for the service.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Database  DatabaseConfig   `koanf:"database"`
	API       APIConfig        `koanf:"api"`
	Logging   LoggingConfig    `koanf:"logging"`
	Recommend recommend.Config `koanf:"recommend"`
	Import    ImportConfig     `koanf:"import"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	// Timeout bounds request reads and idle keep-alives, not handler
	// duration: the synchronous train endpoint may run longer.
	Timeout           time.Duration `koanf:"timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// DatabaseConfig controls the embedded DuckDB instance.
type DatabaseConfig struct {
	// Path is the database file. ":memory:" runs fully in memory.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`

	// Threads caps DuckDB's worker threads. 0 means runtime.NumCPU.
	Threads int `koanf:"threads"`
}

// APIConfig controls pagination and recommendation list sizing.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
	DefaultTopN     int `koanf:"default_top_n"`
	MaxTopN         int `koanf:"max_top_n"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ImportConfig controls the optional CSV bulk import at startup.
type ImportConfig struct {
	// CSVPath points at a merged MovieLens-style export with columns
	// userId,movieId,rating,title,genres. Empty disables the startup
	// import.
	CSVPath   string `koanf:"csv_path"`
	BatchSize int    `koanf:"batch_size"`
}

// Validate checks the whole tree and returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be within 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitReqs <= 0 {
			return fmt.Errorf("server.rate_limit_reqs must be positive, got %d", c.Server.RateLimitReqs)
		}
		if c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("server.rate_limit_window must be positive, got %s", c.Server.RateLimitWindow)
		}
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if c.API.DefaultPageSize <= 0 {
		return fmt.Errorf("api.default_page_size must be positive, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) cannot be below api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.API.DefaultTopN <= 0 {
		return fmt.Errorf("api.default_top_n must be positive, got %d", c.API.DefaultTopN)
	}
	if c.API.MaxTopN < c.API.DefaultTopN {
		return fmt.Errorf("api.max_top_n (%d) cannot be below api.default_top_n (%d)",
			c.API.MaxTopN, c.API.DefaultTopN)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	if err := c.Recommend.Validate(); err != nil {
		return err
	}

	if c.Import.BatchSize <= 0 {
		return fmt.Errorf("import.batch_size must be positive, got %d", c.Import.BatchSize)
	}

	return nil
}

// ListenAddr returns the host:port pair for the HTTP listener.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
