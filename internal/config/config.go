// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package config

import "time"

// Config holds all application configuration.
//
// Loading order (see LoadWithKoanf):
//  1. Defaults: built-in values for every setting
//  2. Config file: optional YAML file (config.yaml or CONFIG_PATH)
//  3. Environment variables: override any mapped setting
//
// Config is immutable after loading and safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Database DatabaseConfig `koanf:"database"`
	Ingest   IngestConfig   `koanf:"ingest"`
	Cache    CacheConfig    `koanf:"cache"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production

	// MaxBodyBytes caps request bodies, bulk batches included.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// APIConfig holds pagination settings for list and search endpoints.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds authentication and authorization settings.
type SecurityConfig struct {
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// AdminUsername/AdminPassword bootstrap an admin account at startup when
	// no user with that name exists yet.
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`
	AdminEmail    string `koanf:"admin_email"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	Casbin CasbinConfig `koanf:"casbin"`
}

// CasbinConfig holds RBAC enforcer settings. The model and policy are
// embedded in the binary; only the decision cache is configurable.
type CasbinConfig struct {
	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
}

// DatabaseConfig holds Badger document store settings.
type DatabaseConfig struct {
	// Path is the Badger data directory. Ignored when InMemory is true.
	Path string `koanf:"path"`

	// InMemory runs Badger without touching disk (tests, demos).
	InMemory bool `koanf:"in_memory"`

	// SyncWrites fsyncs every write.
	SyncWrites bool `koanf:"sync_writes"`
}

// IngestConfig holds bulk ingestion queue settings.
type IngestConfig struct {
	// MaxDuration is the upper bound (minutes) accepted for a movie's duration.
	MaxDuration int `koanf:"max_duration"`

	// MaxBatchSize caps the number of records in one bulk request. 0 = unbounded.
	MaxBatchSize int `koanf:"max_batch_size"`

	// WritesPerSecond paces storage upserts from the drain loop. 0 = unlimited.
	WritesPerSecond float64 `koanf:"writes_per_second"`
	WriteBurst      int     `koanf:"write_burst"`

	// BreakerFailures is the number of consecutive storage failures that
	// opens the circuit; BreakerTimeout is how long it stays open.
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`

	// RecentFailures bounds the failure list exposed on the status endpoint.
	RecentFailures int `koanf:"recent_failures"`

	// ShutdownTimeout bounds how long shutdown waits for the drain loop.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// CacheConfig holds the movie lookup cache settings.
type CacheConfig struct {
	MovieCapacity int           `koanf:"movie_capacity"`
	MovieTTL      time.Duration `koanf:"movie_ttl"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
