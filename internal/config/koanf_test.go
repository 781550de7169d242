// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Ingest.MaxDuration != 600 {
		t.Errorf("Ingest.MaxDuration = %d, want 600", cfg.Ingest.MaxDuration)
	}
	if cfg.Ingest.WritesPerSecond != 0 {
		t.Errorf("Ingest.WritesPerSecond = %v, want 0 (unlimited)", cfg.Ingest.WritesPerSecond)
	}
	if cfg.Security.SessionTimeout != 7*24*time.Hour {
		t.Errorf("Security.SessionTimeout = %v, want 168h", cfg.Security.SessionTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"INGEST_MAX_DURATION", "ingest.max_duration"},
		{"INGEST_WRITES_PER_SECOND", "ingest.writes_per_second"},
		{"BADGER_PATH", "database.path"},
		{"LOG_LEVEL", "logging.level"},
		{"HOME", ""},
		{"RANDOM_UNMAPPED", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("CONFIG_PATH points at an existing file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(path, []byte("server:\n  port: 1\n"), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		t.Setenv(ConfigPathEnvVar, path)

		if got := findConfigFile(); got != path {
			t.Errorf("findConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("CONFIG_PATH points at a missing file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(tmpDir, "missing.yaml"))

		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty", got)
		}
	})
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("INGEST_MAX_DURATION", "240")
	t.Setenv("INGEST_BREAKER_TIMEOUT", "1m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Ingest.MaxDuration != 240 {
		t.Errorf("Ingest.MaxDuration = %d, want 240", cfg.Ingest.MaxDuration)
	}
	if cfg.Ingest.BreakerTimeout != time.Minute {
		t.Errorf("Ingest.BreakerTimeout = %v, want 1m", cfg.Ingest.BreakerTimeout)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Security.CORSOrigins = %v, want two trimmed origins", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 8888
ingest:
  max_duration: 300
  max_batch_size: 50
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("INGEST_MAX_DURATION", "420")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Ingest.MaxBatchSize != 50 {
		t.Errorf("Ingest.MaxBatchSize = %d, want 50 (from file)", cfg.Ingest.MaxBatchSize)
	}
	if cfg.Ingest.MaxDuration != 420 {
		t.Errorf("Ingest.MaxDuration = %d, want 420 (env beats file)", cfg.Ingest.MaxDuration)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Ingest.RecentFailures != 50 {
		t.Errorf("Ingest.RecentFailures = %d, want default 50", cfg.Ingest.RecentFailures)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"zero max duration", func(c *Config) { c.Ingest.MaxDuration = 0 }, "INGEST_MAX_DURATION"},
		{"negative batch size", func(c *Config) { c.Ingest.MaxBatchSize = -1 }, "INGEST_MAX_BATCH_SIZE"},
		{"paced writes without burst", func(c *Config) {
			c.Ingest.WritesPerSecond = 10
			c.Ingest.WriteBurst = 0
		}, "INGEST_WRITE_BURST"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"production without secret", func(c *Config) { c.Server.Environment = "production" }, "JWT_SECRET is required"},
		{"production with short secret", func(c *Config) {
			c.Server.Environment = "production"
			c.Security.JWTSecret = "short"
		}, "at least 32 characters"},
		{"production with wildcard cors", func(c *Config) {
			c.Server.Environment = "production"
			c.Security.JWTSecret = strings.Repeat("k", 40)
			c.Security.CORSOrigins = []string{"*"}
		}, "CORS_ORIGINS"},
		{"admin password without username", func(c *Config) { c.Security.AdminPassword = "supersecret" }, "ADMIN_USERNAME"},
		{"admin password too short", func(c *Config) {
			c.Security.AdminUsername = "admin"
			c.Security.AdminPassword = "short"
		}, "at least 8"},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"in-memory needs no path", func(c *Config) {
			c.Database.InMemory = true
			c.Database.Path = ""
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
