// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.BigQuery.Dataset = "sports"
	cfg.BigQuery.SessionsTable = "player_training_sessions"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 3000 {
		t.Errorf("Expected default port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Expected default environment development, got %q", cfg.Server.Environment)
	}
	if cfg.Security.RateLimitWindowMS != 900000 {
		t.Errorf("Expected default window 900000ms, got %d", cfg.Security.RateLimitWindowMS)
	}
	if cfg.Security.MaxBodyBytes != 10<<20 {
		t.Errorf("Expected 10 MiB body cap, got %d", cfg.Security.MaxBodyBytes)
	}
	if cfg.BigQuery.QueryTimeout != 30*time.Second {
		t.Errorf("Expected 30s query timeout, got %v", cfg.BigQuery.QueryTimeout)
	}
	if cfg.IsProduction() {
		t.Error("Default config should not be production")
	}
}

func TestRateLimitWindowDuration(t *testing.T) {
	t.Parallel()

	sec := SecurityConfig{RateLimitWindowMS: 60000}
	if got := sec.RateLimitWindow(); got != time.Minute {
		t.Errorf("Expected 1m window, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "port",
		},
		{
			name:    "invalid environment",
			mutate:  func(c *Config) { c.Server.Environment = "staging" },
			wantErr: "environment",
		},
		{
			name:    "zero rate limit window",
			mutate:  func(c *Config) { c.Security.RateLimitWindowMS = 0 },
			wantErr: "window",
		},
		{
			name:    "zero max requests",
			mutate:  func(c *Config) { c.Security.RateLimitMaxRequests = 0 },
			wantErr: "max requests",
		},
		{
			name:    "empty origins",
			mutate:  func(c *Config) { c.Security.AllowedOrigins = nil },
			wantErr: "origins",
		},
		{
			name:    "missing dataset",
			mutate:  func(c *Config) { c.BigQuery.Dataset = "" },
			wantErr: "dataset",
		},
		{
			name:    "missing sessions table",
			mutate:  func(c *Config) { c.BigQuery.SessionsTable = "" },
			wantErr: "sessions table",
		},
		{
			name: "store disabled skips table checks",
			mutate: func(c *Config) {
				c.BigQuery.Enabled = false
				c.BigQuery.Dataset = ""
				c.BigQuery.SessionsTable = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected valid config, got error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"RATE_LIMIT_WINDOW_MS", "security.rate_limit_window_ms"},
		{"ALLOWED_ORIGINS", "security.allowed_origins"},
		{"BQ_DATASET_SPORTS", "bigquery.dataset"},
		{"BIGQUERY_PROJECT_ID", "bigquery.project_id"},
		{"GOOGLE_API_KEY", "genai.api_key"},
		{"GEMINI_API_KEY", "genai.api_key"},
		{"NODE_ENV", "server.environment"},
		{"HOME", ""}, // unrelated env vars are dropped
		{"PATH", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("BQ_DATASET_SPORTS", "sports")
	t.Setenv("BQ_TBL_PLAYER_TRAINING_SESSIONS", "player_training_sessions")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "60000")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "3")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, http://localhost:5173")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Security.RateLimitWindowMS != 60000 {
		t.Errorf("Expected window 60000, got %d", cfg.Security.RateLimitWindowMS)
	}
	if cfg.Security.RateLimitMaxRequests != 3 {
		t.Errorf("Expected max 3 requests, got %d", cfg.Security.RateLimitMaxRequests)
	}
	want := []string{"http://localhost:3000", "http://localhost:5173"}
	if len(cfg.Security.AllowedOrigins) != len(want) {
		t.Fatalf("Expected %d origins, got %v", len(want), cfg.Security.AllowedOrigins)
	}
	for i, origin := range want {
		if cfg.Security.AllowedOrigins[i] != origin {
			t.Errorf("Origin %d: expected %q, got %q", i, origin, cfg.Security.AllowedOrigins[i])
		}
	}
}

func TestLoadFailsFastOnMissingRequired(t *testing.T) {
	t.Setenv("BIGQUERY_ENABLED", "true")
	t.Setenv("BQ_DATASET_SPORTS", "")
	t.Setenv("BQ_TBL_PLAYER_TRAINING_SESSIONS", "")

	if _, err := Load(); err == nil {
		t.Fatal("Expected Load to fail when required store values are absent")
	}
}
