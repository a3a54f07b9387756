// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

// Package config provides layered configuration for Sportsgate using Koanf v2.
//
// Configuration is loaded from three sources (highest priority wins):
//  1. Environment variables
//  2. Optional YAML config file (config.yaml or CONFIG_PATH)
//  3. Built-in defaults
//
// The loaded configuration is validated at startup; the process fails fast
// when required values are absent or malformed.
package config

import (
	"time"
)

// Config is the process-wide configuration, loaded once at boot and never
// mutated afterwards.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	BigQuery BigQueryConfig `koanf:"bigquery"`
	Security SecurityConfig `koanf:"security"`
	GenAI    GenAIConfig    `koanf:"genai"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the TCP port the HTTP server listens on.
	Port int `koanf:"port"`

	// Host is the listen address.
	Host string `koanf:"host"`

	// Timeout bounds read/write on the HTTP server.
	Timeout time.Duration `koanf:"timeout"`

	// Environment is the deployment environment: development, production, test.
	Environment string `koanf:"environment"`
}

// BigQueryConfig holds analytical store settings. Table identifiers are
// trusted configuration: they are the only values ever interpolated into
// SQL text.
type BigQueryConfig struct {
	// Enabled toggles the live analytical store. When false the gateway
	// serves mock-data endpoints only.
	Enabled bool `koanf:"enabled"`

	// ProjectID is the GCP project owning the dataset. Optional; when empty
	// the client falls back to ambient credentials' default project.
	ProjectID string `koanf:"project_id"`

	// Location is the dataset location (e.g. "US", "EU").
	Location string `koanf:"location"`

	// Dataset is the sports analytics dataset name.
	Dataset string `koanf:"dataset"`

	// SessionsTable holds per-player training session rows.
	SessionsTable string `koanf:"sessions_table"`

	// PlayersTable holds team roster rows.
	PlayersTable string `koanf:"players_table"`

	// TeamsTable holds team rows.
	TeamsTable string `koanf:"teams_table"`

	// MaxBytesBilled is the per-query billing ceiling.
	MaxBytesBilled int64 `koanf:"max_bytes_billed"`

	// QueryTimeout bounds a single query execution.
	QueryTimeout time.Duration `koanf:"query_timeout"`

	// QueriesPerSecond throttles outbound query submission. 0 disables.
	QueriesPerSecond float64 `koanf:"queries_per_second"`
}

// SecurityConfig holds admission-control settings.
type SecurityConfig struct {
	// RateLimitWindowMS is the fixed rate-limit window in milliseconds.
	RateLimitWindowMS int64 `koanf:"rate_limit_window_ms"`

	// RateLimitMaxRequests is the per-client request budget per window.
	RateLimitMaxRequests int `koanf:"rate_limit_max_requests"`

	// AllowedOrigins is the browser origin allow-list. "*" allows all.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// MaxBodyBytes caps the declared request body size.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// RateLimitWindow returns the rate-limit window as a duration.
func (s SecurityConfig) RateLimitWindow() time.Duration {
	return time.Duration(s.RateLimitWindowMS) * time.Millisecond
}

// GenAIConfig holds the generative text service settings.
type GenAIConfig struct {
	// APIKey is the Gemini API credential. Optional; AI routes report
	// unavailable without it.
	APIKey string `koanf:"api_key"`

	// Model is the default generation model.
	Model string `koanf:"model"`

	// Timeout bounds a single generation call.
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// IsProduction reports whether the deployment environment is production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// defaultConfig returns a Config with all default values. These are applied
// first, then overridden by config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        3000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		BigQuery: BigQueryConfig{
			Enabled:          true,
			ProjectID:        "",
			Location:         "US",
			Dataset:          "",
			SessionsTable:    "player_training_sessions",
			PlayersTable:     "players",
			TeamsTable:       "teams",
			MaxBytesBilled:   1 << 30, // 1 GiB
			QueryTimeout:     30 * time.Second,
			QueriesPerSecond: 10,
		},
		Security: SecurityConfig{
			RateLimitWindowMS:    900000, // 15 minutes
			RateLimitMaxRequests: 100,
			AllowedOrigins:       []string{"http://localhost:3000", "http://localhost:5173"},
			MaxBodyBytes:         10 << 20, // 10 MiB
		},
		GenAI: GenAIConfig{
			APIKey:  "",
			Model:   "gemini-2.5-flash",
			Timeout: 60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
