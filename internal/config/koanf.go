// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/sportsgate/config.yaml",
	"/etc/sportsgate/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if present)
//  3. Environment variables: override any setting
//
// The result is validated; an invalid configuration is an error so the
// process can fail fast at boot.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Environment variables have the highest priority. Names are mapped to
	// koanf paths via envTransformFunc (RATE_LIMIT_WINDOW_MS ->
	// security.rate_limit_window_ms).
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps flat environment variable names to koanf paths.
// Unrecognized variables are dropped so unrelated process environment does
// not leak into the configuration.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server
		"port":        "server.port",
		"server_port": "server.port",
		"server_host": "server.host",
		"environment": "server.environment",
		"node_env":    "server.environment",

		// BigQuery analytical store
		"bigquery_enabled":                "bigquery.enabled",
		"bigquery_project_id":             "bigquery.project_id",
		"gcp_project_id":                  "bigquery.project_id",
		"bigquery_location":               "bigquery.location",
		"bq_dataset_sports":               "bigquery.dataset",
		"bq_tbl_player_training_sessions": "bigquery.sessions_table",
		"bq_tbl_players":                  "bigquery.players_table",
		"bq_tbl_teams":                    "bigquery.teams_table",
		"bq_max_bytes_billed":             "bigquery.max_bytes_billed",
		"bq_query_timeout":                "bigquery.query_timeout",
		"bq_queries_per_second":           "bigquery.queries_per_second",

		// Security
		"rate_limit_window_ms":    "security.rate_limit_window_ms",
		"rate_limit_max_requests": "security.rate_limit_max_requests",
		"allowed_origins":         "security.allowed_origins",
		"max_body_bytes":          "security.max_body_bytes",

		// Generative AI
		"google_api_key": "genai.api_key",
		"gemini_api_key": "genai.api_key",
		"genai_model":    "genai.model",
		"genai_timeout":  "genai.timeout",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

// processSliceFields converts comma-separated string values into slices for
// fields declared as []string. Environment variables carry lists as
// "a,b,c" (ALLOWED_ORIGINS=http://localhost:3000,*).
func processSliceFields(k *koanf.Koanf) error {
	sliceFields := []string{
		"security.allowed_origins",
	}

	for _, field := range sliceFields {
		raw := k.Get(field)
		s, ok := raw.(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				values = append(values, trimmed)
			}
		}
		if err := k.Set(field, values); err != nil {
			return fmt.Errorf("failed to set %s: %w", field, err)
		}
	}

	return nil
}
