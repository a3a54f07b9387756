// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for invalid or missing values.
// It returns an error describing the first problem found; the caller is
// expected to treat any error as fatal at boot.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Server.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("environment must be development, production, or test, got %q", c.Server.Environment)
	}

	if c.Security.RateLimitWindowMS <= 0 {
		return errors.New("rate limit window must be positive")
	}
	if c.Security.RateLimitMaxRequests <= 0 {
		return errors.New("rate limit max requests must be positive")
	}
	if c.Security.MaxBodyBytes <= 0 {
		return errors.New("max body bytes must be positive")
	}
	if len(c.Security.AllowedOrigins) == 0 {
		return errors.New("allowed origins must not be empty")
	}

	if c.BigQuery.Enabled {
		if c.BigQuery.Dataset == "" {
			return errors.New("bigquery dataset is required when the analytical store is enabled")
		}
		if c.BigQuery.SessionsTable == "" {
			return errors.New("bigquery sessions table is required when the analytical store is enabled")
		}
		if c.BigQuery.PlayersTable == "" {
			return errors.New("bigquery players table is required when the analytical store is enabled")
		}
		if c.BigQuery.TeamsTable == "" {
			return errors.New("bigquery teams table is required when the analytical store is enabled")
		}
		if c.BigQuery.MaxBytesBilled <= 0 {
			return errors.New("bigquery max bytes billed must be positive")
		}
		if c.BigQuery.QueryTimeout <= 0 {
			return errors.New("bigquery query timeout must be positive")
		}
	}

	return nil
}
