// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

// Command server runs the Sportsgate HTTP gateway.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tnslabs/sportsgate/internal/api"
	"github.com/tnslabs/sportsgate/internal/config"
	"github.com/tnslabs/sportsgate/internal/database"
	"github.com/tnslabs/sportsgate/internal/gentext"
	"github.com/tnslabs/sportsgate/internal/logging"
	"github.com/tnslabs/sportsgate/internal/mockstore"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store database.Store
	if cfg.BigQuery.Enabled {
		bq, err := database.NewBigQueryStore(ctx, cfg.BigQuery)
		if err != nil {
			return fmt.Errorf("connecting analytical store: %w", err)
		}
		defer func() {
			if err := bq.Close(); err != nil {
				logging.Warn().Err(err).Msg("closing analytical store")
			}
		}()
		store = bq
		logging.Info().
			Str("project", cfg.BigQuery.ProjectID).
			Str("dataset", cfg.BigQuery.Dataset).
			Msg("analytical store configured")
	} else {
		logging.Warn().Msg("analytical store disabled; live endpoints will answer 503")
	}

	var generator gentext.Generator
	if cfg.GenAI.APIKey != "" {
		svc, err := gentext.New(ctx, cfg.GenAI)
		if err != nil {
			return fmt.Errorf("creating text generator: %w", err)
		}
		generator = svc
		logging.Info().Str("model", cfg.GenAI.Model).Msg("text generation configured")
	} else {
		logging.Warn().Msg("no generative API key; AI endpoints will answer 503")
	}

	router := api.NewRouter(cfg, store, mockstore.New(), generator)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().
			Str("addr", srv.Addr).
			Str("environment", cfg.Server.Environment).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	logging.Info().Msg("server stopped")
	return nil
}
