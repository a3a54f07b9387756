// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tnslabs/sportsgate/internal/config"
	"github.com/tnslabs/sportsgate/internal/database"
	"github.com/tnslabs/sportsgate/internal/database/query"
	"github.com/tnslabs/sportsgate/internal/gentext"
	"github.com/tnslabs/sportsgate/internal/logging"
	"github.com/tnslabs/sportsgate/internal/mockstore"
	"github.com/tnslabs/sportsgate/internal/models"
)

// Handlers serves the route surface. The analytical store and text
// generator are optional; routes depending on an absent collaborator
// answer 503.
type Handlers struct {
	cfg       *config.Config
	store     database.Store
	players   *mockstore.Store
	generator gentext.Generator
	startedAt time.Time

	sessionsTable string
	playersTable  string
	teamsTable    string
}

// NewHandlers wires the route handlers to their collaborators.
func NewHandlers(cfg *config.Config, store database.Store, players *mockstore.Store, generator gentext.Generator) *Handlers {
	h := &Handlers{
		cfg:       cfg,
		store:     store,
		players:   players,
		generator: generator,
		startedAt: time.Now(),
	}
	if cfg.BigQuery.Enabled {
		bq := cfg.BigQuery
		h.sessionsTable = query.TableRef(bq.ProjectID, bq.Dataset, bq.SessionsTable)
		h.playersTable = query.TableRef(bq.ProjectID, bq.Dataset, bq.PlayersTable)
		h.teamsTable = query.TableRef(bq.ProjectID, bq.Dataset, bq.TeamsTable)
	}
	return h
}

// Health reports process liveness. Registered before the rate limiter so
// orchestration probes are never throttled.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: "healthy",
		Data: models.HealthStatus{
			Status:      "healthy",
			Environment: h.cfg.Server.Environment,
			Uptime:      time.Since(h.startedAt).Seconds(),
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// Root serves the service banner.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) error {
	logging.Ctx(r.Context()).Info().Str("ip", clientIP(r)).Msg("home route accessed")

	windowMinutes := h.cfg.Security.RateLimitWindow().Minutes()
	WriteSuccess(w, "Sportsgate API running", map[string]interface{}{
		"version":     "1.0.0",
		"environment": h.cfg.Server.Environment,
		"security": map[string]string{
			"rateLimit": fmt.Sprintf("%d requests per %.0f minutes",
				h.cfg.Security.RateLimitMaxRequests, windowMinutes),
			"cors":       "enabled",
			"validation": "enabled",
		},
	})
	return nil
}

// NotFound answers unmatched routes through the envelope.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	logging.Ctx(r.Context()).Warn().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("ip", clientIP(r)).
		Msg("route not found")

	writeJSON(w, http.StatusNotFound, Envelope{
		Success: false,
		Message: "Route not found",
		Error:   "Route not found",
		Details: map[string]string{"path": r.URL.Path},
	})
}

// requireStore gates live-store routes when the analytical store is not
// configured.
func (h *Handlers) requireStore() error {
	if h.store == nil {
		return &Error{Kind: KindUnavailable, Message: "Analytical store is not configured"}
	}
	return nil
}
