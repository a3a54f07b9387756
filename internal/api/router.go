// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tnslabs/sportsgate/internal/config"
	"github.com/tnslabs/sportsgate/internal/database"
	"github.com/tnslabs/sportsgate/internal/gentext"
	"github.com/tnslabs/sportsgate/internal/mockstore"
)

// NewRouter assembles the admission pipeline and route surface.
//
// Stage order is part of the contract: security headers wrap everything,
// rate limiting runs before any parsing, origin and size checks precede
// sanitization, and only sanitized, guarded requests reach handlers.
// /health and /metrics register before the rate limiter.
func NewRouter(cfg *config.Config, store database.Store, players *mockstore.Store, generator gentext.Generator) http.Handler {
	responder := NewResponder(cfg.IsProduction())
	mw := NewMiddleware(cfg.Security, cfg.IsProduction(), responder)
	h := NewHandlers(cfg, store, players, generator)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(RequestID)
	r.Use(mw.Recoverer)
	r.Use(mw.SecurityHeaders)
	r.Use(Metrics)

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Security.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
			AllowCredentials: true,
			MaxAge:           86400,
		}))
		r.Use(mw.OriginCheck)
		r.Use(mw.PayloadLimit)
		r.Use(RequestLogger)
		r.Use(mw.Sanitize)

		r.Get("/", responder.Handle(h.Root))

		r.Route("/players", func(r chi.Router) {
			r.Get("/", responder.Handle(h.ListPlayers))
			r.Get("/search", responder.Handle(h.SearchPlayers))
			r.Get("/{id}", responder.Handle(h.GetPlayer))
			r.Get("/{id}/summary", responder.Handle(h.GetPlayerSummary))
			r.Get("/{id}/sessions", responder.Handle(h.GetPlayerSessions))
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", responder.Handle(h.ListTeams))
			r.Get("/{teamId}", responder.Handle(h.GetTeam))
			r.Get("/{teamId}/players", responder.Handle(h.GetTeamMembers))
			r.Get("/{teamId}/players/search", responder.Handle(h.SearchTeamPlayers))
			r.Get("/{teamId}/players/{playerId}", responder.Handle(h.GetTeamPlayer))
		})

		r.Route("/ai", func(r chi.Router) {
			r.Get("/health", responder.Handle(h.AIHealth))
			r.Post("/generate", responder.Handle(h.GenerateText))
		})
	})

	r.NotFound(h.NotFound)

	return r
}
