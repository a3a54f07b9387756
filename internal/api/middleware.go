// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/tnslabs/sportsgate/internal/config"
	"github.com/tnslabs/sportsgate/internal/logging"
	"github.com/tnslabs/sportsgate/internal/metrics"
	"github.com/tnslabs/sportsgate/internal/ratelimit"
	"github.com/tnslabs/sportsgate/internal/sanitize"
)

type contextKey string

const (
	sanitizedQueryKey contextKey = "sanitizedQuery"
	sanitizedBodyKey  contextKey = "sanitizedBody"
)

// SanitizedQuery returns the request's sanitized query values. Available
// after the sanitize stage; falls back to the raw query before it.
func SanitizedQuery(r *http.Request) url.Values {
	if q, ok := r.Context().Value(sanitizedQueryKey).(url.Values); ok {
		return q
	}
	return r.URL.Query()
}

// SanitizedBody returns the request's sanitized, decoded JSON body, or nil
// when the request carried none.
func SanitizedBody(r *http.Request) interface{} {
	return r.Context().Value(sanitizedBodyKey)
}

// Middleware bundles the admission pipeline stages. One instance is built
// at startup from process-wide configuration.
type Middleware struct {
	responder  *Responder
	limiter    *ratelimit.Limiter
	origins    []string
	maxBody    int64
	production bool
}

// NewMiddleware creates the pipeline stages from configuration.
func NewMiddleware(cfg config.SecurityConfig, production bool, responder *Responder) *Middleware {
	window := cfg.RateLimitWindow()
	return &Middleware{
		responder:  responder,
		limiter:    ratelimit.NewLimiter(ratelimit.NewMemoryStore(window), cfg.RateLimitMaxRequests, window),
		origins:    cfg.AllowedOrigins,
		maxBody:    cfg.MaxBodyBytes,
		production: production,
	}
}

// SecurityHeaders sets framing and sniffing protections on every response.
// HSTS is added only in production over a secure channel.
func (m *Middleware) SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if m.production && secureRequest(r) {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

func secureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// RateLimit admits at most the configured number of requests per client IP
// per fixed window. Requests are counted at admission, not completion.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := m.limiter.Allow(clientIP(r))
		if !res.Allowed {
			metrics.RateLimitRejections.Inc()
			logging.Ctx(r.Context()).Warn().
				Str("ip", clientIP(r)).
				Str("path", r.URL.Path).
				Str("user_agent", r.UserAgent()).
				Msg("rate limit exceeded")
			m.responder.WriteError(w, r, ErrRateLimited(res.RetryAfterMinutes))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// OriginCheck rejects requests whose Origin header is not on the allow-list.
// Requests without an Origin header (non-browser clients) always pass. A
// "*" entry allows every origin.
func (m *Middleware) OriginCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" || m.originAllowed(origin) {
			next.ServeHTTP(w, r)
			return
		}

		metrics.OriginRejections.Inc()
		logging.Ctx(r.Context()).Warn().
			Str("origin", origin).
			Strs("allowed_origins", m.origins).
			Str("path", r.URL.Path).
			Msg("origin blocked")
		m.responder.WriteError(w, r, ErrOriginNotAllowed())
	})
}

func (m *Middleware) originAllowed(origin string) bool {
	for _, allowed := range m.origins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// PayloadLimit rejects requests whose declared Content-Length exceeds the
// cap, before any body is read. Bodies without a declared length are capped
// at read time via MaxBytesReader.
func (m *Middleware) PayloadLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > m.maxBody {
			metrics.PayloadSizeRejections.Inc()
			logging.Ctx(r.Context()).Warn().
				Str("ip", clientIP(r)).
				Int64("size", r.ContentLength).
				Int64("max_size", m.maxBody).
				Msg("request size limit exceeded")
			m.responder.WriteError(w, r, ErrPayloadTooLarge(m.maxBody))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, m.maxBody)
		next.ServeHTTP(w, r)
	})
}

// Sanitize rewrites every string leaf of the query and JSON body, stripping
// markup and quote characters, then screens the result for injection
// patterns. A match rejects the whole request; the offending section is
// logged server-side only.
func (m *Middleware) Sanitize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		cleanQuery := sanitize.Values(r.URL.Query())
		ctx = context.WithValue(ctx, sanitizedQueryKey, cleanQuery)

		if sanitize.MatchValues(cleanQuery) {
			metrics.InjectionGuardRejections.WithLabelValues("query").Inc()
			logging.Ctx(ctx).Warn().
				Str("ip", clientIP(r)).
				Str("path", r.URL.Path).
				Interface("query", cleanQuery).
				Msg("potential SQL injection attempt in query")
			m.responder.WriteError(w, r.WithContext(ctx), ErrQueryConstraint())
			return
		}

		if hasJSONBody(r) {
			raw, err := io.ReadAll(r.Body)
			if err != nil {
				m.responder.WriteError(w, r.WithContext(ctx), ErrPayloadTooLarge(m.maxBody))
				return
			}
			if len(bytes.TrimSpace(raw)) > 0 {
				var body interface{}
				if err := json.Unmarshal(raw, &body); err != nil {
					violations := invalidJSONViolation()
					m.responder.WriteError(w, r.WithContext(ctx), ErrValidation(violations))
					return
				}
				clean := sanitize.Value(body)

				if sanitize.MatchValue(clean) {
					metrics.InjectionGuardRejections.WithLabelValues("body").Inc()
					logging.Ctx(ctx).Warn().
						Str("ip", clientIP(r)).
						Str("path", r.URL.Path).
						Interface("body", clean).
						Msg("potential SQL injection attempt in body")
					m.responder.WriteError(w, r.WithContext(ctx), ErrQueryConstraint())
					return
				}

				ctx = context.WithValue(ctx, sanitizedBodyKey, clean)
				encoded, err := json.Marshal(clean)
				if err != nil {
					m.responder.WriteError(w, r.WithContext(ctx), ErrInternal(err))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(encoded))
				r.ContentLength = int64(len(encoded))
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// hasJSONBody reports whether the request carries a body the sanitizer must
// process. The declared Content-Type is deliberately ignored: every handler
// decodes bodies as JSON, so a mislabeled body must not slip past the guard.
func hasJSONBody(r *http.Request) bool {
	return r.Body != nil && r.Method != http.MethodGet && r.Method != http.MethodHead
}
