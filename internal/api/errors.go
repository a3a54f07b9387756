// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/tnslabs/sportsgate/internal/logging"
	"github.com/tnslabs/sportsgate/internal/validation"
)

// Kind classifies a request failure. Each kind maps to exactly one status
// code and one message-shaping rule.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindQueryConstraint
	KindOriginNotAllowed
	KindPayloadTooLarge
	KindRateLimited
	KindUpstream
	KindNotFound
	KindUnavailable
)

// Error is a classified request failure. Message is client-facing; Err
// carries the underlying cause for server-side logs only.
type Error struct {
	Kind    Kind
	Message string
	Details interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindQueryConstraint:
		return http.StatusBadRequest
	case KindOriginNotAllowed:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrValidation wraps collected violations as a 400 with per-field detail.
func ErrValidation(violations validation.Violations) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "Validation failed",
		Details: violations,
	}
}

// ErrQueryConstraint rejects input matching injection patterns. The message
// is deliberately generic; matched pattern detail stays server-side.
func ErrQueryConstraint() *Error {
	return &Error{
		Kind:    KindQueryConstraint,
		Message: "Invalid characters detected in request",
	}
}

// ErrOriginNotAllowed rejects a disallowed Origin header.
func ErrOriginNotAllowed() *Error {
	return &Error{
		Kind:    KindOriginNotAllowed,
		Message: "Origin not allowed",
	}
}

// ErrPayloadTooLarge rejects an oversized request, echoing the cap.
func ErrPayloadTooLarge(capBytes int64) *Error {
	return &Error{
		Kind:    KindPayloadTooLarge,
		Message: "Request entity too large",
		Details: map[string]string{
			"maxSize": fmt.Sprintf("%dMB", capBytes/(1024*1024)),
		},
	}
}

// ErrRateLimited rejects a client over its window budget.
func ErrRateLimited(retryAfterMinutes int) *Error {
	return &Error{
		Kind:    KindRateLimited,
		Message: "Too many requests from this IP, please try again later.",
		Details: map[string]int{"retryAfter": retryAfterMinutes},
	}
}

// ErrUpstream classifies an analytical store failure. Detail is shown to
// clients only outside production.
func ErrUpstream(err error) *Error {
	return &Error{
		Kind:    KindUpstream,
		Message: "Database query failed",
		Err:     err,
	}
}

// ErrNotFound names the missing resource type.
func ErrNotFound(resource string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// ErrUnavailable reports a dependent service as unhealthy.
func ErrUnavailable(service string, err error) *Error {
	return &Error{
		Kind:    KindUnavailable,
		Message: service + " is unhealthy",
		Err:     err,
	}
}

// ErrInternal classifies anything else.
func ErrInternal(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: "An internal error occurred",
		Err:     err,
	}
}

// HandlerFunc is a route handler that reports failure by returning an error
// instead of writing its own error response.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Responder is the single terminal error handler. Exactly one instance
// exists per process; every failure funnels through it.
type Responder struct {
	production bool
}

// NewResponder creates the terminal responder. In production, internal and
// upstream detail is suppressed from response bodies.
func NewResponder(production bool) *Responder {
	return &Responder{production: production}
}

// Handle adapts a HandlerFunc into an http.HandlerFunc, routing any
// returned error through the terminal classifier.
func (rp *Responder) Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			rp.WriteError(w, r, err)
		}
	}
}

// WriteError classifies err and writes the matching envelope. Full detail
// is always logged server-side; the client sees only what the kind's
// shaping rule permits.
func (rp *Responder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := classify(err)

	logging.Ctx(r.Context()).Warn().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("ip", clientIP(r)).
		Int("status", apiErr.Status()).
		Msg("request rejected")

	env := Envelope{
		Success: false,
		Message: apiErr.Message,
		Error:   apiErr.Message,
		Details: apiErr.Details,
	}

	switch apiErr.Kind {
	case KindUpstream:
		if !rp.production && apiErr.Err != nil {
			env.Details = apiErr.Err.Error()
		}
	case KindInternal:
		if !rp.production && apiErr.Err != nil {
			env.Error = apiErr.Err.Error()
			env.Message = apiErr.Err.Error()
		}
	}

	writeJSON(w, apiErr.Status(), env)
}

func classify(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var violations validation.Violations
	if errors.As(err, &violations) {
		return ErrValidation(violations)
	}
	return ErrInternal(err)
}

// clientIP returns the trusted client address without the port. chi's RealIP
// middleware has already folded X-Forwarded-For/X-Real-IP into RemoteAddr;
// those values carry no port and pass through unchanged.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
