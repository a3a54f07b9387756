// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/tnslabs/sportsgate/internal/validation"
)

// Route inputs are bound into declarative structs and validated as a whole,
// so a request with several problems reports every violation at once.
// String query values coerce to ints before range checks; coercion failures
// join the same violation list.

// sessionQuery is the query surface of GET /players/{id}/sessions.
type sessionQuery struct {
	Start  string `json:"start" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	End    string `json:"end" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Limit  int    `json:"limit" validate:"min=1,max=1000"`
	Offset int    `json:"offset" validate:"min=0"`
}

// teamSearchQuery is the query surface of GET /teams/{teamId}/players/search.
type teamSearchQuery struct {
	Query  string `json:"query" validate:"omitempty,max=100"`
	Role   string `json:"role" validate:"omitempty,max=50"`
	Status string `json:"status" validate:"omitempty,max=50"`
	Limit  int    `json:"limit" validate:"min=1,max=100"`
	Offset int    `json:"offset" validate:"min=0"`
}

// idParam is a single path identifier.
type idParam struct {
	ID string `json:"id" validate:"required,max=50,resourceid"`
}

// teamPlayerParams is the path surface of /teams/{teamId}/players/{playerId}.
type teamPlayerParams struct {
	TeamID   string `json:"teamId" validate:"required,max=50,resourceid"`
	PlayerID string `json:"playerId" validate:"required,max=50,resourceid"`
}

// generateRequest is the body surface of POST /ai/generate.
type generateRequest struct {
	Prompt          string   `json:"prompt" validate:"required,max=10000"`
	Model           string   `json:"model" validate:"omitempty,max=100"`
	Temperature     *float32 `json:"temperature" validate:"omitempty,gte=0,lte=2"`
	MaxOutputTokens int32    `json:"maxOutputTokens" validate:"omitempty,gte=1,lte=8192"`
	TopP            *float32 `json:"topP" validate:"omitempty,gte=0,lte=1"`
	TopK            *float32 `json:"topK" validate:"omitempty,gte=1,lte=100"`
}

// queryInt coerces an optional integer query value, recording a violation
// on malformed input and returning the default so later range checks still
// run against a concrete value.
func queryInt(q url.Values, name string, def int, violations *validation.Violations) int {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*violations = append(*violations, validation.Violation{
			Path:     name,
			Message:  name + " must be an integer",
			Received: raw,
		})
		return def
	}
	return n
}

func bindSessionQuery(r *http.Request) (sessionQuery, error) {
	q := SanitizedQuery(r)

	var coercion validation.Violations
	sq := sessionQuery{
		Start:  strings.TrimSpace(q.Get("start")),
		End:    strings.TrimSpace(q.Get("end")),
		Limit:  queryInt(q, "limit", 100, &coercion),
		Offset: queryInt(q, "offset", 0, &coercion),
	}

	violations := append(coercion, validation.Struct(sq)...)
	if len(violations) > 0 {
		return sessionQuery{}, ErrValidation(violations)
	}
	return sq, nil
}

func bindTeamSearchQuery(r *http.Request) (teamSearchQuery, error) {
	q := SanitizedQuery(r)

	var coercion validation.Violations
	ts := teamSearchQuery{
		Query:  strings.TrimSpace(q.Get("query")),
		Role:   strings.TrimSpace(q.Get("role")),
		Status: strings.TrimSpace(q.Get("status")),
		Limit:  queryInt(q, "limit", 50, &coercion),
		Offset: queryInt(q, "offset", 0, &coercion),
	}

	violations := append(coercion, validation.Struct(ts)...)
	if len(violations) > 0 {
		return teamSearchQuery{}, ErrValidation(violations)
	}
	return ts, nil
}

// bindIDParam validates a path identifier against the resource-id pattern.
func bindIDParam(r *http.Request, name string) (string, error) {
	id := chi.URLParam(r, name)
	if violations := validation.Struct(idParam{ID: id}); len(violations) > 0 {
		for i := range violations {
			violations[i].Path = name
		}
		return "", ErrValidation(violations)
	}
	return id, nil
}

func bindTeamPlayerParams(r *http.Request) (teamPlayerParams, error) {
	p := teamPlayerParams{
		TeamID:   chi.URLParam(r, "teamId"),
		PlayerID: chi.URLParam(r, "playerId"),
	}
	if violations := validation.Struct(p); len(violations) > 0 {
		return teamPlayerParams{}, ErrValidation(violations)
	}
	return p, nil
}

// decodeBody decodes the sanitized JSON body into dst, then validates it.
func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrValidation(invalidJSONViolation())
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return ErrValidation(invalidJSONViolation())
	}
	if violations := validation.Struct(dst); len(violations) > 0 {
		return ErrValidation(violations)
	}
	return nil
}

func invalidJSONViolation() validation.Violations {
	return validation.Violations{{Path: "body", Message: "body must be valid JSON"}}
}
