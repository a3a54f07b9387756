// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tnslabs/sportsgate/internal/database"
	"github.com/tnslabs/sportsgate/internal/gentext"
	"github.com/tnslabs/sportsgate/internal/mockstore"
)

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(testConfig())

	w := env.do(http.MethodGet, "/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	envl := decodeEnvelope(t, w)
	if !envl.Success {
		t.Error("health must report success")
	}
	data, _ := envl.Data.(map[string]interface{})
	if data["status"] != "healthy" || data["environment"] != "test" {
		t.Errorf("unexpected health payload: %v", envl.Data)
	}
}

func TestListPlayersMock(t *testing.T) {
	env := newTestEnv(testConfig())

	w := env.do(http.MethodGet, "/players", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	envl := decodeEnvelope(t, w)
	if envl.Count == nil || *envl.Count == 0 {
		t.Error("player list should carry a count")
	}
}

func TestGetPlayerByID(t *testing.T) {
	env := newTestEnv(testConfig())

	w := env.do(http.MethodGet, "/players/player-001", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do(http.MethodGet, "/players/player-999", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown player: expected 404, got %d", w.Code)
	}
	envl := decodeEnvelope(t, w)
	if envl.Message != "Player not found" {
		t.Errorf("404 should name the resource, got %q", envl.Message)
	}
}

func TestGetPlayerRejectsMalformedID(t *testing.T) {
	env := newTestEnv(testConfig())

	// Percent-encoded so the ID reaches routing as one segment.
	w := env.do(http.MethodGet, "/players/bad%20id%21", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPlayerSummary(t *testing.T) {
	env := newTestEnv(testConfig())

	w := env.do(http.MethodGet, "/players/player-001/summary", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, key := range []string{"currentStatus", "recentPerformance", "weeklyOverview"} {
		if !strings.Contains(body, key) {
			t.Errorf("summary missing %s block: %s", key, body)
		}
	}
}

func TestSessionQueryValidation(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantInBody string
	}{
		{"defaults applied", "/players/player-001/sessions", http.StatusOK, `"limit":100`},
		{"limit zero rejected", "/players/player-001/sessions?limit=0", http.StatusBadRequest, `"limit"`},
		{"limit above cap rejected", "/players/player-001/sessions?limit=5000", http.StatusBadRequest, `"limit"`},
		{"limit huge rejected", "/players/player-001/sessions?limit=99999", http.StatusBadRequest, `"limit"`},
		{"limit non-integer rejected", "/players/player-001/sessions?limit=abc", http.StatusBadRequest, `"limit"`},
		{"negative offset rejected", "/players/player-001/sessions?offset=-1", http.StatusBadRequest, `"offset"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(testConfig())
			w := env.do(http.MethodGet, tt.target, nil, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.wantInBody) {
				t.Errorf("body should contain %s: %s", tt.wantInBody, w.Body.String())
			}
		})
	}
}

func TestSessionValidationCollectsAllViolations(t *testing.T) {
	env := newTestEnv(testConfig())

	w := env.do(http.MethodGet, "/players/player-001/sessions?limit=5000&offset=-2", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"limit"`) || !strings.Contains(body, `"offset"`) {
		t.Errorf("all violations should be reported together: %s", body)
	}
}

func TestPlayerSessionsQueriesStore(t *testing.T) {
	env := newTestEnv(testConfig())
	env.store.queryFn = func(sql string, params map[string]interface{}) ([]database.Row, error) {
		return []database.Row{{
			"player_id":       "player-001",
			"training_id":     "t-1",
			"duration_ms":     int64(5400000),
			"distance_meters": 8421.5,
			"start_time":      "2026-08-20T18:00:00Z",
		}}, nil
	}

	w := env.do(http.MethodGet, "/players/player-001/sessions?limit=25&offset=5", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if len(env.store.queries) != 1 {
		t.Fatalf("expected one query, got %d", len(env.store.queries))
	}
	sql := env.store.queries[0]
	if !strings.Contains(sql, "player_id = @playerId") {
		t.Errorf("query should filter by named parameter: %s", sql)
	}
	if !strings.Contains(sql, "LIMIT @limit OFFSET @offset") {
		t.Errorf("pagination should use named parameters: %s", sql)
	}
	if strings.Contains(sql, "player-001") {
		t.Errorf("user values must never appear in SQL text: %s", sql)
	}
	if !strings.Contains(sql, "`proj.sports_data.player_training_sessions`") {
		t.Errorf("table reference should be quoted from config: %s", sql)
	}

	body := w.Body.String()
	for _, want := range []string{`"limit":25`, `"offset":5`, `"count":1`, `"hasMore":false`} {
		if !strings.Contains(body, want) {
			t.Errorf("pagination block missing %s: %s", want, body)
		}
	}

	// A full page signals that more rows may follow.
	w = env.do(http.MethodGet, "/players/player-001/sessions?limit=1", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"hasMore":true`) {
		t.Errorf("full page should report hasMore=true: %s", w.Body.String())
	}
}

func TestTeamSearchPagination(t *testing.T) {
	env := newTestEnv(testConfig())
	env.store.queryFn = func(sql string, params map[string]interface{}) ([]database.Row, error) {
		if strings.Contains(sql, "COUNT(*)") {
			return []database.Row{{"total": int64(12)}}, nil
		}
		rows := make([]database.Row, 5)
		for i := range rows {
			rows[i] = database.Row{
				"team_id":       "team-1",
				"player_id":     "p",
				"player_number": int64(i + 1),
				"first_name":    "A",
				"last_name":     "B",
				"role":          "Forward",
				"status":        "active",
			}
		}
		return rows, nil
	}

	w := env.do(http.MethodGet, "/teams/team-1/players/search?query=silva&limit=5&offset=0", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	if !strings.Contains(body, `"total":12`) {
		t.Errorf("pagination should report the count query total: %s", body)
	}
	if !strings.Contains(body, `"hasMore":true`) {
		t.Errorf("offset 0 + 5 returned < 12 total should mean hasMore: %s", body)
	}

	if len(env.store.queries) != 2 {
		t.Fatalf("expected data + count queries, got %d", len(env.store.queries))
	}
	countSQL := env.store.queries[1]
	if strings.Contains(countSQL, "LIMIT") {
		t.Errorf("count query must not paginate: %s", countSQL)
	}
	if !strings.Contains(countSQL, "LOWER(first_name) LIKE LOWER(@searchQuery)") {
		t.Errorf("count query must reuse the search filter: %s", countSQL)
	}
}

func TestTeamSearchLimitCap(t *testing.T) {
	env := newTestEnv(testConfig())

	w := env.do(http.MethodGet, "/teams/team-1/players/search?limit=500", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("team search limit caps at 100: expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"limit"`) {
		t.Errorf("violation should name limit: %s", w.Body.String())
	}
}

func TestGetTeamNotFound(t *testing.T) {
	env := newTestEnv(testConfig())
	env.store.queryFn = func(string, map[string]interface{}) ([]database.Row, error) {
		return nil, nil
	}

	w := env.do(http.MethodGet, "/teams/team-404", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	envl := decodeEnvelope(t, w)
	if envl.Message != "Team not found" {
		t.Errorf("404 should name the resource: %q", envl.Message)
	}
}

func TestStoreDisabledAnswers503(t *testing.T) {
	cfg := testConfig()
	cfg.BigQuery.Enabled = false
	router := NewRouter(cfg, nil, mockstore.New(), nil)
	env := &testEnv{router: router}

	w := env.do(http.MethodGet, "/teams", nil, "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}

	// Mock-backed routes keep working without the store.
	w = env.do(http.MethodGet, "/players", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("mock routes should not need the store: %d", w.Code)
	}
}

func TestGenerateText(t *testing.T) {
	env := newTestEnv(testConfig())
	env.gen.result = &gentext.Result{
		Text:  "A tailored training plan",
		Usage: &gentext.Usage{PromptTokens: 5, CandidatesTokens: 10, TotalTokens: 15},
	}

	w := env.do(http.MethodPost, "/ai/generate", nil, `{"prompt":"Suggest a recovery plan","temperature":0.3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "A tailored training plan") {
		t.Errorf("generated text missing: %s", body)
	}
	if !strings.Contains(body, `"totalTokens":15`) {
		t.Errorf("usage missing: %s", body)
	}
}

func TestGenerateTextValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing prompt", `{}`},
		{"prompt too long", `{"prompt":"` + strings.Repeat("a", 10001) + `"}`},
		{"temperature out of range", `{"prompt":"x","temperature":3}`},
		{"topK out of range", `{"prompt":"x","topK":500}`},
		{"maxOutputTokens out of range", `{"prompt":"x","maxOutputTokens":90000}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(testConfig())
			w := env.do(http.MethodPost, "/ai/generate", nil, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGenerateTextSafetyBlock(t *testing.T) {
	env := newTestEnv(testConfig())
	env.gen.err = gentext.ErrBlocked

	w := env.do(http.MethodPost, "/ai/generate", nil, `{"prompt":"something hostile"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("safety block should be a client error, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "safety") {
		t.Errorf("block response should say so: %s", w.Body.String())
	}
}

func TestAIHealth(t *testing.T) {
	env := newTestEnv(testConfig())

	w := env.do(http.MethodGet, "/ai/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	env.gen.err = gentext.ErrUnavailable
	w = env.do(http.MethodGet, "/ai/health", nil, "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestAIUnconfiguredAnswers503(t *testing.T) {
	cfg := testConfig()
	router := NewRouter(cfg, &fakeStore{}, mockstore.New(), nil)
	env := &testEnv{router: router}

	w := env.do(http.MethodPost, "/ai/generate", nil, `{"prompt":"hello"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without an API key, got %d", w.Code)
	}
}

func TestSuccessEnvelopeShape(t *testing.T) {
	env := newTestEnv(testConfig())

	w := env.do(http.MethodGet, "/players", nil, "")
	envl := decodeEnvelope(t, w)
	if !envl.Success {
		t.Error("expected success=true")
	}
	if envl.Error != "" {
		t.Error("success envelope must not carry error")
	}
	if envl.Timestamp == "" {
		t.Error("envelope must carry a timestamp")
	}
}
