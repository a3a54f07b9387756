// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/tnslabs/sportsgate/internal/config"
	"github.com/tnslabs/sportsgate/internal/database"
	"github.com/tnslabs/sportsgate/internal/gentext"
	"github.com/tnslabs/sportsgate/internal/mockstore"
)

// fakeStore answers queries from a scripted function.
type fakeStore struct {
	queryFn func(sql string, params map[string]interface{}) ([]database.Row, error)
	queries []string
}

func (f *fakeStore) Query(_ context.Context, sql string, params map[string]interface{}) ([]database.Row, error) {
	f.queries = append(f.queries, sql)
	if f.queryFn == nil {
		return nil, nil
	}
	return f.queryFn(sql, params)
}

func (f *fakeStore) Ping(context.Context) error { return nil }
func (f *fakeStore) Close() error               { return nil }

// fakeGenerator answers generation calls from scripted results.
type fakeGenerator struct {
	result *gentext.Result
	err    error
}

func (f *fakeGenerator) Generate(context.Context, gentext.Request) (*gentext.Result, error) {
	return f.result, f.err
}

func (f *fakeGenerator) Health(context.Context) error { return f.err }

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:        3000,
			Environment: "test",
		},
		BigQuery: config.BigQueryConfig{
			Enabled:       true,
			ProjectID:     "proj",
			Dataset:       "sports_data",
			SessionsTable: "player_training_sessions",
			PlayersTable:  "players",
			TeamsTable:    "teams",
		},
		Security: config.SecurityConfig{
			RateLimitWindowMS:    60000,
			RateLimitMaxRequests: 100,
			AllowedOrigins:       []string{"*"},
			MaxBodyBytes:         10 << 20,
		},
	}
}

type testEnv struct {
	router http.Handler
	store  *fakeStore
	gen    *fakeGenerator
}

func newTestEnv(cfg *config.Config) *testEnv {
	store := &fakeStore{}
	gen := &fakeGenerator{result: &gentext.Result{Text: "generated"}}
	return &testEnv{
		router: NewRouter(cfg, store, mockstore.New(), gen),
		store:  store,
		gen:    gen,
	}
}

func (e *testEnv) do(method, target string, headers map[string]string, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func httptestPost(target, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func recordRequest(e *testEnv, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func decodeEnvelope(t interface{ Fatalf(string, ...interface{}) }, w *httptest.ResponseRecorder) Envelope {
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not a valid envelope: %v\n%s", err, w.Body.String())
	}
	return env
}
