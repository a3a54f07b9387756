// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package database

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func TestStringVal(t *testing.T) {
	t.Parallel()

	row := Row{"name": "Thunder FC", "missing_type": 42}

	if got := StringVal(row, "name"); got != "Thunder FC" {
		t.Errorf("expected Thunder FC, got %q", got)
	}
	if got := StringVal(row, "absent"); got != "" {
		t.Errorf("absent column should yield empty string, got %q", got)
	}
	if got := StringVal(row, "missing_type"); got != "" {
		t.Errorf("non-string column should yield empty string, got %q", got)
	}
}

func TestIntVal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value interface{}
		want  int
	}{
		{"int64", int64(12), 12},
		{"int", 7, 7},
		{"float64", 3.0, 3},
		{"nil", nil, 0},
		{"string", "5", 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IntVal(Row{"v": tt.value}, "v"); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestFloatVal(t *testing.T) {
	t.Parallel()

	if got := FloatVal(Row{"v": 2.5}, "v"); got != 2.5 {
		t.Errorf("expected 2.5, got %v", got)
	}
	if got := FloatVal(Row{"v": int64(4)}, "v"); got != 4.0 {
		t.Errorf("expected 4.0, got %v", got)
	}
	if got := FloatVal(Row{}, "v"); got != 0 {
		t.Errorf("absent column should yield 0, got %v", got)
	}
}

func TestTimeVal(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	if got := TimeVal(Row{"ts": now}, "ts"); !got.Equal(now) {
		t.Errorf("expected %v, got %v", now, got)
	}

	d := civil.Date{Year: 2026, Month: 3, Day: 14}
	got := TimeVal(Row{"d": d}, "d")
	if got.Year() != 2026 || got.Month() != 3 || got.Day() != 14 {
		t.Errorf("unexpected date mapping: %v", got)
	}

	if got := TimeVal(Row{}, "absent"); !got.IsZero() {
		t.Errorf("absent column should yield zero time, got %v", got)
	}
}

func TestCountVal(t *testing.T) {
	t.Parallel()

	if got := CountVal([]Row{{"total": int64(37)}}); got != 37 {
		t.Errorf("expected 37, got %d", got)
	}
	if got := CountVal(nil); got != 0 {
		t.Errorf("empty result should yield 0, got %d", got)
	}
}

func TestNamedParametersDeterministicOrder(t *testing.T) {
	t.Parallel()

	params := namedParameters(map[string]interface{}{
		"startTime": "2026-01-01",
		"limit":     100,
		"playerId":  "p-1",
	})

	if len(params) != 3 {
		t.Fatalf("expected 3 parameters, got %d", len(params))
	}
	want := []string{"limit", "playerId", "startTime"}
	for i, name := range want {
		if params[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, params[i].Name)
		}
	}

	if namedParameters(nil) != nil {
		t.Error("empty map should yield nil slice")
	}
}
