// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package query

import (
	"strings"
	"testing"
)

func TestWhereBuilderEmpty(t *testing.T) {
	t.Parallel()

	wb := NewWhereBuilder()
	where, params := wb.Build()

	if where != "1=1" {
		t.Errorf("expected 1=1, got %q", where)
	}
	if len(params) != 0 {
		t.Errorf("expected no params, got %v", params)
	}
	if !wb.IsEmpty() {
		t.Error("expected IsEmpty to be true")
	}
}

func TestWhereBuilderEquality(t *testing.T) {
	t.Parallel()

	wb := NewWhereBuilder()
	wb.AddEquality("athlete_id", "playerId", "p-123")
	where, params := wb.Build()

	if where != "athlete_id = @playerId" {
		t.Errorf("unexpected clause: %q", where)
	}
	if params["playerId"] != "p-123" {
		t.Errorf("unexpected params: %v", params)
	}
}

func TestWhereBuilderDateRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end string
		wantClause string
		wantParams int
	}{
		{"both bounds", "2026-01-01", "2026-02-01", "start_time >= @startTime AND start_time <= @endTime", 2},
		{"start only", "2026-01-01", "", "start_time >= @startTime", 1},
		{"end only", "", "2026-02-01", "start_time <= @endTime", 1},
		{"neither", "", "", "1=1", 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wb := NewWhereBuilder()
			wb.AddDateRange("start_time", tt.start, tt.end)
			where, params := wb.Build()

			if where != tt.wantClause {
				t.Errorf("expected %q, got %q", tt.wantClause, where)
			}
			if len(params) != tt.wantParams {
				t.Errorf("expected %d params, got %v", tt.wantParams, params)
			}
		})
	}
}

func TestWhereBuilderSearch(t *testing.T) {
	t.Parallel()

	wb := NewWhereBuilder()
	wb.AddSearch("eagles", "team_name", "CAST(team_id AS STRING)")
	where, params := wb.Build()

	if !strings.Contains(where, "LOWER(team_name) LIKE LOWER(@searchQuery)") {
		t.Errorf("missing name match: %q", where)
	}
	if !strings.Contains(where, " OR ") {
		t.Errorf("columns should combine with OR: %q", where)
	}
	if params["searchQuery"] != "%eagles%" {
		t.Errorf("search term should be wrapped in wildcards, got %v", params["searchQuery"])
	}
}

func TestWhereBuilderSearchEmptyTermSkipped(t *testing.T) {
	t.Parallel()

	wb := NewWhereBuilder()
	wb.AddSearch("", "team_name")
	if !wb.IsEmpty() {
		t.Error("empty search term should add no clause")
	}
}

func TestWhereBuilderFoldedEquality(t *testing.T) {
	t.Parallel()

	wb := NewWhereBuilder()
	wb.AddFoldedEquality("role", "role", "Forward")
	wb.AddFoldedEquality("status", "status", "")
	where, params := wb.Build()

	if where != "LOWER(role) = LOWER(@role)" {
		t.Errorf("unexpected clause: %q", where)
	}
	if _, ok := params["status"]; ok {
		t.Error("empty value should not bind a parameter")
	}
}

func TestWhereBuilderCombinesWithAND(t *testing.T) {
	t.Parallel()

	wb := NewWhereBuilder()
	wb.AddEquality("athlete_id", "playerId", "p-1")
	wb.AddDateRange("start_time", "2026-01-01", "")
	where, _ := wb.Build()

	if where != "athlete_id = @playerId AND start_time >= @startTime" {
		t.Errorf("unexpected clause: %q", where)
	}
}

func TestSelectBuilderPagination(t *testing.T) {
	t.Parallel()

	sb := NewSelect("`proj.ds.sessions`", "session_id", "athlete_id")
	sb.Where().AddEquality("athlete_id", "playerId", "p-1")
	sb.OrderBy("start_time DESC").Paginate()

	sql, params := sb.Build(100, 20)

	want := "SELECT session_id, athlete_id FROM `proj.ds.sessions` WHERE athlete_id = @playerId ORDER BY start_time DESC LIMIT @limit OFFSET @offset"
	if sql != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, sql)
	}
	if params["limit"] != 100 || params["offset"] != 20 {
		t.Errorf("pagination params not bound: %v", params)
	}
}

func TestSelectBuilderCountExcludesPagination(t *testing.T) {
	t.Parallel()

	sb := NewSelect("`proj.ds.teams`", "team_id")
	sb.Where().AddSearch("fc", "team_name")
	sb.Paginate()

	sql, params := sb.BuildCount()

	if strings.Contains(sql, "LIMIT") || strings.Contains(sql, "OFFSET") {
		t.Errorf("count query must not paginate: %q", sql)
	}
	if !strings.HasPrefix(sql, "SELECT COUNT(*) AS total FROM") {
		t.Errorf("unexpected count query: %q", sql)
	}
	if _, ok := params["limit"]; ok {
		t.Error("count params must not include limit")
	}
	if params["searchQuery"] != "%fc%" {
		t.Errorf("count query must reuse filter params: %v", params)
	}
}

func TestTableRef(t *testing.T) {
	t.Parallel()

	got := TableRef("proj", "sports_data", "player_training_sessions")
	want := "`proj.sports_data.player_training_sessions`"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
