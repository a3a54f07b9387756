// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tnslabs/sportsgate/internal/database"
	"github.com/tnslabs/sportsgate/internal/database/query"
	"github.com/tnslabs/sportsgate/internal/logging"
	"github.com/tnslabs/sportsgate/internal/models"
)

var sessionColumns = []string{
	"team_id", "training_id", "player_id", "player_session_id",
	"start_time", "stop_time", "duration_ms", "distance_meters",
	"calories", "training_load", "cardio_load", "muscle_load",
	"heart_rate_avg", "heart_rate_max", "sprints",
	"run_distance_m", "walk_distance_m",
	"rmssd_ms", "sdnn_ms", "pnn50", "created_at",
}

// ListPlayers returns every seeded player document.
func (h *Handlers) ListPlayers(w http.ResponseWriter, r *http.Request) error {
	players := h.players.All()
	logging.Ctx(r.Context()).Info().
		Int("count", len(players)).
		Str("ip", clientIP(r)).
		Msg("retrieving all players")

	WriteSuccessCount(w, "All players retrieved successfully", players, len(players))
	return nil
}

// GetPlayer returns one player document by ID.
func (h *Handlers) GetPlayer(w http.ResponseWriter, r *http.Request) error {
	id, err := bindIDParam(r, "id")
	if err != nil {
		return err
	}

	player, ok := h.players.ByID(id)
	if !ok {
		return ErrNotFound("Player")
	}

	WriteSuccess(w, "Player retrieved successfully", player)
	return nil
}

// SearchPlayers matches seeded players by name fragment.
func (h *Handlers) SearchPlayers(w http.ResponseWriter, r *http.Request) error {
	term := SanitizedQuery(r).Get("query")
	result := h.players.Search(term)

	logging.Ctx(r.Context()).Info().
		Str("query", result.Query).
		Int("result_count", result.Summary.TotalResults).
		Msg("player search completed")

	message := fmt.Sprintf("Player search completed. Found %d player(s)", result.Summary.TotalResults)
	WriteSuccessCount(w, message, result, result.Summary.TotalResults)
	return nil
}

// GetPlayerSummary condenses one player's key metrics.
func (h *Handlers) GetPlayerSummary(w http.ResponseWriter, r *http.Request) error {
	id, err := bindIDParam(r, "id")
	if err != nil {
		return err
	}

	summary, ok := h.players.Summary(id)
	if !ok {
		return ErrNotFound("Player")
	}

	WriteSuccess(w, "Player summary retrieved successfully", summary)
	return nil
}

// GetPlayerSessions lists a player's training sessions from the analytical
// store, newest first, with optional date bounds.
func (h *Handlers) GetPlayerSessions(w http.ResponseWriter, r *http.Request) error {
	if err := h.requireStore(); err != nil {
		return err
	}

	id, err := bindIDParam(r, "id")
	if err != nil {
		return err
	}
	q, err := bindSessionQuery(r)
	if err != nil {
		return err
	}

	sb := query.NewSelect(h.sessionsTable, sessionColumns...)
	sb.Where().AddEquality("player_id", "playerId", id)
	sb.Where().AddDateRange("start_time", q.Start, q.End)
	sb.OrderBy("start_time DESC").Paginate()

	sql, params := sb.Build(q.Limit, q.Offset)
	rows, err := h.store.Query(r.Context(), sql, params)
	if err != nil {
		return ErrUpstream(err)
	}

	sessions := make([]models.TrainingSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, sessionFromRow(row))
	}

	WriteSuccessCount(w, "Player sessions retrieved successfully", map[string]interface{}{
		"playerId": id,
		"sessions": sessions,
		"pagination": map[string]interface{}{
			"limit":   q.Limit,
			"offset":  q.Offset,
			"count":   len(sessions),
			"hasMore": len(sessions) == q.Limit,
		},
	}, len(sessions))
	return nil
}

func sessionFromRow(row database.Row) models.TrainingSession {
	return models.TrainingSession{
		TeamID:          database.StringVal(row, "team_id"),
		TrainingID:      database.StringVal(row, "training_id"),
		PlayerID:        database.StringVal(row, "player_id"),
		PlayerSessionID: database.StringVal(row, "player_session_id"),
		StartTime:       timestampVal(row, "start_time"),
		StopTime:        timestampVal(row, "stop_time"),
		DurationMS:      int64(database.IntVal(row, "duration_ms")),
		DistanceMeters:  database.FloatVal(row, "distance_meters"),
		Calories:        int64(database.IntVal(row, "calories")),
		TrainingLoad:    database.FloatVal(row, "training_load"),
		CardioLoad:      database.FloatVal(row, "cardio_load"),
		MuscleLoad:      database.FloatVal(row, "muscle_load"),
		HeartRateAvg:    database.FloatVal(row, "heart_rate_avg"),
		HeartRateMax:    database.FloatVal(row, "heart_rate_max"),
		Sprints:         int64(database.IntVal(row, "sprints")),
		RunDistanceM:    database.FloatVal(row, "run_distance_m"),
		WalkDistanceM:   database.FloatVal(row, "walk_distance_m"),
		RMSSDMS:         database.FloatVal(row, "rmssd_ms"),
		SDNNMS:          database.FloatVal(row, "sdnn_ms"),
		PNN50:           database.FloatVal(row, "pnn50"),
		CreatedAt:       timestampVal(row, "created_at"),
	}
}

// timestampVal renders a timestamp column as RFC 3339, passing through
// string-typed columns unchanged.
func timestampVal(row database.Row, key string) string {
	if s := database.StringVal(row, key); s != "" {
		return s
	}
	if t := database.TimeVal(row, key); !t.IsZero() {
		return t.UTC().Format(time.RFC3339)
	}
	return ""
}
