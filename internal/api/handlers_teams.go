// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package api

import (
	"net/http"
	"time"

	"github.com/tnslabs/sportsgate/internal/database"
	"github.com/tnslabs/sportsgate/internal/database/query"
	"github.com/tnslabs/sportsgate/internal/logging"
	"github.com/tnslabs/sportsgate/internal/models"
)

var (
	teamColumns       = []string{"team_id", "name", "organisation", "created", "modified"}
	teamPlayerColumns = []string{
		"team_id", "player_id", "player_number", "first_name", "last_name",
		"role", "status", "created", "modified",
	}
)

// ListTeams returns every team, ordered by name.
func (h *Handlers) ListTeams(w http.ResponseWriter, r *http.Request) error {
	if err := h.requireStore(); err != nil {
		return err
	}

	sb := query.NewSelect(h.teamsTable, teamColumns...)
	sb.OrderBy("name ASC")
	sql, params := sb.Build(0, 0)

	start := time.Now()
	rows, err := h.store.Query(r.Context(), sql, params)
	if err != nil {
		return ErrUpstream(err)
	}

	teams := make([]models.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, teamFromRow(row))
	}

	logging.Ctx(r.Context()).Info().
		Int("count", len(teams)).
		Dur("query_duration", time.Since(start)).
		Msg("teams retrieved")

	WriteSuccessCount(w, "Teams retrieved successfully", teams, len(teams))
	return nil
}

// GetTeam returns one team by ID.
func (h *Handlers) GetTeam(w http.ResponseWriter, r *http.Request) error {
	if err := h.requireStore(); err != nil {
		return err
	}

	teamID, err := bindIDParam(r, "teamId")
	if err != nil {
		return err
	}

	sb := query.NewSelect(h.teamsTable, teamColumns...)
	sb.Where().AddEquality("team_id", "teamId", teamID)
	sb.Paginate()
	sql, params := sb.Build(1, 0)

	rows, err := h.store.Query(r.Context(), sql, params)
	if err != nil {
		return ErrUpstream(err)
	}
	if len(rows) == 0 {
		return ErrNotFound("Team")
	}

	WriteSuccess(w, "Team retrieved successfully", teamFromRow(rows[0]))
	return nil
}

// GetTeamMembers lists a team's roster with a role/status summary.
func (h *Handlers) GetTeamMembers(w http.ResponseWriter, r *http.Request) error {
	if err := h.requireStore(); err != nil {
		return err
	}

	teamID, err := bindIDParam(r, "teamId")
	if err != nil {
		return err
	}

	sb := query.NewSelect(h.playersTable, teamPlayerColumns...)
	sb.Where().AddEquality("team_id", "teamId", teamID)
	sb.OrderBy("player_number ASC, last_name ASC")
	sql, params := sb.Build(0, 0)

	rows, err := h.store.Query(r.Context(), sql, params)
	if err != nil {
		return ErrUpstream(err)
	}

	members := make([]models.TeamPlayer, 0, len(rows))
	active := 0
	for _, row := range rows {
		p := teamPlayerFromRow(row)
		if p.Status == "active" {
			active++
		}
		members = append(members, p)
	}

	WriteSuccessCount(w, "Team members retrieved successfully", map[string]interface{}{
		"teamId":  teamID,
		"members": members,
		"summary": map[string]interface{}{
			"totalMembers":  len(members),
			"activeMembers": active,
			"roles":         distinctRoles(members),
		},
	}, len(members))
	return nil
}

// SearchTeamPlayers searches a team's roster by name or shirt number, with
// optional role/status filters and pagination metadata from a parallel
// count query.
func (h *Handlers) SearchTeamPlayers(w http.ResponseWriter, r *http.Request) error {
	if err := h.requireStore(); err != nil {
		return err
	}

	teamID, err := bindIDParam(r, "teamId")
	if err != nil {
		return err
	}
	q, err := bindTeamSearchQuery(r)
	if err != nil {
		return err
	}

	sb := query.NewSelect(h.playersTable, teamPlayerColumns...)
	sb.Where().
		AddEquality("team_id", "teamId", teamID).
		AddSearch(q.Query, "first_name", "last_name", "CAST(player_number AS STRING)").
		AddFoldedEquality("role", "role", q.Role).
		AddFoldedEquality("status", "status", q.Status)
	sb.OrderBy("player_number ASC, last_name ASC").Paginate()

	sql, params := sb.Build(q.Limit, q.Offset)
	start := time.Now()
	rows, err := h.store.Query(r.Context(), sql, params)
	if err != nil {
		return ErrUpstream(err)
	}

	players := make([]models.TeamPlayer, 0, len(rows))
	for _, row := range rows {
		players = append(players, teamPlayerFromRow(row))
	}

	countSQL, countParams := sb.BuildCount()
	countRows, err := h.store.Query(r.Context(), countSQL, countParams)
	if err != nil {
		return ErrUpstream(err)
	}
	total := database.CountVal(countRows)

	logging.Ctx(r.Context()).Info().
		Str("team_id", teamID).
		Str("query", q.Query).
		Int("results", len(players)).
		Int("total", total).
		Dur("query_duration", time.Since(start)).
		Msg("team player search completed")

	WriteSuccessCount(w, "Team players search completed successfully", map[string]interface{}{
		"teamId":  teamID,
		"players": players,
		"pagination": map[string]interface{}{
			"total":   total,
			"limit":   q.Limit,
			"offset":  q.Offset,
			"hasMore": q.Offset+len(players) < total,
		},
		"filters": map[string]interface{}{
			"query":  nullable(q.Query),
			"role":   nullable(q.Role),
			"status": nullable(q.Status),
		},
		"summary": map[string]interface{}{
			"totalResults":   len(players),
			"totalAvailable": total,
			"roles":          distinctRoles(players),
			"statuses":       distinctStatuses(players),
		},
	}, len(players))
	return nil
}

// GetTeamPlayer returns one roster entry by team and player ID.
func (h *Handlers) GetTeamPlayer(w http.ResponseWriter, r *http.Request) error {
	if err := h.requireStore(); err != nil {
		return err
	}

	p, err := bindTeamPlayerParams(r)
	if err != nil {
		return err
	}

	sb := query.NewSelect(h.playersTable, teamPlayerColumns...)
	sb.Where().
		AddEquality("team_id", "teamId", p.TeamID).
		AddEquality("player_id", "playerId", p.PlayerID)
	sql, params := sb.Build(0, 0)

	rows, err := h.store.Query(r.Context(), sql, params)
	if err != nil {
		return ErrUpstream(err)
	}
	if len(rows) == 0 {
		return ErrNotFound("Player")
	}

	WriteSuccess(w, "Team player retrieved successfully", teamPlayerFromRow(rows[0]))
	return nil
}

func teamFromRow(row database.Row) models.Team {
	return models.Team{
		TeamID:       database.StringVal(row, "team_id"),
		Name:         database.StringVal(row, "name"),
		Organisation: database.StringVal(row, "organisation"),
		Created:      timestampVal(row, "created"),
		Modified:     timestampVal(row, "modified"),
	}
}

func teamPlayerFromRow(row database.Row) models.TeamPlayer {
	return models.TeamPlayer{
		TeamID:       database.StringVal(row, "team_id"),
		PlayerID:     database.StringVal(row, "player_id"),
		PlayerNumber: int64(database.IntVal(row, "player_number")),
		FirstName:    database.StringVal(row, "first_name"),
		LastName:     database.StringVal(row, "last_name"),
		Role:         database.StringVal(row, "role"),
		Status:       database.StringVal(row, "status"),
		Created:      timestampVal(row, "created"),
		Modified:     timestampVal(row, "modified"),
	}
}

func distinctRoles(players []models.TeamPlayer) []string {
	return distinct(players, func(p models.TeamPlayer) string { return p.Role })
}

func distinctStatuses(players []models.TeamPlayer) []string {
	return distinct(players, func(p models.TeamPlayer) string { return p.Status })
}

func distinct(players []models.TeamPlayer, field func(models.TeamPlayer) string) []string {
	seen := make(map[string]struct{}, len(players))
	out := make([]string, 0, len(players))
	for _, p := range players {
		v := field(p)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
