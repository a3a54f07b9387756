// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

// Package models defines the domain payloads served by the gateway.
// Field names mirror the analytical store's column names on the wire.
package models

// Team is one row of the teams table.
type Team struct {
	TeamID       string `json:"team_id"`
	Name         string `json:"name"`
	Organisation string `json:"organisation"`
	Created      string `json:"created"`
	Modified     string `json:"modified"`
}

// TeamPlayer is one roster row of the players table.
type TeamPlayer struct {
	TeamID       string `json:"team_id"`
	PlayerID     string `json:"player_id"`
	PlayerNumber int64  `json:"player_number"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	Created      string `json:"created"`
	Modified     string `json:"modified"`
}

// TrainingSession is one row of the player training sessions table.
type TrainingSession struct {
	TeamID          string  `json:"team_id"`
	TrainingID      string  `json:"training_id"`
	PlayerID        string  `json:"player_id"`
	PlayerSessionID string  `json:"player_session_id"`
	StartTime       string  `json:"start_time"`
	StopTime        string  `json:"stop_time"`
	DurationMS      int64   `json:"duration_ms"`
	DistanceMeters  float64 `json:"distance_meters"`
	Calories        int64   `json:"calories"`
	TrainingLoad    float64 `json:"training_load"`
	CardioLoad      float64 `json:"cardio_load"`
	MuscleLoad      float64 `json:"muscle_load"`
	HeartRateAvg    float64 `json:"heart_rate_avg"`
	HeartRateMax    float64 `json:"heart_rate_max"`
	Sprints         int64   `json:"sprints"`
	RunDistanceM    float64 `json:"run_distance_m"`
	WalkDistanceM   float64 `json:"walk_distance_m"`
	RMSSDMS         float64 `json:"rmssd_ms"`
	SDNNMS          float64 `json:"sdnn_ms"`
	PNN50           float64 `json:"pnn50"`
	CreatedAt       string  `json:"created_at"`
}

// HrZones is time-in-zone minutes for one session.
type HrZones struct {
	Zone1 float64 `json:"zone1"`
	Zone2 float64 `json:"zone2"`
	Zone3 float64 `json:"zone3"`
	Zone4 float64 `json:"zone4"`
	Zone5 float64 `json:"zone5"`
}

// PlayerSession is the condensed latest-session block of a mock player.
type PlayerSession struct {
	Timestamp              string  `json:"timestamp"`
	DurationMin            float64 `json:"duration_min"`
	AvgHR                  float64 `json:"avg_hr"`
	MaxHR                  float64 `json:"max_hr"`
	HrvRMSSD               float64 `json:"hrv_rmssd"`
	FatigueScore           float64 `json:"fatigue_score"`
	LoadScore              float64 `json:"load_score"`
	MovementIntensityScore float64 `json:"movement_intensity_score"`
	HrZones                HrZones `json:"hr_zones"`
}

// PlayerWeeklySummary aggregates a mock player's trailing week.
type PlayerWeeklySummary struct {
	TotalSessions   int     `json:"total_sessions"`
	AvgFatigueScore float64 `json:"avg_fatigue_score"`
	AvgLoadScore    float64 `json:"avg_load_score"`
	RecoveryTrend   string  `json:"recovery_trend"`
}

// PlayerRecoveryStatus is a mock player's current recovery state.
type PlayerRecoveryStatus struct {
	Score float64 `json:"score"`
	Trend string  `json:"trend"`
}

// Player is the mock-data player document.
type Player struct {
	PlayerID       string               `json:"player_id"`
	Name           string               `json:"name"`
	Position       string               `json:"position,omitempty"`
	Team           string               `json:"team,omitempty"`
	LatestSession  PlayerSession        `json:"latest_session"`
	WeeklySummary  PlayerWeeklySummary  `json:"weekly_summary"`
	RecoveryStatus PlayerRecoveryStatus `json:"recovery_status"`
}

// PlayerCurrentStatus is the recovery block of a player summary.
type PlayerCurrentStatus struct {
	RecoveryScore   float64 `json:"recoveryScore"`
	RecoveryTrend   string  `json:"recoveryTrend"`
	LastSessionDate string  `json:"lastSessionDate"`
}

// PlayerRecentPerformance is the latest-session block of a player summary.
type PlayerRecentPerformance struct {
	LastSessionLoad    float64 `json:"lastSessionLoad"`
	LastSessionFatigue float64 `json:"lastSessionFatigue"`
	AvgHeartRate       float64 `json:"avgHeartRate"`
	MaxHeartRate       float64 `json:"maxHeartRate"`
}

// PlayerWeeklyOverview is the trailing-week block of a player summary.
type PlayerWeeklyOverview struct {
	TotalSessions   int     `json:"totalSessions"`
	AvgLoadScore    float64 `json:"avgLoadScore"`
	AvgFatigueScore float64 `json:"avgFatigueScore"`
	Trend           string  `json:"trend"`
}

// PlayerSummary condenses one player's key metrics.
type PlayerSummary struct {
	PlayerID          string                  `json:"playerId"`
	Name              string                  `json:"name"`
	CurrentStatus     PlayerCurrentStatus     `json:"currentStatus"`
	RecentPerformance PlayerRecentPerformance `json:"recentPerformance"`
	WeeklyOverview    PlayerWeeklyOverview    `json:"weeklyOverview"`
}

// PlayerSearchResult carries a player search's results and summary block.
type PlayerSearchResult struct {
	Query   string              `json:"query"`
	Results []Player            `json:"results"`
	Summary PlayerSearchSummary `json:"summary"`
}

// PlayerSearchSummary describes how a player search matched.
type PlayerSearchSummary struct {
	SearchTerm   string `json:"searchTerm"`
	TotalResults int    `json:"totalResults"`
	Searched     int    `json:"searched"`
}

// HealthStatus is the health probe payload.
type HealthStatus struct {
	Status      string  `json:"status"`
	Environment string  `json:"environment"`
	Uptime      float64 `json:"uptime"`
	Timestamp   string  `json:"timestamp"`
}
