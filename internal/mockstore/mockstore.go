// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

// Package mockstore serves seeded player documents for endpoints whose live
// feed has not been onboarded yet. Lookups are read-only, so the seeded
// slice is shared without copying document internals.
package mockstore

import (
	"strings"

	"github.com/tnslabs/sportsgate/internal/models"
)

// Store holds the seeded player documents.
type Store struct {
	players []models.Player
	byID    map[string]*models.Player
}

// New creates a Store with the built-in seed data.
func New() *Store {
	return NewWith(seedPlayers())
}

// NewWith creates a Store over the given players. Used by tests.
func NewWith(players []models.Player) *Store {
	s := &Store{
		players: players,
		byID:    make(map[string]*models.Player, len(players)),
	}
	for i := range s.players {
		s.byID[s.players[i].PlayerID] = &s.players[i]
	}
	return s
}

// All returns every player document.
func (s *Store) All() []models.Player {
	return s.players
}

// ByID returns the player with the given ID.
func (s *Store) ByID(id string) (models.Player, bool) {
	p, ok := s.byID[id]
	if !ok {
		return models.Player{}, false
	}
	return *p, true
}

// Search matches players whose name contains term, case-insensitively.
// An empty term matches every player.
func (s *Store) Search(term string) models.PlayerSearchResult {
	term = strings.ToLower(strings.TrimSpace(term))

	var results []models.Player
	if term == "" {
		results = s.players
	} else {
		results = []models.Player{}
		for _, p := range s.players {
			if strings.Contains(strings.ToLower(p.Name), term) {
				results = append(results, p)
			}
		}
	}

	return models.PlayerSearchResult{
		Query:   term,
		Results: results,
		Summary: models.PlayerSearchSummary{
			SearchTerm:   term,
			TotalResults: len(results),
			Searched:     len(s.players),
		},
	}
}

// Summary condenses one player's key metrics.
func (s *Store) Summary(id string) (models.PlayerSummary, bool) {
	p, ok := s.byID[id]
	if !ok {
		return models.PlayerSummary{}, false
	}
	return models.PlayerSummary{
		PlayerID: p.PlayerID,
		Name:     p.Name,
		CurrentStatus: models.PlayerCurrentStatus{
			RecoveryScore:   p.RecoveryStatus.Score,
			RecoveryTrend:   p.RecoveryStatus.Trend,
			LastSessionDate: p.LatestSession.Timestamp,
		},
		RecentPerformance: models.PlayerRecentPerformance{
			LastSessionLoad:    p.LatestSession.LoadScore,
			LastSessionFatigue: p.LatestSession.FatigueScore,
			AvgHeartRate:       p.LatestSession.AvgHR,
			MaxHeartRate:       p.LatestSession.MaxHR,
		},
		WeeklyOverview: models.PlayerWeeklyOverview{
			TotalSessions:   p.WeeklySummary.TotalSessions,
			AvgLoadScore:    p.WeeklySummary.AvgLoadScore,
			AvgFatigueScore: p.WeeklySummary.AvgFatigueScore,
			Trend:           p.WeeklySummary.RecoveryTrend,
		},
	}, true
}

// Count returns the number of seeded players.
func (s *Store) Count() int {
	return len(s.players)
}
