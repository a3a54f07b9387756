// Sportsgate - Sports Performance Analytics Gateway
// Copyright 2026 TNS Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tnslabs/sportsgate

package mockstore

import "github.com/tnslabs/sportsgate/internal/models"

func seedPlayers() []models.Player {
	return []models.Player{
		{
			PlayerID: "player-001",
			Name:     "Marcus Silva",
			Position: "Forward",
			Team:     "Thunder FC",
			LatestSession: models.PlayerSession{
				Timestamp:              "2026-08-27T18:30:00Z",
				DurationMin:            92.5,
				AvgHR:                  148,
				MaxHR:                  189,
				HrvRMSSD:               42.3,
				FatigueScore:           6.8,
				LoadScore:              312,
				MovementIntensityScore: 8.1,
				HrZones: models.HrZones{
					Zone1: 12.4, Zone2: 28.7, Zone3: 31.2, Zone4: 15.8, Zone5: 4.4,
				},
			},
			WeeklySummary: models.PlayerWeeklySummary{
				TotalSessions:   5,
				AvgFatigueScore: 6.2,
				AvgLoadScore:    287,
				RecoveryTrend:   "stable",
			},
			RecoveryStatus: models.PlayerRecoveryStatus{
				Score: 72,
				Trend: "improving",
			},
		},
		{
			PlayerID: "player-002",
			Name:     "Jonas Lindqvist",
			Position: "Midfielder",
			Team:     "Thunder FC",
			LatestSession: models.PlayerSession{
				Timestamp:              "2026-08-28T10:15:00Z",
				DurationMin:            78,
				AvgHR:                  142,
				MaxHR:                  181,
				HrvRMSSD:               55.1,
				FatigueScore:           4.9,
				LoadScore:              241,
				MovementIntensityScore: 7.2,
				HrZones: models.HrZones{
					Zone1: 15.9, Zone2: 26.3, Zone3: 24.8, Zone4: 9.2, Zone5: 1.8,
				},
			},
			WeeklySummary: models.PlayerWeeklySummary{
				TotalSessions:   4,
				AvgFatigueScore: 5.1,
				AvgLoadScore:    233,
				RecoveryTrend:   "improving",
			},
			RecoveryStatus: models.PlayerRecoveryStatus{
				Score: 84,
				Trend: "stable",
			},
		},
		{
			PlayerID: "player-003",
			Name:     "Ade Okafor",
			Position: "Defender",
			Team:     "Harbor United",
			LatestSession: models.PlayerSession{
				Timestamp:              "2026-08-26T17:00:00Z",
				DurationMin:            88,
				AvgHR:                  151,
				MaxHR:                  193,
				HrvRMSSD:               38.6,
				FatigueScore:           7.9,
				LoadScore:              334,
				MovementIntensityScore: 8.8,
				HrZones: models.HrZones{
					Zone1: 10.1, Zone2: 22.5, Zone3: 29.4, Zone4: 19.7, Zone5: 6.3,
				},
			},
			WeeklySummary: models.PlayerWeeklySummary{
				TotalSessions:   6,
				AvgFatigueScore: 7.1,
				AvgLoadScore:    318,
				RecoveryTrend:   "declining",
			},
			RecoveryStatus: models.PlayerRecoveryStatus{
				Score: 58,
				Trend: "declining",
			},
		},
	}
}
