package usecase

import (
	"fmt"

	"github.com/riskibarqy/match-crawler/internal/domain/match"
	"github.com/riskibarqy/match-crawler/internal/domain/rawmatch"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// rawMatchFixture returns a well formed 5v5 payload. Slot N belongs to acc-N.
func rawMatchFixture(gameID int64) rawmatch.Match {
	m := rawmatch.Match{
		GameID:       gameID,
		PlatformID:   "KR",
		GameCreation: 1556704800000,
		GameDuration: 1860,
		QueueID:      420,
		MapID:        11,
		SeasonID:     13,
		GameVersion:  "9.9.276.4910",
		GameMode:     "CLASSIC",
		GameType:     "MATCHED_GAME",
		Teams: []rawmatch.TeamStats{
			{TeamID: match.SideBlue, Win: "Win", FirstBlood: true, TowerKills: 9, Bans: []rawmatch.TeamBans{{ChampionID: 157, PickTurn: 1}}},
			{TeamID: match.SideRed, Win: "Fail", TowerKills: 2},
		},
	}
	for slot := 1; slot <= match.ParticipantsPerMatch; slot++ {
		side := match.SideBlue
		if slot > match.ParticipantsPerTeam {
			side = match.SideRed
		}
		m.Participants = append(m.Participants, rawmatch.Participant{
			ParticipantID: slot,
			TeamID:        intPtr(side),
			ChampionID:    100 + slot,
			Spell1ID:      4,
			Spell2ID:      14,
			Stats: rawmatch.ParticipantStats{
				Win:   side == match.SideBlue,
				Kills: slot,
			},
			Timeline: &rawmatch.ParticipantTimeline{
				ParticipantID:    slot,
				Role:             "SOLO",
				Lane:             "TOP",
				GoldPerMinDeltas: map[string]float64{"0-10": 300.5},
			},
		})
		m.ParticipantIdentities = append(m.ParticipantIdentities, rawmatch.ParticipantIdentity{
			ParticipantID: slot,
			Player: &rawmatch.Player{
				AccountID:    fmt.Sprintf("acc-%d", slot),
				SummonerName: fmt.Sprintf("summoner-%d", slot),
				SummonerID:   fmt.Sprintf("sum-%d", slot),
				PlatformID:   "KR",
			},
		})
	}
	return m
}

// rawTimelineFixture returns two frames: one with a snapshot per slot plus
// an unknown slot, and one with a kill and a purchase.
func rawTimelineFixture() rawmatch.Timeline {
	snapshots := make(map[string]rawmatch.ParticipantFrame, match.ParticipantsPerMatch+1)
	for slot := 1; slot <= match.ParticipantsPerMatch+1; slot++ {
		snapshots[fmt.Sprint(slot)] = rawmatch.ParticipantFrame{
			ParticipantID: slot,
			TotalGold:     500 + slot,
			Level:         1,
			Position:      &rawmatch.Position{X: slot * 10, Y: slot * 20},
		}
	}
	return rawmatch.Timeline{
		FrameInterval: 60000,
		Frames: []rawmatch.Frame{
			{Timestamp: 0, ParticipantFrames: snapshots},
			{
				Timestamp: 60000,
				Events: []rawmatch.Event{
					{
						Type:                    "CHAMPION_KILL",
						Timestamp:               59000,
						KillerID:                intPtr(1),
						VictimID:                intPtr(6),
						AssistingParticipantIDs: []int{2, 3, 0},
						Position:                &rawmatch.Position{X: 7000, Y: 7000},
					},
					{
						Type:          "ITEM_PURCHASED",
						Timestamp:     30000,
						ParticipantID: intPtr(0),
						ItemID:        intPtr(1055),
					},
					{
						Type:      "BUILDING_KILL",
						Timestamp: 45000,
						KillerID:  intPtr(0),
						TeamID:    intPtr(match.SideRed),
						TowerType: strPtr("OUTER_TURRET"),
					},
				},
			},
		},
	}
}
