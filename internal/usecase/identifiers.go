package usecase

import (
	"fmt"

	"github.com/riskibarqy/match-crawler/internal/domain/timeline"
	idgen "github.com/riskibarqy/match-crawler/internal/platform/id"
)

// assignIdentifiers gives every arena entity a durable id and resolves the
// arena cross references (team index, participant index) into those ids.
// tl may be nil when no timeline is persisted.
func assignIdentifiers(nm *NormalizedMatch, tl *timeline.MatchTimeline, gen idgen.Generator) error {
	gameID := nm.Match.GameID

	nm.Match.TeamIDs = make([]string, 0, len(nm.Teams))
	for i := range nm.Teams {
		teamID, err := gen.NewID()
		if err != nil {
			return fmt.Errorf("assign team id: %w", err)
		}
		nm.Teams[i].ID = teamID
		nm.Teams[i].GameID = gameID
		nm.Match.TeamIDs = append(nm.Match.TeamIDs, teamID)
	}

	nm.Match.ParticipantIDs = make([]string, 0, len(nm.Participants))
	for i := range nm.Participants {
		p := &nm.Participants[i]
		ids := make([]string, 3)
		for j := range ids {
			v, err := gen.NewID()
			if err != nil {
				return fmt.Errorf("assign participant id: %w", err)
			}
			ids[j] = v
		}
		p.ID, p.Stat.ID, p.Timeline.ID = ids[0], ids[1], ids[2]
		p.TeamID = nm.Teams[p.TeamIndex].ID
		p.GameID = gameID
		nm.Match.ParticipantIDs = append(nm.Match.ParticipantIDs, p.ID)
	}

	if tl == nil {
		return nil
	}

	tl.GameID = gameID
	participantID := func(idx *int) *string {
		if idx == nil || *idx < 0 || *idx >= len(nm.Participants) {
			return nil
		}
		v := nm.Participants[*idx].ID
		return &v
	}
	for fi := range tl.Frames {
		frame := &tl.Frames[fi]
		for pi := range frame.ParticipantFrames {
			pf := &frame.ParticipantFrames[pi]
			pf.GameID = gameID
			if ref := participantID(&pf.ParticipantIndex); ref != nil {
				pf.ParticipantID = *ref
			}
		}
		for ei := range frame.Events {
			ev := &frame.Events[ei]
			ev.GameID = gameID
			ev.ParticipantID = participantID(ev.ParticipantIndex)
			ev.KillerID = participantID(ev.KillerIndex)
			ev.VictimID = participantID(ev.VictimIndex)
			ev.CreatorID = participantID(ev.CreatorIndex)
			if ev.AssistingIndexes != nil {
				ev.AssistingParticipantIDs = make([]string, 0, len(ev.AssistingIndexes))
				for _, idx := range ev.AssistingIndexes {
					if ref := participantID(&idx); ref != nil {
						ev.AssistingParticipantIDs = append(ev.AssistingParticipantIDs, *ref)
					}
				}
			}
		}
	}
	return nil
}
