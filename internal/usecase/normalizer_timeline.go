package usecase

import (
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/match-crawler/internal/domain/rawmatch"
	"github.com/riskibarqy/match-crawler/internal/domain/timeline"
)

// NormalizeTimeline maps a timeline payload onto the participants produced by
// NormalizeMatch. Participant references become arena indices through
// slotIndex; slot 0 and slots missing from the map resolve to unset.
func NormalizeTimeline(raw rawmatch.Timeline, slotIndex map[int]int) (timeline.MatchTimeline, error) {
	if len(slotIndex) == 0 {
		return timeline.MatchTimeline{}, fmt.Errorf("%w: timeline requires the participant slot index", ErrMalformedMatch)
	}

	out := timeline.MatchTimeline{
		FrameInterval: time.Duration(raw.FrameInterval) * time.Millisecond,
		Frames:        make([]timeline.Frame, 0, len(raw.Frames)),
	}
	for _, item := range raw.Frames {
		stamp := time.Duration(item.Timestamp) * time.Millisecond
		frame := timeline.Frame{
			Timestamp:         stamp,
			ParticipantFrames: normalizeParticipantFrames(item.ParticipantFrames, slotIndex, stamp),
		}
		if len(item.Events) > 0 {
			frame.Events = make([]timeline.Event, 0, len(item.Events))
			for _, ev := range item.Events {
				frame.Events = append(frame.Events, normalizeEvent(ev, slotIndex))
			}
		}
		out.Frames = append(out.Frames, frame)
	}
	return out, nil
}

func normalizeParticipantFrames(items map[string]rawmatch.ParticipantFrame, slotIndex map[int]int, stamp time.Duration) []timeline.ParticipantFrame {
	if len(items) == 0 {
		return nil
	}

	bySlot := make(map[int]rawmatch.ParticipantFrame, len(items))
	for key, pf := range items {
		slot := pf.ParticipantID
		if slot == 0 {
			parsed, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			slot = parsed
		}
		bySlot[slot] = pf
	}

	out := make([]timeline.ParticipantFrame, 0, len(bySlot))
	for _, slot := range sortedSlots(bySlot) {
		idx, ok := resolveSlot(slotIndex, slot)
		if !ok {
			continue
		}
		pf := bySlot[slot]
		out = append(out, timeline.ParticipantFrame{
			ParticipantIndex:    idx,
			Timestamp:           stamp,
			MinionsKilled:       pf.MinionsKilled,
			JungleMinionsKilled: pf.JungleMinionsKilled,
			TeamScore:           pf.TeamScore,
			DominionScore:       pf.DominionScore,
			TotalGold:           pf.TotalGold,
			CurrentGold:         pf.CurrentGold,
			Level:               pf.Level,
			XP:                  pf.XP,
			Position:            mapPosition(pf.Position),
		})
	}
	return out
}

func normalizeEvent(ev rawmatch.Event, slotIndex map[int]int) timeline.Event {
	out := timeline.Event{
		Type:             ev.Type,
		Timestamp:        time.Duration(ev.Timestamp) * time.Millisecond,
		ParticipantIndex: resolveSlotRef(slotIndex, ev.ParticipantID),
		KillerIndex:      resolveSlotRef(slotIndex, ev.KillerID),
		VictimIndex:      resolveSlotRef(slotIndex, ev.VictimID),
		CreatorIndex:     resolveSlotRef(slotIndex, ev.CreatorID),
		ItemID:           ev.ItemID,
		BeforeID:         ev.BeforeID,
		AfterID:          ev.AfterID,
		SkillSlot:        ev.SkillSlot,
		LevelUpType:      ev.LevelUpType,
		WardType:         ev.WardType,
		TowerType:        ev.TowerType,
		BuildingType:     ev.BuildingType,
		LaneType:         ev.LaneType,
		MonsterType:      ev.MonsterType,
		MonsterSubType:   ev.MonsterSubType,
		AscendedType:     ev.AscendedType,
		PointCaptured:    ev.PointCaptured,
		EventType:        ev.EventType,
		TeamID:           ev.TeamID,
		Position:         mapPosition(ev.Position),
	}
	if ev.AssistingParticipantIDs != nil {
		out.AssistingIndexes = make([]int, 0, len(ev.AssistingParticipantIDs))
		for _, slot := range ev.AssistingParticipantIDs {
			if idx, ok := resolveSlot(slotIndex, slot); ok {
				out.AssistingIndexes = append(out.AssistingIndexes, idx)
			}
		}
	}
	return out
}

func resolveSlot(slotIndex map[int]int, slot int) (int, bool) {
	if slot <= 0 {
		return 0, false
	}
	idx, ok := slotIndex[slot]
	return idx, ok
}

func resolveSlotRef(slotIndex map[int]int, slot *int) *int {
	if slot == nil {
		return nil
	}
	idx, ok := resolveSlot(slotIndex, *slot)
	if !ok {
		return nil
	}
	return &idx
}

func mapPosition(p *rawmatch.Position) *timeline.Position {
	if p == nil {
		return nil
	}
	return &timeline.Position{X: p.X, Y: p.Y}
}
