package usecase

import (
	"testing"

	idgen "github.com/riskibarqy/match-crawler/internal/platform/id"
)

func TestAssignIdentifiers_ResolvesArenaReferences(t *testing.T) {
	t.Parallel()

	nm, err := NormalizeMatch(rawMatchFixture(31))
	if err != nil {
		t.Fatalf("normalize match: %v", err)
	}
	tl, err := NormalizeTimeline(rawTimelineFixture(), nm.SlotIndex)
	if err != nil {
		t.Fatalf("normalize timeline: %v", err)
	}

	if err := assignIdentifiers(&nm, &tl, idgen.NewSequenceGenerator("id")); err != nil {
		t.Fatalf("assign identifiers: %v", err)
	}

	if len(nm.Match.TeamIDs) != 2 || nm.Match.TeamIDs[0] != nm.Teams[0].ID || nm.Teams[1].ID == "" {
		t.Fatalf("unexpected team ids: %v", nm.Match.TeamIDs)
	}
	if len(nm.Match.ParticipantIDs) != 10 {
		t.Fatalf("expected 10 participant ids, got %d", len(nm.Match.ParticipantIDs))
	}

	seen := map[string]bool{}
	for _, p := range nm.Participants {
		for _, id := range []string{p.ID, p.Stat.ID, p.Timeline.ID} {
			if id == "" || seen[id] {
				t.Fatalf("ids must be set and unique, got %q", id)
			}
			seen[id] = true
		}
		if p.TeamID != nm.Teams[p.TeamIndex].ID {
			t.Fatalf("participant slot %d points at team %s", p.Slot, p.TeamID)
		}
		if p.GameID != 31 {
			t.Fatalf("participant game id not set")
		}
	}

	if tl.GameID != 31 {
		t.Fatalf("timeline game id not set")
	}
	for _, pf := range tl.Frames[0].ParticipantFrames {
		if pf.ParticipantID != nm.Participants[pf.ParticipantIndex].ID || pf.GameID != 31 {
			t.Fatalf("snapshot not resolved: %+v", pf)
		}
	}

	kill := tl.Frames[1].Events[0]
	if kill.KillerID == nil || *kill.KillerID != nm.Participants[nm.SlotIndex[1]].ID {
		t.Fatalf("killer id not resolved")
	}
	if len(kill.AssistingParticipantIDs) != 2 {
		t.Fatalf("unexpected assisting ids: %v", kill.AssistingParticipantIDs)
	}
	if purchase := tl.Frames[1].Events[1]; purchase.ParticipantID != nil {
		t.Fatalf("unresolved participant must stay nil")
	}
}

func TestAssignIdentifiers_WithoutTimeline(t *testing.T) {
	t.Parallel()

	nm, err := NormalizeMatch(rawMatchFixture(32))
	if err != nil {
		t.Fatalf("normalize match: %v", err)
	}
	if err := assignIdentifiers(&nm, nil, idgen.NewSequenceGenerator("id")); err != nil {
		t.Fatalf("assign identifiers: %v", err)
	}
	if nm.Participants[0].ID == "" {
		t.Fatalf("participant id not assigned")
	}
}
