package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/match-crawler/internal/domain/match"
	"github.com/riskibarqy/match-crawler/internal/domain/rawmatch"
)

func TestNormalizeMatch_ExplicitTeams(t *testing.T) {
	t.Parallel()

	got, err := NormalizeMatch(rawMatchFixture(42))
	if err != nil {
		t.Fatalf("normalize match: %v", err)
	}
	if got.Policy != TeamPolicyExplicit {
		t.Fatalf("unexpected policy: %s", got.Policy)
	}
	if got.Match.GameDuration != 31*time.Minute {
		t.Fatalf("unexpected duration: %s", got.Match.GameDuration)
	}
	if got.Match.GameCreation.IsZero() || got.Match.GameCreation.Location() != time.UTC {
		t.Fatalf("game creation must be a UTC timestamp, got %v", got.Match.GameCreation)
	}

	blue, red := got.Teams[0], got.Teams[1]
	if blue.Side != match.SideBlue || !blue.Win || !blue.FirstBlood || blue.TowerKills != 9 {
		t.Fatalf("unexpected blue team: %+v", blue)
	}
	if len(blue.Bans) != 1 || blue.Bans[0].ChampionID != 157 {
		t.Fatalf("unexpected blue bans: %+v", blue.Bans)
	}
	if red.Side != match.SideRed || red.Win || red.Bans != nil {
		t.Fatalf("unexpected red team: %+v", red)
	}

	perTeam := map[int]int{}
	for i, p := range got.Participants {
		perTeam[p.TeamIndex]++
		if p.Index != i {
			t.Fatalf("participant %d has arena index %d", i, p.Index)
		}
		if got.SlotIndex[p.Slot] != i {
			t.Fatalf("slot %d maps to %d, want %d", p.Slot, got.SlotIndex[p.Slot], i)
		}
	}
	if perTeam[0] != 5 || perTeam[1] != 5 {
		t.Fatalf("expected a 5/5 split, got %v", perTeam)
	}
	if got.Participants[0].Role != "SOLO" || got.Participants[0].Lane != "TOP" {
		t.Fatalf("role and lane must come from the participant timeline: %+v", got.Participants[0])
	}
}

func TestNormalizeMatch_SlotThresholdWhenTeamIDsAreUnusable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*rawmatch.Match)
	}{
		{
			name: "missing team ids",
			mutate: func(m *rawmatch.Match) {
				for i := range m.Participants {
					m.Participants[i].TeamID = nil
				}
			},
		},
		{
			name: "one unknown team id",
			mutate: func(m *rawmatch.Match) {
				m.Participants[3].TeamID = intPtr(300)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw := rawMatchFixture(7)
			tc.mutate(&raw)

			got, err := NormalizeMatch(raw)
			if err != nil {
				t.Fatalf("normalize match: %v", err)
			}
			if got.Policy != TeamPolicySlotThreshold {
				t.Fatalf("unexpected policy: %s", got.Policy)
			}
			for _, p := range got.Participants {
				want := 0
				if p.Slot > match.ParticipantsPerTeam {
					want = 1
				}
				if p.TeamIndex != want {
					t.Fatalf("slot %d on team %d, want %d", p.Slot, p.TeamIndex, want)
				}
			}
		})
	}
}

func TestNormalizeMatch_OptionalFieldsStayUnset(t *testing.T) {
	t.Parallel()

	raw := rawMatchFixture(9)
	raw.Participants[0].Timeline = nil
	raw.Participants[1].Stats.Perk0 = intPtr(8005)
	raw.Participants[1].Stats.Perk0Var1 = 120
	raw.Participants[1].Stats.PerkPrimaryStyle = intPtr(8000)
	raw.Participants[1].Stats.StatPerk0 = intPtr(5008)
	raw.Participants[1].Stats.WardsPlaced = intPtr(12)
	raw.Participants[2].Runes = []rawmatch.Rune{{RuneID: 5245, Rank: 9}}

	got, err := NormalizeMatch(raw)
	if err != nil {
		t.Fatalf("normalize match: %v", err)
	}

	bare := got.Participants[0]
	if bare.Runes != nil || bare.Masteries != nil {
		t.Fatalf("runes and masteries must stay nil: %+v %+v", bare.Runes, bare.Masteries)
	}
	if bare.Stat.Perks != nil || bare.Stat.StatPerks != nil || bare.Stat.WardsPlaced != nil || bare.Stat.PerkPrimaryStyle != nil {
		t.Fatalf("late stat fields must stay unset: %+v", bare.Stat)
	}
	if bare.Timeline.GoldPerMinDeltas != nil || bare.Role != "" {
		t.Fatalf("missing participant timeline must stay empty: %+v", bare.Timeline)
	}

	reforged := got.Participants[1]
	if len(reforged.Stat.Perks) != 1 || reforged.Stat.Perks[0].ID != 8005 || reforged.Stat.Perks[0].Vars[0] != 120 {
		t.Fatalf("unexpected perks: %+v", reforged.Stat.Perks)
	}
	if len(reforged.Stat.StatPerks) != 1 || reforged.Stat.StatPerks[0] != 5008 {
		t.Fatalf("unexpected stat perks: %+v", reforged.Stat.StatPerks)
	}
	if reforged.Stat.WardsPlaced == nil || *reforged.Stat.WardsPlaced != 12 {
		t.Fatalf("wards placed must be carried")
	}

	if len(got.Participants[2].Runes) != 1 {
		t.Fatalf("runes must be carried when present")
	}
}

func TestNormalizeMatch_UnknownIdentity(t *testing.T) {
	t.Parallel()

	raw := rawMatchFixture(11)
	raw.ParticipantIdentities = raw.ParticipantIdentities[:9]
	raw.ParticipantIdentities[4].Player = nil

	got, err := NormalizeMatch(raw)
	if err != nil {
		t.Fatalf("normalize match: %v", err)
	}
	if !got.Participants[9].Identity.Unknown || !got.Participants[4].Identity.Unknown {
		t.Fatalf("slots without identity must be unknown")
	}
	if got.Participants[9].Identity.EffectiveAccountID() != "" {
		t.Fatalf("unknown identity must not resolve to an account")
	}
	if n := len(got.Identities()); n != 8 {
		t.Fatalf("expected 8 known identities, got %d", n)
	}
}

func TestNormalizeMatch_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*rawmatch.Match)
	}{
		{name: "missing game id", mutate: func(m *rawmatch.Match) { m.GameID = 0 }},
		{name: "nine participants", mutate: func(m *rawmatch.Match) { m.Participants = m.Participants[:9] }},
		{name: "duplicate slot", mutate: func(m *rawmatch.Match) { m.Participants[9].ParticipantID = 1 }},
		{name: "uneven explicit split", mutate: func(m *rawmatch.Match) { m.Participants[9].TeamID = intPtr(match.SideBlue) }},
		{name: "explicit teams with slot zero", mutate: func(m *rawmatch.Match) { m.Participants[0].ParticipantID = 0 }},
		{name: "explicit teams with slot eleven", mutate: func(m *rawmatch.Match) { m.Participants[9].ParticipantID = 11 }},
		{
			name: "slot out of range",
			mutate: func(m *rawmatch.Match) {
				for i := range m.Participants {
					m.Participants[i].TeamID = nil
				}
				m.Participants[9].ParticipantID = 11
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw := rawMatchFixture(13)
			tc.mutate(&raw)

			if _, err := NormalizeMatch(raw); !errors.Is(err, ErrMalformedMatch) {
				t.Fatalf("expected ErrMalformedMatch, got %v", err)
			}
		})
	}
}
