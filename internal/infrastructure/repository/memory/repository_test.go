package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/match-crawler/internal/domain/match"
	"github.com/riskibarqy/match-crawler/internal/domain/player"
	"github.com/riskibarqy/match-crawler/internal/domain/timeline"
)

func TestPlayerRepository_LinkAndCount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPlayerRepository([]player.Player{{AccountID: "acc-1", Name: "Faker"}})

	got, ok, err := repo.GetByName(ctx, " faker ")
	if err != nil || !ok {
		t.Fatalf("GetByName ok=%v err=%v", ok, err)
	}
	if got.AccountID != "acc-1" {
		t.Fatalf("unexpected account id: %s", got.AccountID)
	}

	for _, gameID := range []int64{1, 2, 2} {
		if err := repo.LinkMatch(ctx, "acc-1", gameID); err != nil {
			t.Fatalf("LinkMatch(%d): %v", gameID, err)
		}
	}
	count, err := repo.CountMatches(ctx, "acc-1")
	if err != nil {
		t.Fatalf("CountMatches: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 linked matches, got %d", count)
	}

	if err := repo.LinkMatch(ctx, "missing", 1); !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference, got %v", err)
	}
	if err := repo.Upsert(ctx, player.Player{Name: "no-account"}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestMatchRepository_EnforcesKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMatchRepository()

	if err := repo.InsertTeam(ctx, match.Team{ID: "t1", GameID: 7, Side: match.SideBlue}); err != nil {
		t.Fatalf("InsertTeam: %v", err)
	}
	if err := repo.InsertTeam(ctx, match.Team{ID: "t2", GameID: 7, Side: match.SideBlue}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate side error, got %v", err)
	}

	p := match.Participant{ID: "p1", TeamID: "t1", Stat: match.Stat{ID: "s1"}, Timeline: match.Timeline{ID: "tl1"}}
	if err := repo.InsertParticipant(ctx, p); !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected missing stat reference, got %v", err)
	}
	if err := repo.InsertStat(ctx, p.Stat); err != nil {
		t.Fatalf("InsertStat: %v", err)
	}
	if err := repo.InsertTimeline(ctx, p.Timeline); err != nil {
		t.Fatalf("InsertTimeline: %v", err)
	}
	if err := repo.InsertParticipant(ctx, p); err != nil {
		t.Fatalf("InsertParticipant: %v", err)
	}

	m := match.Match{GameID: 7, PlatformID: "KR"}
	if err := repo.Insert(ctx, m); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := repo.Insert(ctx, m); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate match error, got %v", err)
	}

	exists, err := repo.Exists(ctx, 7)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}
	if matches, teams, participants := repo.Counts(); matches != 1 || teams != 1 || participants != 1 {
		t.Fatalf("unexpected counts: %d %d %d", matches, teams, participants)
	}
}

func TestTimelineRepository_InsertFrameIsAllOrNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matches := NewMatchRepository()
	_ = matches.InsertTeam(ctx, match.Team{ID: "t1", GameID: 9, Side: match.SideBlue})
	_ = matches.InsertStat(ctx, match.Stat{ID: "s1"})
	_ = matches.InsertTimeline(ctx, match.Timeline{ID: "tl1"})
	if err := matches.InsertParticipant(ctx, match.Participant{ID: "p1", TeamID: "t1", Stat: match.Stat{ID: "s1"}, Timeline: match.Timeline{ID: "tl1"}}); err != nil {
		t.Fatalf("InsertParticipant: %v", err)
	}

	repo := NewTimelineRepository(matches)
	ghost := "ghost"
	bad := timeline.Frame{
		Timestamp:         time.Minute,
		ParticipantFrames: []timeline.ParticipantFrame{{ParticipantID: "p1", GameID: 9}},
		Events:            []timeline.Event{{Type: "CHAMPION_KILL", KillerID: &ghost}},
	}
	if err := repo.InsertFrame(ctx, 9, bad); !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected missing reference, got %v", err)
	}
	if frames, events := repo.Counts(9); frames != 0 || events != 0 {
		t.Fatalf("rejected frame must not be stored, got %d frames %d events", frames, events)
	}

	good := bad
	good.Events = []timeline.Event{{Type: "ITEM_PURCHASED"}}
	if err := repo.InsertFrame(ctx, 9, good); err != nil {
		t.Fatalf("InsertFrame: %v", err)
	}
	if err := repo.InsertFrame(ctx, 9, good); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate frame, got %v", err)
	}
	if frames, events := repo.Counts(9); frames != 1 || events != 1 {
		t.Fatalf("unexpected counts: %d frames %d events", frames, events)
	}
}
