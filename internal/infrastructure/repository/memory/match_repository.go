package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/match-crawler/internal/domain/match"
)

type teamKey struct {
	gameID int64
	side   int
}

// MatchRepository keeps the match entity graph in maps and enforces the same
// keys the relational schema does.
type MatchRepository struct {
	mu           sync.RWMutex
	teams        map[string]match.Team
	teamSides    map[teamKey]struct{}
	stats        map[string]match.Stat
	timelines    map[string]match.Timeline
	participants map[string]match.Participant
	matches      map[int64]match.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		teams:        make(map[string]match.Team),
		teamSides:    make(map[teamKey]struct{}),
		stats:        make(map[string]match.Stat),
		timelines:    make(map[string]match.Timeline),
		participants: make(map[string]match.Participant),
		matches:      make(map[int64]match.Match),
	}
}

func (r *MatchRepository) Exists(_ context.Context, gameID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.matches[gameID]
	return ok, nil
}

func (r *MatchRepository) InsertTeam(_ context.Context, team match.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := teamKey{gameID: team.GameID, side: team.Side}
	if _, ok := r.teams[team.ID]; ok {
		return fmt.Errorf("insert team id=%s: %w", team.ID, ErrDuplicate)
	}
	if _, ok := r.teamSides[key]; ok {
		return fmt.Errorf("insert team game_id=%d side=%d: %w", team.GameID, team.Side, ErrDuplicate)
	}
	r.teams[team.ID] = team
	r.teamSides[key] = struct{}{}
	return nil
}

func (r *MatchRepository) InsertStat(_ context.Context, stat match.Stat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stats[stat.ID]; ok {
		return fmt.Errorf("insert stat id=%s: %w", stat.ID, ErrDuplicate)
	}
	r.stats[stat.ID] = stat
	return nil
}

func (r *MatchRepository) InsertTimeline(_ context.Context, tl match.Timeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.timelines[tl.ID]; ok {
		return fmt.Errorf("insert timeline id=%s: %w", tl.ID, ErrDuplicate)
	}
	r.timelines[tl.ID] = tl
	return nil
}

func (r *MatchRepository) InsertParticipant(_ context.Context, p match.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.participants[p.ID]; ok {
		return fmt.Errorf("insert participant id=%s: %w", p.ID, ErrDuplicate)
	}
	if _, ok := r.teams[p.TeamID]; !ok {
		return fmt.Errorf("insert participant id=%s team=%s: %w", p.ID, p.TeamID, ErrMissingReference)
	}
	if _, ok := r.stats[p.Stat.ID]; !ok {
		return fmt.Errorf("insert participant id=%s stat=%s: %w", p.ID, p.Stat.ID, ErrMissingReference)
	}
	if _, ok := r.timelines[p.Timeline.ID]; !ok {
		return fmt.Errorf("insert participant id=%s timeline=%s: %w", p.ID, p.Timeline.ID, ErrMissingReference)
	}
	r.participants[p.ID] = p
	return nil
}

func (r *MatchRepository) Insert(_ context.Context, m match.Match) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("validate match: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.matches[m.GameID]; ok {
		return fmt.Errorf("insert match game_id=%d: %w", m.GameID, ErrDuplicate)
	}
	r.matches[m.GameID] = m
	return nil
}

// HasParticipant reports whether a participant row with the id was stored.
func (r *MatchRepository) HasParticipant(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.participants[id]
	return ok
}

// Counts returns the number of stored matches, teams and participants.
func (r *MatchRepository) Counts() (matches, teams, participants int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.matches), len(r.teams), len(r.participants)
}
