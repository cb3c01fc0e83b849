package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/match-crawler/internal/domain/timeline"
)

type frameKey struct {
	participantID string
	timestamp     time.Duration
}

// ParticipantChecker reports whether a participant row exists. The match
// repository satisfies it, which lets frame writes enforce the same
// references the relational schema does.
type ParticipantChecker interface {
	HasParticipant(id string) bool
}

type TimelineRepository struct {
	mu           sync.RWMutex
	participants ParticipantChecker
	frames       map[frameKey]timeline.ParticipantFrame
	events       map[int64][]timeline.Event
}

func NewTimelineRepository(participants ParticipantChecker) *TimelineRepository {
	return &TimelineRepository{
		participants: participants,
		frames:       make(map[frameKey]timeline.ParticipantFrame),
		events:       make(map[int64][]timeline.Event),
	}
}

// InsertFrame validates the whole frame before storing any of it.
func (r *TimelineRepository) InsertFrame(_ context.Context, gameID int64, frame timeline.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]frameKey, 0, len(frame.ParticipantFrames))
	seen := make(map[frameKey]struct{}, len(frame.ParticipantFrames))
	for _, pf := range frame.ParticipantFrames {
		ts := pf.Timestamp
		if ts == 0 {
			ts = frame.Timestamp
		}
		key := frameKey{participantID: pf.ParticipantID, timestamp: ts}
		if _, ok := r.frames[key]; ok {
			return fmt.Errorf("insert participant frame game_id=%d ts=%s: %w", gameID, ts, ErrDuplicate)
		}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("insert participant frame game_id=%d ts=%s: %w", gameID, ts, ErrDuplicate)
		}
		if !r.known(pf.ParticipantID) {
			return fmt.Errorf("insert participant frame id=%s: %w", pf.ParticipantID, ErrMissingReference)
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	for _, ev := range frame.Events {
		for _, ref := range []*string{ev.ParticipantID, ev.KillerID, ev.VictimID, ev.CreatorID} {
			if ref != nil && !r.known(*ref) {
				return fmt.Errorf("insert event type=%s participant=%s: %w", ev.Type, *ref, ErrMissingReference)
			}
		}
	}

	for i, pf := range frame.ParticipantFrames {
		r.frames[keys[i]] = pf
	}
	r.events[gameID] = append(r.events[gameID], frame.Events...)
	return nil
}

func (r *TimelineRepository) known(participantID string) bool {
	if r.participants == nil {
		return true
	}
	return r.participants.HasParticipant(participantID)
}

// Counts returns the number of stored participant frames and events for a game.
func (r *TimelineRepository) Counts(gameID int64) (frames, events int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, pf := range r.frames {
		if pf.GameID == gameID {
			frames++
		}
	}
	return frames, len(r.events[gameID])
}
