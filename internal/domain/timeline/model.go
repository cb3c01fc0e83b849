package timeline

import "time"

type Position struct {
	X int
	Y int
}

// MatchTimeline is the ordered frame sequence captured during a match.
type MatchTimeline struct {
	GameID        int64
	FrameInterval time.Duration
	Frames        []Frame
}

type Frame struct {
	Timestamp         time.Duration
	ParticipantFrames []ParticipantFrame
	Events            []Event
}

// ParticipantFrame is one participant's snapshot at a frame timestamp.
// ParticipantIndex is the arena index from the match normalization pass.
type ParticipantFrame struct {
	ParticipantIndex    int
	ParticipantID       string
	GameID              int64
	Timestamp           time.Duration
	MinionsKilled       int
	JungleMinionsKilled int
	TeamScore           int
	DominionScore       int
	TotalGold           int
	CurrentGold         int
	Level               int
	XP                  int
	Position            *Position
}

// Event is a typed occurrence. Fields outside the ones its type uses stay nil.
// Participant references are arena indices.
type Event struct {
	GameID                  int64
	Type                    string
	Timestamp               time.Duration
	ParticipantIndex        *int
	KillerIndex             *int
	VictimIndex             *int
	CreatorIndex            *int
	AssistingIndexes        []int
	ParticipantID           *string
	KillerID                *string
	VictimID                *string
	CreatorID               *string
	AssistingParticipantIDs []string
	ItemID                  *int
	BeforeID                *int
	AfterID                 *int
	SkillSlot               *int
	LevelUpType             *string
	WardType                *string
	TowerType               *string
	BuildingType            *string
	LaneType                *string
	MonsterType             *string
	MonsterSubType          *string
	AscendedType            *string
	PointCaptured           *string
	EventType               *string
	TeamID                  *int
	Position                *Position
}

// ParticipantFrameCount returns the number of participant snapshots over all frames.
func (t MatchTimeline) ParticipantFrameCount() int {
	total := 0
	for _, f := range t.Frames {
		total += len(f.ParticipantFrames)
	}
	return total
}

// EventCount returns the number of events over all frames.
func (t MatchTimeline) EventCount() int {
	total := 0
	for _, f := range t.Frames {
		total += len(f.Events)
	}
	return total
}
