package match

import (
	"fmt"
	"time"
)

const (
	TeamsPerMatch        = 2
	ParticipantsPerMatch = 10
	ParticipantsPerTeam  = ParticipantsPerMatch / TeamsPerMatch
)

// Side values used by the upstream payload for the two teams.
const (
	SideBlue = 100
	SideRed  = 200
)

// Reference is a lightweight index entry pointing at a Match.
type Reference struct {
	GameID     int64
	PlatformID string
	Champion   int
	Queue      int
	Season     int
	Timestamp  time.Time
	Lane       string
	Role       string
}

// Window is one page of references plus the offsets used to request it.
type Window struct {
	Begin      int
	End        int
	References []Reference
}

// Match is one completed game session.
//
// TeamIDs and ParticipantIDs hold durable identifiers and are empty until the
// match crosses the persistence boundary.
type Match struct {
	GameID         int64
	PlatformID     string
	GameCreation   time.Time
	GameDuration   time.Duration
	QueueID        int
	MapID          int
	SeasonID       int
	GameVersion    string
	GameMode       string
	GameType       string
	TeamIDs        []string
	ParticipantIDs []string
}

func (m Match) Validate() error {
	if m.GameID <= 0 {
		return fmt.Errorf("match game id must be > 0")
	}
	if m.PlatformID == "" {
		return fmt.Errorf("match platform id is required")
	}
	return nil
}

type Ban struct {
	ChampionID int
	PickTurn   int
}

// Team is the per-match aggregate outcome of one side.
//
// Index is the arena index assigned during normalization; ID is assigned at
// the persistence boundary.
type Team struct {
	Index                int
	ID                   string
	GameID               int64
	Side                 int
	Win                  bool
	FirstBlood           bool
	FirstTower           bool
	FirstInhibitor       bool
	FirstBaron           bool
	FirstDragon          bool
	FirstRiftHerald      bool
	TowerKills           int
	InhibitorKills       int
	BaronKills           int
	DragonKills          int
	VilemawKills         int
	RiftHeraldKills      int
	DominionVictoryScore int
	Bans                 []Ban
}

// Identity is the external player a participant slot resolves to.
type Identity struct {
	AccountID        string
	CurrentAccountID string
	SummonerID       string
	SummonerName     string
	PlatformID       string
	ProfileIcon      int
	// Unknown marks a slot that had no entry in the identity list.
	Unknown bool
}

// EffectiveAccountID prefers the current account over the historical one.
func (i Identity) EffectiveAccountID() string {
	if i.Unknown {
		return ""
	}
	if i.CurrentAccountID != "" {
		return i.CurrentAccountID
	}
	return i.AccountID
}

type Rune struct {
	RuneID int
	Rank   int
}

type Mastery struct {
	MasteryID int
	Rank      int
}

// Participant is one of the ten players within a Match.
type Participant struct {
	Index                     int
	Slot                      int
	TeamIndex                 int
	ID                        string
	TeamID                    string
	GameID                    int64
	Identity                  Identity
	ChampionID                int
	Spell1ID                  int
	Spell2ID                  int
	HighestAchievedSeasonTier string
	Role                      string
	Lane                      string
	// Runes and Masteries are nil for payloads that predate or postdate them.
	Runes     []Rune
	Masteries []Mastery
	Stat      Stat
	Timeline  Timeline
}

// Stat is the flat bag of per-participant counters.
// Pointer fields were added in later client versions and stay nil when absent.
type Stat struct {
	ID    string
	Items [7]int
	Win   bool

	Kills                  int
	Deaths                 int
	Assists                int
	LargestKillingSpree    int
	LargestMultiKill       int
	KillingSprees          int
	LongestTimeSpentLiving int
	DoubleKills            int
	TripleKills            int
	QuadraKills            int
	PentaKills             int
	UnrealKills            int

	TotalDamageDealt                int64
	MagicDamageDealt                int64
	PhysicalDamageDealt             int64
	TrueDamageDealt                 int64
	LargestCriticalStrike           int
	TotalDamageDealtToChampions     int64
	MagicDamageDealtToChampions     int64
	PhysicalDamageDealtToChampions  int64
	TrueDamageDealtToChampions      int64
	TotalHeal                       int64
	TotalUnitsHealed                int
	DamageSelfMitigated             int64
	DamageDealtToObjectives         int64
	DamageDealtToTurrets            int64
	VisionScore                     int64
	TimeCCingOthers                 int64
	TotalDamageTaken                int64
	MagicalDamageTaken              int64
	PhysicalDamageTaken             int64
	TrueDamageTaken                 int64
	GoldEarned                      int
	GoldSpent                       int
	TurretKills                     int
	InhibitorKills                  int
	TotalMinionsKilled              int
	NeutralMinionsKilled            int
	TotalTimeCrowdControlDealt      int
	ChampLevel                      int
	VisionWardsBoughtInGame         int
	SightWardsBoughtInGame          int
	CombatPlayerScore               int
	ObjectivePlayerScore            int
	TotalPlayerScore                int
	TotalScoreRank                  int
	PlayerScores                    [10]int
	NeutralMinionsKilledTeamJungle  *int
	NeutralMinionsKilledEnemyJungle *int
	WardsPlaced                     *int
	WardsKilled                     *int
	FirstBloodKill                  *bool
	FirstBloodAssist                *bool
	FirstTowerKill                  *bool
	FirstTowerAssist                *bool
	FirstInhibitorKill              *bool
	FirstInhibitorAssist            *bool

	// Reward-track fields; nil on payloads without the reforged rune system.
	Perks            []Perk
	PerkPrimaryStyle *int
	PerkSubStyle     *int
	StatPerks        []int
}

type Perk struct {
	ID   int
	Vars [3]int
}

// Deltas maps a minute bucket such as "0-10" to a per-minute value.
// A nil Deltas means the payload did not carry the series.
type Deltas map[string]float64

// Timeline holds a participant's per-minute delta series.
type Timeline struct {
	ID                          string
	Role                        string
	Lane                        string
	CreepsPerMinDeltas          Deltas
	XPPerMinDeltas              Deltas
	GoldPerMinDeltas            Deltas
	CSDiffPerMinDeltas          Deltas
	XPDiffPerMinDeltas          Deltas
	DamageTakenPerMinDeltas     Deltas
	DamageTakenDiffPerMinDeltas Deltas
}
