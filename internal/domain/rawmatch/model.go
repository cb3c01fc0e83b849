// Package rawmatch declares the upstream payload shapes.
//
// Value fields are mandatory and decode to their zero value when missing.
// Pointer, slice and map fields are optional: nil means the payload did not
// carry them, and consumers must not treat that as an error.
package rawmatch

type Summoner struct {
	AccountID     string `json:"accountId"`
	ID            string `json:"id"`
	PUUID         string `json:"puuid"`
	Name          string `json:"name"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int64  `json:"summonerLevel"`
}

type Matchlist struct {
	Matches    []MatchReference `json:"matches"`
	StartIndex int              `json:"startIndex"`
	EndIndex   int              `json:"endIndex"`
	TotalGames int              `json:"totalGames"`
}

type MatchReference struct {
	GameID     int64  `json:"gameId"`
	PlatformID string `json:"platformId"`
	Champion   int    `json:"champion"`
	Queue      int    `json:"queue"`
	Season     int    `json:"season"`
	Timestamp  int64  `json:"timestamp"`
	Lane       string `json:"lane"`
	Role       string `json:"role"`
}

type Match struct {
	GameID                int64                 `json:"gameId"`
	PlatformID            string                `json:"platformId"`
	GameCreation          int64                 `json:"gameCreation"`
	GameDuration          int64                 `json:"gameDuration"`
	QueueID               int                   `json:"queueId"`
	MapID                 int                   `json:"mapId"`
	SeasonID              int                   `json:"seasonId"`
	GameVersion           string                `json:"gameVersion"`
	GameMode              string                `json:"gameMode"`
	GameType              string                `json:"gameType"`
	Teams                 []TeamStats           `json:"teams"`
	Participants          []Participant         `json:"participants"`
	ParticipantIdentities []ParticipantIdentity `json:"participantIdentities"`
}

type TeamStats struct {
	TeamID               int        `json:"teamId"`
	Win                  string     `json:"win"`
	FirstBlood           bool       `json:"firstBlood"`
	FirstTower           bool       `json:"firstTower"`
	FirstInhibitor       bool       `json:"firstInhibitor"`
	FirstBaron           bool       `json:"firstBaron"`
	FirstDragon          bool       `json:"firstDragon"`
	FirstRiftHerald      bool       `json:"firstRiftHerald"`
	TowerKills           int        `json:"towerKills"`
	InhibitorKills       int        `json:"inhibitorKills"`
	BaronKills           int        `json:"baronKills"`
	DragonKills          int        `json:"dragonKills"`
	VilemawKills         int        `json:"vilemawKills"`
	RiftHeraldKills      int        `json:"riftHeraldKills"`
	DominionVictoryScore int        `json:"dominionVictoryScore"`
	Bans                 []TeamBans `json:"bans"`
}

type TeamBans struct {
	ChampionID int `json:"championId"`
	PickTurn   int `json:"pickTurn"`
}

type ParticipantIdentity struct {
	ParticipantID int     `json:"participantId"`
	Player        *Player `json:"player"`
}

type Player struct {
	PlatformID        string `json:"platformId"`
	AccountID         string `json:"accountId"`
	CurrentPlatformID string `json:"currentPlatformId"`
	CurrentAccountID  string `json:"currentAccountId"`
	SummonerName      string `json:"summonerName"`
	SummonerID        string `json:"summonerId"`
	MatchHistoryURI   string `json:"matchHistoryUri"`
	ProfileIcon       int    `json:"profileIcon"`
}

type Participant struct {
	ParticipantID             int                  `json:"participantId"`
	TeamID                    *int                 `json:"teamId"`
	ChampionID                int                  `json:"championId"`
	Spell1ID                  int                  `json:"spell1Id"`
	Spell2ID                  int                  `json:"spell2Id"`
	HighestAchievedSeasonTier string               `json:"highestAchievedSeasonTier"`
	Runes                     []Rune               `json:"runes"`
	Masteries                 []Mastery            `json:"masteries"`
	Stats                     ParticipantStats     `json:"stats"`
	Timeline                  *ParticipantTimeline `json:"timeline"`
}

type Rune struct {
	RuneID int `json:"runeId"`
	Rank   int `json:"rank"`
}

type Mastery struct {
	MasteryID int `json:"masteryId"`
	Rank      int `json:"rank"`
}

type ParticipantStats struct {
	ParticipantID int  `json:"participantId"`
	Win           bool `json:"win"`

	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`
	Item6 int `json:"item6"`

	Kills                  int `json:"kills"`
	Deaths                 int `json:"deaths"`
	Assists                int `json:"assists"`
	LargestKillingSpree    int `json:"largestKillingSpree"`
	LargestMultiKill       int `json:"largestMultiKill"`
	KillingSprees          int `json:"killingSprees"`
	LongestTimeSpentLiving int `json:"longestTimeSpentLiving"`
	DoubleKills            int `json:"doubleKills"`
	TripleKills            int `json:"tripleKills"`
	QuadraKills            int `json:"quadraKills"`
	PentaKills             int `json:"pentaKills"`
	UnrealKills            int `json:"unrealKills"`

	TotalDamageDealt               int64 `json:"totalDamageDealt"`
	MagicDamageDealt               int64 `json:"magicDamageDealt"`
	PhysicalDamageDealt            int64 `json:"physicalDamageDealt"`
	TrueDamageDealt                int64 `json:"trueDamageDealt"`
	LargestCriticalStrike          int   `json:"largestCriticalStrike"`
	TotalDamageDealtToChampions    int64 `json:"totalDamageDealtToChampions"`
	MagicDamageDealtToChampions    int64 `json:"magicDamageDealtToChampions"`
	PhysicalDamageDealtToChampions int64 `json:"physicalDamageDealtToChampions"`
	TrueDamageDealtToChampions     int64 `json:"trueDamageDealtToChampions"`
	TotalHeal                      int64 `json:"totalHeal"`
	TotalUnitsHealed               int   `json:"totalUnitsHealed"`
	DamageSelfMitigated            int64 `json:"damageSelfMitigated"`
	DamageDealtToObjectives        int64 `json:"damageDealtToObjectives"`
	DamageDealtToTurrets           int64 `json:"damageDealtToTurrets"`
	VisionScore                    int64 `json:"visionScore"`
	TimeCCingOthers                int64 `json:"timeCCingOthers"`
	TotalDamageTaken               int64 `json:"totalDamageTaken"`
	MagicalDamageTaken             int64 `json:"magicalDamageTaken"`
	PhysicalDamageTaken            int64 `json:"physicalDamageTaken"`
	TrueDamageTaken                int64 `json:"trueDamageTaken"`
	GoldEarned                     int   `json:"goldEarned"`
	GoldSpent                      int   `json:"goldSpent"`
	TurretKills                    int   `json:"turretKills"`
	InhibitorKills                 int   `json:"inhibitorKills"`
	TotalMinionsKilled             int   `json:"totalMinionsKilled"`
	NeutralMinionsKilled           int   `json:"neutralMinionsKilled"`
	TotalTimeCrowdControlDealt     int   `json:"totalTimeCrowdControlDealt"`
	ChampLevel                     int   `json:"champLevel"`
	VisionWardsBoughtInGame        int   `json:"visionWardsBoughtInGame"`
	SightWardsBoughtInGame         int   `json:"sightWardsBoughtInGame"`

	CombatPlayerScore    int `json:"combatPlayerScore"`
	ObjectivePlayerScore int `json:"objectivePlayerScore"`
	TotalPlayerScore     int `json:"totalPlayerScore"`
	TotalScoreRank       int `json:"totalScoreRank"`
	PlayerScore0         int `json:"playerScore0"`
	PlayerScore1         int `json:"playerScore1"`
	PlayerScore2         int `json:"playerScore2"`
	PlayerScore3         int `json:"playerScore3"`
	PlayerScore4         int `json:"playerScore4"`
	PlayerScore5         int `json:"playerScore5"`
	PlayerScore6         int `json:"playerScore6"`
	PlayerScore7         int `json:"playerScore7"`
	PlayerScore8         int `json:"playerScore8"`
	PlayerScore9         int `json:"playerScore9"`

	NeutralMinionsKilledTeamJungle  *int  `json:"neutralMinionsKilledTeamJungle"`
	NeutralMinionsKilledEnemyJungle *int  `json:"neutralMinionsKilledEnemyJungle"`
	WardsPlaced                     *int  `json:"wardsPlaced"`
	WardsKilled                     *int  `json:"wardsKilled"`
	FirstBloodKill                  *bool `json:"firstBloodKill"`
	FirstBloodAssist                *bool `json:"firstBloodAssist"`
	FirstTowerKill                  *bool `json:"firstTowerKill"`
	FirstTowerAssist                *bool `json:"firstTowerAssist"`
	FirstInhibitorKill              *bool `json:"firstInhibitorKill"`
	FirstInhibitorAssist            *bool `json:"firstInhibitorAssist"`

	Perk0            *int `json:"perk0"`
	Perk0Var1        int  `json:"perk0Var1"`
	Perk0Var2        int  `json:"perk0Var2"`
	Perk0Var3        int  `json:"perk0Var3"`
	Perk1            *int `json:"perk1"`
	Perk1Var1        int  `json:"perk1Var1"`
	Perk1Var2        int  `json:"perk1Var2"`
	Perk1Var3        int  `json:"perk1Var3"`
	Perk2            *int `json:"perk2"`
	Perk2Var1        int  `json:"perk2Var1"`
	Perk2Var2        int  `json:"perk2Var2"`
	Perk2Var3        int  `json:"perk2Var3"`
	Perk3            *int `json:"perk3"`
	Perk3Var1        int  `json:"perk3Var1"`
	Perk3Var2        int  `json:"perk3Var2"`
	Perk3Var3        int  `json:"perk3Var3"`
	Perk4            *int `json:"perk4"`
	Perk4Var1        int  `json:"perk4Var1"`
	Perk4Var2        int  `json:"perk4Var2"`
	Perk4Var3        int  `json:"perk4Var3"`
	Perk5            *int `json:"perk5"`
	Perk5Var1        int  `json:"perk5Var1"`
	Perk5Var2        int  `json:"perk5Var2"`
	Perk5Var3        int  `json:"perk5Var3"`
	PerkPrimaryStyle *int `json:"perkPrimaryStyle"`
	PerkSubStyle     *int `json:"perkSubStyle"`
	StatPerk0        *int `json:"statPerk0"`
	StatPerk1        *int `json:"statPerk1"`
	StatPerk2        *int `json:"statPerk2"`
}

type ParticipantTimeline struct {
	ParticipantID               int                `json:"participantId"`
	Role                        string             `json:"role"`
	Lane                        string             `json:"lane"`
	CreepsPerMinDeltas          map[string]float64 `json:"creepsPerMinDeltas"`
	XPPerMinDeltas              map[string]float64 `json:"xpPerMinDeltas"`
	GoldPerMinDeltas            map[string]float64 `json:"goldPerMinDeltas"`
	CSDiffPerMinDeltas          map[string]float64 `json:"csDiffPerMinDeltas"`
	XPDiffPerMinDeltas          map[string]float64 `json:"xpDiffPerMinDeltas"`
	DamageTakenPerMinDeltas     map[string]float64 `json:"damageTakenPerMinDeltas"`
	DamageTakenDiffPerMinDeltas map[string]float64 `json:"damageTakenDiffPerMinDeltas"`
}

type Timeline struct {
	FrameInterval int64   `json:"frameInterval"`
	Frames        []Frame `json:"frames"`
}

type Frame struct {
	Timestamp         int64                       `json:"timestamp"`
	ParticipantFrames map[string]ParticipantFrame `json:"participantFrames"`
	Events            []Event                     `json:"events"`
}

type ParticipantFrame struct {
	ParticipantID       int       `json:"participantId"`
	MinionsKilled       int       `json:"minionsKilled"`
	JungleMinionsKilled int       `json:"jungleMinionsKilled"`
	TeamScore           int       `json:"teamScore"`
	DominionScore       int       `json:"dominionScore"`
	TotalGold           int       `json:"totalGold"`
	CurrentGold         int       `json:"currentGold"`
	Level               int       `json:"level"`
	XP                  int       `json:"xp"`
	Position            *Position `json:"position"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Event struct {
	Type                    string    `json:"type"`
	Timestamp               int64     `json:"timestamp"`
	ParticipantID           *int      `json:"participantId"`
	KillerID                *int      `json:"killerId"`
	VictimID                *int      `json:"victimId"`
	CreatorID               *int      `json:"creatorId"`
	AssistingParticipantIDs []int     `json:"assistingParticipantIds"`
	ItemID                  *int      `json:"itemId"`
	BeforeID                *int      `json:"beforeId"`
	AfterID                 *int      `json:"afterId"`
	SkillSlot               *int      `json:"skillSlot"`
	LevelUpType             *string   `json:"levelUpType"`
	WardType                *string   `json:"wardType"`
	TowerType               *string   `json:"towerType"`
	BuildingType            *string   `json:"buildingType"`
	LaneType                *string   `json:"laneType"`
	MonsterType             *string   `json:"monsterType"`
	MonsterSubType          *string   `json:"monsterSubType"`
	AscendedType            *string   `json:"ascendedType"`
	PointCaptured           *string   `json:"pointCaptured"`
	EventType               *string   `json:"eventType"`
	TeamID                  *int      `json:"teamId"`
	Position                *Position `json:"position"`
}
