package postgres

import (
	"time"

	"github.com/lib/pq"
)

type playerTableModel struct {
	AccountID     string     `db:"account_id"`
	SummonerID    string     `db:"summoner_id"`
	PUUID         string     `db:"puuid"`
	Name          string     `db:"name"`
	ProfileIconID int        `db:"profile_icon_id"`
	SummonerLevel int64      `db:"summoner_level"`
	RevisionDate  *time.Time `db:"revision_date"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type playerInsertModel struct {
	AccountID     string     `db:"account_id"`
	SummonerID    string     `db:"summoner_id"`
	PUUID         string     `db:"puuid"`
	Name          string     `db:"name"`
	ProfileIconID int        `db:"profile_icon_id"`
	SummonerLevel int64      `db:"summoner_level"`
	RevisionDate  *time.Time `db:"revision_date"`
}

type playerMatchInsertModel struct {
	AccountID string `db:"account_id"`
	GameID    int64  `db:"game_id"`
}

type teamInsertModel struct {
	ID                   string        `db:"id"`
	GameID               int64         `db:"game_id"`
	Side                 int           `db:"side"`
	Win                  bool          `db:"win"`
	FirstBlood           bool          `db:"first_blood"`
	FirstTower           bool          `db:"first_tower"`
	FirstInhibitor       bool          `db:"first_inhibitor"`
	FirstBaron           bool          `db:"first_baron"`
	FirstDragon          bool          `db:"first_dragon"`
	FirstRiftHerald      bool          `db:"first_rift_herald"`
	TowerKills           int           `db:"tower_kills"`
	InhibitorKills       int           `db:"inhibitor_kills"`
	BaronKills           int           `db:"baron_kills"`
	DragonKills          int           `db:"dragon_kills"`
	VilemawKills         int           `db:"vilemaw_kills"`
	RiftHeraldKills      int           `db:"rift_herald_kills"`
	DominionVictoryScore int           `db:"dominion_victory_score"`
	BanChampionIDs       pq.Int64Array `db:"ban_champion_ids"`
	BanPickTurns         pq.Int64Array `db:"ban_pick_turns"`
}

type statInsertModel struct {
	ID    string `db:"id"`
	Win   bool   `db:"win"`
	Item0 int    `db:"item0"`
	Item1 int    `db:"item1"`
	Item2 int    `db:"item2"`
	Item3 int    `db:"item3"`
	Item4 int    `db:"item4"`
	Item5 int    `db:"item5"`
	Item6 int    `db:"item6"`

	Kills                  int `db:"kills"`
	Deaths                 int `db:"deaths"`
	Assists                int `db:"assists"`
	LargestKillingSpree    int `db:"largest_killing_spree"`
	LargestMultiKill       int `db:"largest_multi_kill"`
	KillingSprees          int `db:"killing_sprees"`
	LongestTimeSpentLiving int `db:"longest_time_spent_living"`
	DoubleKills            int `db:"double_kills"`
	TripleKills            int `db:"triple_kills"`
	QuadraKills            int `db:"quadra_kills"`
	PentaKills             int `db:"penta_kills"`
	UnrealKills            int `db:"unreal_kills"`

	TotalDamageDealt               int64 `db:"total_damage_dealt"`
	MagicDamageDealt               int64 `db:"magic_damage_dealt"`
	PhysicalDamageDealt            int64 `db:"physical_damage_dealt"`
	TrueDamageDealt                int64 `db:"true_damage_dealt"`
	LargestCriticalStrike          int   `db:"largest_critical_strike"`
	TotalDamageDealtToChampions    int64 `db:"total_damage_dealt_to_champions"`
	MagicDamageDealtToChampions    int64 `db:"magic_damage_dealt_to_champions"`
	PhysicalDamageDealtToChampions int64 `db:"physical_damage_dealt_to_champions"`
	TrueDamageDealtToChampions     int64 `db:"true_damage_dealt_to_champions"`
	TotalHeal                      int64 `db:"total_heal"`
	TotalUnitsHealed               int   `db:"total_units_healed"`
	DamageSelfMitigated            int64 `db:"damage_self_mitigated"`
	DamageDealtToObjectives        int64 `db:"damage_dealt_to_objectives"`
	DamageDealtToTurrets           int64 `db:"damage_dealt_to_turrets"`
	VisionScore                    int64 `db:"vision_score"`
	TimeCCingOthers                int64 `db:"time_ccing_others"`
	TotalDamageTaken               int64 `db:"total_damage_taken"`
	MagicalDamageTaken             int64 `db:"magical_damage_taken"`
	PhysicalDamageTaken            int64 `db:"physical_damage_taken"`
	TrueDamageTaken                int64 `db:"true_damage_taken"`
	GoldEarned                     int   `db:"gold_earned"`
	GoldSpent                      int   `db:"gold_spent"`
	TurretKills                    int   `db:"turret_kills"`
	InhibitorKills                 int   `db:"inhibitor_kills"`
	TotalMinionsKilled             int   `db:"total_minions_killed"`
	NeutralMinionsKilled           int   `db:"neutral_minions_killed"`
	TotalTimeCrowdControlDealt     int   `db:"total_time_crowd_control_dealt"`
	ChampLevel                     int   `db:"champ_level"`
	VisionWardsBoughtInGame        int   `db:"vision_wards_bought_in_game"`
	SightWardsBoughtInGame         int   `db:"sight_wards_bought_in_game"`

	CombatPlayerScore    int           `db:"combat_player_score"`
	ObjectivePlayerScore int           `db:"objective_player_score"`
	TotalPlayerScore     int           `db:"total_player_score"`
	TotalScoreRank       int           `db:"total_score_rank"`
	PlayerScores         pq.Int64Array `db:"player_scores"`

	NeutralMinionsKilledTeamJungle  *int  `db:"neutral_minions_killed_team_jungle"`
	NeutralMinionsKilledEnemyJungle *int  `db:"neutral_minions_killed_enemy_jungle"`
	WardsPlaced                     *int  `db:"wards_placed"`
	WardsKilled                     *int  `db:"wards_killed"`
	FirstBloodKill                  *bool `db:"first_blood_kill"`
	FirstBloodAssist                *bool `db:"first_blood_assist"`
	FirstTowerKill                  *bool `db:"first_tower_kill"`
	FirstTowerAssist                *bool `db:"first_tower_assist"`
	FirstInhibitorKill              *bool `db:"first_inhibitor_kill"`
	FirstInhibitorAssist            *bool `db:"first_inhibitor_assist"`

	Perks            *string       `db:"perks"`
	PerkPrimaryStyle *int          `db:"perk_primary_style"`
	PerkSubStyle     *int          `db:"perk_sub_style"`
	StatPerks        pq.Int64Array `db:"stat_perks"`
}

type timelineInsertModel struct {
	ID                          string  `db:"id"`
	Role                        string  `db:"role"`
	Lane                        string  `db:"lane"`
	CreepsPerMinDeltas          *string `db:"creeps_per_min_deltas"`
	XPPerMinDeltas              *string `db:"xp_per_min_deltas"`
	GoldPerMinDeltas            *string `db:"gold_per_min_deltas"`
	CSDiffPerMinDeltas          *string `db:"cs_diff_per_min_deltas"`
	XPDiffPerMinDeltas          *string `db:"xp_diff_per_min_deltas"`
	DamageTakenPerMinDeltas     *string `db:"damage_taken_per_min_deltas"`
	DamageTakenDiffPerMinDeltas *string `db:"damage_taken_diff_per_min_deltas"`
}

type participantInsertModel struct {
	ID                        string  `db:"id"`
	GameID                    int64   `db:"game_id"`
	Slot                      int     `db:"slot"`
	TeamID                    string  `db:"team_id"`
	StatID                    string  `db:"stat_id"`
	TimelineID                string  `db:"timeline_id"`
	AccountID                 *string `db:"account_id"`
	CurrentAccountID          *string `db:"current_account_id"`
	SummonerID                *string `db:"summoner_id"`
	SummonerName              *string `db:"summoner_name"`
	PlatformID                *string `db:"platform_id"`
	ProfileIcon               *int    `db:"profile_icon"`
	ChampionID                int     `db:"champion_id"`
	Spell1ID                  int     `db:"spell1_id"`
	Spell2ID                  int     `db:"spell2_id"`
	HighestAchievedSeasonTier string  `db:"highest_achieved_season_tier"`
	Role                      string  `db:"role"`
	Lane                      string  `db:"lane"`
	Runes                     *string `db:"runes"`
	Masteries                 *string `db:"masteries"`
}

type matchInsertModel struct {
	GameID              int64          `db:"game_id"`
	PlatformID          string         `db:"platform_id"`
	GameCreation        *time.Time     `db:"game_creation"`
	GameDurationSeconds int64          `db:"game_duration_seconds"`
	QueueID             int            `db:"queue_id"`
	MapID               int            `db:"map_id"`
	SeasonID            int            `db:"season_id"`
	GameVersion         string         `db:"game_version"`
	GameMode            string         `db:"game_mode"`
	GameType            string         `db:"game_type"`
	TeamIDs             pq.StringArray `db:"team_ids"`
	ParticipantIDs      pq.StringArray `db:"participant_ids"`
}

type participantFrameInsertModel struct {
	ParticipantID       string `db:"participant_id"`
	GameID              int64  `db:"game_id"`
	TimestampMs         int64  `db:"timestamp_ms"`
	MinionsKilled       int    `db:"minions_killed"`
	JungleMinionsKilled int    `db:"jungle_minions_killed"`
	TeamScore           int    `db:"team_score"`
	DominionScore       int    `db:"dominion_score"`
	TotalGold           int    `db:"total_gold"`
	CurrentGold         int    `db:"current_gold"`
	Level               int    `db:"level"`
	XP                  int    `db:"xp"`
	PositionX           *int   `db:"position_x"`
	PositionY           *int   `db:"position_y"`
}

type eventInsertModel struct {
	GameID                  int64          `db:"game_id"`
	Type                    string         `db:"type"`
	TimestampMs             int64          `db:"timestamp_ms"`
	ParticipantID           *string        `db:"participant_id"`
	KillerID                *string        `db:"killer_id"`
	VictimID                *string        `db:"victim_id"`
	CreatorID               *string        `db:"creator_id"`
	AssistingParticipantIDs pq.StringArray `db:"assisting_participant_ids"`
	ItemID                  *int           `db:"item_id"`
	BeforeID                *int           `db:"before_id"`
	AfterID                 *int           `db:"after_id"`
	SkillSlot               *int           `db:"skill_slot"`
	LevelUpType             *string        `db:"level_up_type"`
	WardType                *string        `db:"ward_type"`
	TowerType               *string        `db:"tower_type"`
	BuildingType            *string        `db:"building_type"`
	LaneType                *string        `db:"lane_type"`
	MonsterType             *string        `db:"monster_type"`
	MonsterSubType          *string        `db:"monster_sub_type"`
	AscendedType            *string        `db:"ascended_type"`
	PointCaptured           *string        `db:"point_captured"`
	EventType               *string        `db:"event_type"`
	TeamID                  *int           `db:"team_id"`
	PositionX               *int           `db:"position_x"`
	PositionY               *int           `db:"position_y"`
}
