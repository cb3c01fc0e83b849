package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-crawler/internal/domain/match"
	qb "github.com/riskibarqy/match-crawler/internal/platform/querybuilder"
)

// MatchRepository writes the match entity graph. Inserts carry no conflict
// clause so a duplicate surfaces as an error to the caller.
type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Exists(ctx context.Context, gameID int64) (bool, error) {
	query, args, err := qb.Select("1").From("matches").
		Where(qb.Eq("game_id", gameID)).
		ExistsSQL()
	if err != nil {
		return false, fmt.Errorf("build match exists query: %w", err)
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("check match exists: %w", err)
	}
	return exists, nil
}

func (r *MatchRepository) InsertTeam(ctx context.Context, team match.Team) error {
	model := teamInsertModel{
		ID:                   team.ID,
		GameID:               team.GameID,
		Side:                 team.Side,
		Win:                  team.Win,
		FirstBlood:           team.FirstBlood,
		FirstTower:           team.FirstTower,
		FirstInhibitor:       team.FirstInhibitor,
		FirstBaron:           team.FirstBaron,
		FirstDragon:          team.FirstDragon,
		FirstRiftHerald:      team.FirstRiftHerald,
		TowerKills:           team.TowerKills,
		InhibitorKills:       team.InhibitorKills,
		BaronKills:           team.BaronKills,
		DragonKills:          team.DragonKills,
		VilemawKills:         team.VilemawKills,
		RiftHeraldKills:      team.RiftHeraldKills,
		DominionVictoryScore: team.DominionVictoryScore,
	}
	champions := make([]int, 0, len(team.Bans))
	turns := make([]int, 0, len(team.Bans))
	for _, ban := range team.Bans {
		champions = append(champions, ban.ChampionID)
		turns = append(turns, ban.PickTurn)
	}
	model.BanChampionIDs = intsToInt64Array(champions)
	model.BanPickTurns = intsToInt64Array(turns)

	return r.insert(ctx, "teams", model, fmt.Sprintf("team id=%s", team.ID))
}

func (r *MatchRepository) InsertStat(ctx context.Context, stat match.Stat) error {
	perks, err := jsonText(stat.Perks, stat.Perks != nil)
	if err != nil {
		return fmt.Errorf("encode stat perks: %w", err)
	}

	model := statInsertModel{
		ID:    stat.ID,
		Win:   stat.Win,
		Item0: stat.Items[0],
		Item1: stat.Items[1],
		Item2: stat.Items[2],
		Item3: stat.Items[3],
		Item4: stat.Items[4],
		Item5: stat.Items[5],
		Item6: stat.Items[6],

		Kills:                  stat.Kills,
		Deaths:                 stat.Deaths,
		Assists:                stat.Assists,
		LargestKillingSpree:    stat.LargestKillingSpree,
		LargestMultiKill:       stat.LargestMultiKill,
		KillingSprees:          stat.KillingSprees,
		LongestTimeSpentLiving: stat.LongestTimeSpentLiving,
		DoubleKills:            stat.DoubleKills,
		TripleKills:            stat.TripleKills,
		QuadraKills:            stat.QuadraKills,
		PentaKills:             stat.PentaKills,
		UnrealKills:            stat.UnrealKills,

		TotalDamageDealt:               stat.TotalDamageDealt,
		MagicDamageDealt:               stat.MagicDamageDealt,
		PhysicalDamageDealt:            stat.PhysicalDamageDealt,
		TrueDamageDealt:                stat.TrueDamageDealt,
		LargestCriticalStrike:          stat.LargestCriticalStrike,
		TotalDamageDealtToChampions:    stat.TotalDamageDealtToChampions,
		MagicDamageDealtToChampions:    stat.MagicDamageDealtToChampions,
		PhysicalDamageDealtToChampions: stat.PhysicalDamageDealtToChampions,
		TrueDamageDealtToChampions:     stat.TrueDamageDealtToChampions,
		TotalHeal:                      stat.TotalHeal,
		TotalUnitsHealed:               stat.TotalUnitsHealed,
		DamageSelfMitigated:            stat.DamageSelfMitigated,
		DamageDealtToObjectives:        stat.DamageDealtToObjectives,
		DamageDealtToTurrets:           stat.DamageDealtToTurrets,
		VisionScore:                    stat.VisionScore,
		TimeCCingOthers:                stat.TimeCCingOthers,
		TotalDamageTaken:               stat.TotalDamageTaken,
		MagicalDamageTaken:             stat.MagicalDamageTaken,
		PhysicalDamageTaken:            stat.PhysicalDamageTaken,
		TrueDamageTaken:                stat.TrueDamageTaken,
		GoldEarned:                     stat.GoldEarned,
		GoldSpent:                      stat.GoldSpent,
		TurretKills:                    stat.TurretKills,
		InhibitorKills:                 stat.InhibitorKills,
		TotalMinionsKilled:             stat.TotalMinionsKilled,
		NeutralMinionsKilled:           stat.NeutralMinionsKilled,
		TotalTimeCrowdControlDealt:     stat.TotalTimeCrowdControlDealt,
		ChampLevel:                     stat.ChampLevel,
		VisionWardsBoughtInGame:        stat.VisionWardsBoughtInGame,
		SightWardsBoughtInGame:         stat.SightWardsBoughtInGame,

		CombatPlayerScore:    stat.CombatPlayerScore,
		ObjectivePlayerScore: stat.ObjectivePlayerScore,
		TotalPlayerScore:     stat.TotalPlayerScore,
		TotalScoreRank:       stat.TotalScoreRank,
		PlayerScores:         intsToInt64Array(stat.PlayerScores[:]),

		NeutralMinionsKilledTeamJungle:  stat.NeutralMinionsKilledTeamJungle,
		NeutralMinionsKilledEnemyJungle: stat.NeutralMinionsKilledEnemyJungle,
		WardsPlaced:                     stat.WardsPlaced,
		WardsKilled:                     stat.WardsKilled,
		FirstBloodKill:                  stat.FirstBloodKill,
		FirstBloodAssist:                stat.FirstBloodAssist,
		FirstTowerKill:                  stat.FirstTowerKill,
		FirstTowerAssist:                stat.FirstTowerAssist,
		FirstInhibitorKill:              stat.FirstInhibitorKill,
		FirstInhibitorAssist:            stat.FirstInhibitorAssist,

		Perks:            perks,
		PerkPrimaryStyle: stat.PerkPrimaryStyle,
		PerkSubStyle:     stat.PerkSubStyle,
	}
	if stat.StatPerks != nil {
		model.StatPerks = intsToInt64Array(stat.StatPerks)
	}

	return r.insert(ctx, "stats", model, fmt.Sprintf("stat id=%s", stat.ID))
}

func (r *MatchRepository) InsertTimeline(ctx context.Context, tl match.Timeline) error {
	model := timelineInsertModel{ID: tl.ID, Role: tl.Role, Lane: tl.Lane}

	columns := []struct {
		dst    **string
		deltas match.Deltas
	}{
		{&model.CreepsPerMinDeltas, tl.CreepsPerMinDeltas},
		{&model.XPPerMinDeltas, tl.XPPerMinDeltas},
		{&model.GoldPerMinDeltas, tl.GoldPerMinDeltas},
		{&model.CSDiffPerMinDeltas, tl.CSDiffPerMinDeltas},
		{&model.XPDiffPerMinDeltas, tl.XPDiffPerMinDeltas},
		{&model.DamageTakenPerMinDeltas, tl.DamageTakenPerMinDeltas},
		{&model.DamageTakenDiffPerMinDeltas, tl.DamageTakenDiffPerMinDeltas},
	}
	for _, col := range columns {
		encoded, err := jsonText(col.deltas, col.deltas != nil)
		if err != nil {
			return fmt.Errorf("encode timeline deltas: %w", err)
		}
		*col.dst = encoded
	}

	return r.insert(ctx, "timelines", model, fmt.Sprintf("timeline id=%s", tl.ID))
}

func (r *MatchRepository) InsertParticipant(ctx context.Context, p match.Participant) error {
	runes, err := jsonText(p.Runes, p.Runes != nil)
	if err != nil {
		return fmt.Errorf("encode participant runes: %w", err)
	}
	masteries, err := jsonText(p.Masteries, p.Masteries != nil)
	if err != nil {
		return fmt.Errorf("encode participant masteries: %w", err)
	}

	model := participantInsertModel{
		ID:                        p.ID,
		GameID:                    p.GameID,
		Slot:                      p.Slot,
		TeamID:                    p.TeamID,
		StatID:                    p.Stat.ID,
		TimelineID:                p.Timeline.ID,
		ChampionID:                p.ChampionID,
		Spell1ID:                  p.Spell1ID,
		Spell2ID:                  p.Spell2ID,
		HighestAchievedSeasonTier: p.HighestAchievedSeasonTier,
		Role:                      p.Role,
		Lane:                      p.Lane,
		Runes:                     runes,
		Masteries:                 masteries,
	}
	if !p.Identity.Unknown {
		icon := p.Identity.ProfileIcon
		model.AccountID = optionalString(p.Identity.AccountID)
		model.CurrentAccountID = optionalString(p.Identity.CurrentAccountID)
		model.SummonerID = optionalString(p.Identity.SummonerID)
		model.SummonerName = optionalString(p.Identity.SummonerName)
		model.PlatformID = optionalString(p.Identity.PlatformID)
		model.ProfileIcon = &icon
	}

	return r.insert(ctx, "participants", model, fmt.Sprintf("participant id=%s", p.ID))
}

func (r *MatchRepository) Insert(ctx context.Context, m match.Match) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("validate match: %w", err)
	}

	model := matchInsertModel{
		GameID:              m.GameID,
		PlatformID:          m.PlatformID,
		GameCreation:        optionalTime(m.GameCreation),
		GameDurationSeconds: int64(m.GameDuration.Seconds()),
		QueueID:             m.QueueID,
		MapID:               m.MapID,
		SeasonID:            m.SeasonID,
		GameVersion:         m.GameVersion,
		GameMode:            m.GameMode,
		GameType:            m.GameType,
		TeamIDs:             nonNilStrings(m.TeamIDs),
		ParticipantIDs:      nonNilStrings(m.ParticipantIDs),
	}
	return r.insert(ctx, "matches", model, fmt.Sprintf("match game_id=%d", m.GameID))
}

func (r *MatchRepository) insert(ctx context.Context, table string, model any, label string) error {
	query, args, err := qb.InsertModel(table, model, "")
	if err != nil {
		return fmt.Errorf("build insert %s query: %w", table, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert %s: already stored: %w", label, err)
		}
		return fmt.Errorf("insert %s: %w", label, err)
	}
	return nil
}
