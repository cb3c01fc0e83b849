package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-crawler/internal/domain/player"
	qb "github.com/riskibarqy/match-crawler/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"account_id",
	"summoner_id",
	"puuid",
	"name",
	"profile_icon_id",
	"summoner_level",
	"revision_date",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Expr("LOWER(name) = LOWER(?)", strings.TrimSpace(name))).
		OrderBy("updated_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player by name query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by name: %w", err)
	}

	return player.Player{
		AccountID:     row.AccountID,
		SummonerID:    row.SummonerID,
		PUUID:         row.PUUID,
		Name:          row.Name,
		ProfileIconID: row.ProfileIconID,
		SummonerLevel: row.SummonerLevel,
		RevisionDate:  timeOrZero(row.RevisionDate),
	}, true, nil
}

func (r *PlayerRepository) Exists(ctx context.Context, accountID string) (bool, error) {
	query, args, err := qb.Select("1").From("players").
		Where(qb.Eq("account_id", accountID)).
		ExistsSQL()
	if err != nil {
		return false, fmt.Errorf("build player exists query: %w", err)
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("check player exists: %w", err)
	}
	return exists, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validate player: %w", err)
	}

	insertModel := playerInsertModel{
		AccountID:     p.AccountID,
		SummonerID:    p.SummonerID,
		PUUID:         p.PUUID,
		Name:          p.Name,
		ProfileIconID: p.ProfileIconID,
		SummonerLevel: p.SummonerLevel,
		RevisionDate:  optionalTime(p.RevisionDate),
	}
	query, args, err := qb.InsertModel("players", insertModel, `ON CONFLICT (account_id)
DO UPDATE SET
    summoner_id = EXCLUDED.summoner_id,
    puuid = EXCLUDED.puuid,
    name = EXCLUDED.name,
    profile_icon_id = EXCLUDED.profile_icon_id,
    summoner_level = EXCLUDED.summoner_level,
    revision_date = EXCLUDED.revision_date,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player account_id=%s: %w", p.AccountID, err)
	}
	return nil
}

func (r *PlayerRepository) LinkMatch(ctx context.Context, accountID string, gameID int64) error {
	query, args, err := qb.InsertModel("player_matches", playerMatchInsertModel{
		AccountID: accountID,
		GameID:    gameID,
	}, "ON CONFLICT (account_id, game_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build link player match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("link player match account_id=%s: player not stored: %w", accountID, err)
		}
		return fmt.Errorf("link player match account_id=%s game_id=%d: %w", accountID, gameID, err)
	}
	return nil
}

func (r *PlayerRepository) CountMatches(ctx context.Context, accountID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("player_matches").
		Where(qb.Eq("account_id", accountID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count player matches query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count player matches: %w", err)
	}
	return count, nil
}
