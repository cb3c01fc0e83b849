package cache

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/match-crawler/internal/domain/player"
	basecache "github.com/riskibarqy/match-crawler/internal/platform/cache"
)

type playerLookup struct {
	player player.Player
	found  bool
}

// PlayerRepository caches player lookups in front of another repository.
// Only hits are cached so a player stored by a later crawl is seen at once.
// Match link counts are never cached; they drive the resume offset.
type PlayerRepository struct {
	next   player.Repository
	byName *basecache.Store[playerLookup]
	known  *basecache.Store[bool]
}

func NewPlayerRepository(next player.Repository, ttl time.Duration) *PlayerRepository {
	return &PlayerRepository{
		next:   next,
		byName: basecache.NewStore[playerLookup](ttl),
		known:  basecache.NewStore[bool](ttl),
	}
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	v, err := r.byName.GetOrLoad(ctx, nameKey(name), func(ctx context.Context) (playerLookup, error) {
		p, found, err := r.next.GetByName(ctx, name)
		return playerLookup{player: p, found: found}, err
	}, func(v playerLookup) bool { return v.found })
	if err != nil {
		return player.Player{}, false, err
	}
	return v.player, v.found, nil
}

func (r *PlayerRepository) Exists(ctx context.Context, accountID string) (bool, error) {
	return r.known.GetOrLoad(ctx, "account:"+accountID, func(ctx context.Context) (bool, error) {
		return r.next.Exists(ctx, accountID)
	}, func(v bool) bool { return v })
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	if err := r.next.Upsert(ctx, p); err != nil {
		return err
	}
	r.byName.Delete(ctx, nameKey(p.Name))
	r.known.Set(ctx, "account:"+p.AccountID, true)
	return nil
}

func (r *PlayerRepository) LinkMatch(ctx context.Context, accountID string, gameID int64) error {
	return r.next.LinkMatch(ctx, accountID, gameID)
}

func (r *PlayerRepository) CountMatches(ctx context.Context, accountID string) (int, error) {
	return r.next.CountMatches(ctx, accountID)
}

func nameKey(name string) string {
	return "name:" + strings.ToLower(strings.TrimSpace(name))
}
