package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/match-crawler/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
	matches map[string]map[int64]struct{}
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{
		players: make(map[string]player.Player, len(players)),
		matches: make(map[string]map[int64]struct{}),
	}
	for _, p := range players {
		r.players[p.AccountID] = p
	}
	return r
}

func (r *PlayerRepository) GetByName(_ context.Context, name string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.TrimSpace(name)
	for _, p := range r.players {
		if strings.EqualFold(p.Name, name) {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) Exists(_ context.Context, accountID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.players[accountID]
	return ok, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validate player: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[p.AccountID] = p
	return nil
}

func (r *PlayerRepository) LinkMatch(_ context.Context, accountID string, gameID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[accountID]; !ok {
		return fmt.Errorf("link player match account_id=%s: %w", accountID, ErrMissingReference)
	}
	games, ok := r.matches[accountID]
	if !ok {
		games = make(map[int64]struct{})
		r.matches[accountID] = games
	}
	games[gameID] = struct{}{}
	return nil
}

func (r *PlayerRepository) CountMatches(_ context.Context, accountID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.matches[accountID]), nil
}
