package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByName(ctx context.Context, name string) (Player, bool, error)
	Exists(ctx context.Context, accountID string) (bool, error)
	Upsert(ctx context.Context, p Player) error
	// LinkMatch records that the account took part in the game. Linking twice is a no-op.
	LinkMatch(ctx context.Context, accountID string, gameID int64) error
	CountMatches(ctx context.Context, accountID string) (int, error)
}
