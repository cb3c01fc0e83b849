package match

import "context"

// Repository describes match persistence needs from use cases.
// Every insert runs in its own transaction.
type Repository interface {
	Exists(ctx context.Context, gameID int64) (bool, error)
	InsertTeam(ctx context.Context, team Team) error
	InsertStat(ctx context.Context, stat Stat) error
	InsertTimeline(ctx context.Context, timeline Timeline) error
	InsertParticipant(ctx context.Context, participant Participant) error
	Insert(ctx context.Context, m Match) error
}
