package timeline

import "context"

// Repository persists timeline frames. One frame, with its participant
// snapshots and events, is written per transaction.
type Repository interface {
	InsertFrame(ctx context.Context, gameID int64, frame Frame) error
}
