package memory

import "errors"

var (
	// ErrDuplicate mirrors a unique constraint violation.
	ErrDuplicate = errors.New("duplicate key")
	// ErrMissingReference mirrors a foreign key violation.
	ErrMissingReference = errors.New("missing referenced row")
)
