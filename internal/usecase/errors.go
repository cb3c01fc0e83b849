package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrPersistenceConflict wraps a rolled-back entity write. The crawl logs it
	// and moves on; it is never returned from RunCrawl.
	ErrPersistenceConflict = errors.New("persistence conflict")
	ErrMalformedMatch      = errors.New("malformed match payload")
	// ErrCrawlNotStarted marks RunCrawl failures that happened before any
	// match reference was processed. A per-match failure never carries it.
	ErrCrawlNotStarted = errors.New("crawl not started")
)
