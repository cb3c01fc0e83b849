package riot

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/match-crawler/internal/usecase"
)

// ErrRateLimitExhausted is returned when throttling outlasts the RetryPolicy bounds.
var ErrRateLimitExhausted = errors.New("riot rate limit retry budget exhausted")

// UpstreamError is a non-success response other than a retried throttle.
type UpstreamError struct {
	URL        string
	StatusCode int
	Reason     string
}

func (e *UpstreamError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("riot upstream status=%d url=%s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("riot upstream status=%d url=%s reason=%s", e.StatusCode, e.URL, e.Reason)
}

// Is lets a 404 match usecase.ErrNotFound.
func (e *UpstreamError) Is(target error) bool {
	return target == usecase.ErrNotFound && e.StatusCode == http.StatusNotFound
}

func IsNotFound(err error) bool {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode == http.StatusNotFound
	}
	return false
}
