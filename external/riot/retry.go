package riot

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultRateLimitDelay = 5 * time.Second

// RetryPolicy bounds the wait-and-retry loop for throttled requests.
// A zero MaxAttempts or MaxElapsed leaves that dimension unbounded; the loop
// still stops when the request context is done.
type RetryPolicy struct {
	MaxAttempts int
	MaxElapsed  time.Duration
	Delay       time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Delay: DefaultRateLimitDelay}
}

func (p RetryPolicy) normalize() RetryPolicy {
	if p.Delay <= 0 {
		p.Delay = DefaultRateLimitDelay
	}
	if p.MaxAttempts < 0 {
		p.MaxAttempts = 0
	}
	if p.MaxElapsed < 0 {
		p.MaxElapsed = 0
	}
	return p
}

// delayFor prefers a Retry-After header when it asks for a longer wait.
func (p RetryPolicy) delayFor(header http.Header) time.Duration {
	delay := p.Delay
	if advised := parseRetryAfter(header.Get("Retry-After")); advised > delay {
		delay = advised
	}
	return delay
}

// exhausted reports whether another wait of next would break a bound.
func (p RetryPolicy) exhausted(attempt int, elapsed, next time.Duration) bool {
	if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
		return true
	}
	if p.MaxElapsed > 0 && elapsed+next > p.MaxElapsed {
		return true
	}
	return false
}

func parseRetryAfter(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
