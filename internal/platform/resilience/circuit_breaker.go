package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState uint8

const (
	CircuitStateClosed CircuitState = iota
	CircuitStateHalfOpen
	CircuitStateOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitStateClosed:
		return "closed"
	case CircuitStateHalfOpen:
		return "half_open"
	case CircuitStateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// StateListener observes breaker transitions. It runs with the breaker lock held
// and must not call back into the breaker.
type StateListener func(from, to CircuitState)

// CircuitBreaker trips after consecutive failures and lets a bounded number
// of probes through once the open timeout has passed. A nil breaker admits
// every call.
type CircuitBreaker struct {
	cfg      CircuitBreakerConfig
	now      func() time.Time
	listener StateListener

	mu        sync.Mutex
	state     CircuitState
	failures  int
	openedAt  time.Time
	probes    int
	successes int
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg: cfg.Normalize(),
		now: time.Now,
	}
}

// OnStateChange registers a listener for state transitions.
func (b *CircuitBreaker) OnStateChange(listener StateListener) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.listener = listener
	b.mu.Unlock()
}

// Allow reserves a slot for one call or returns ErrCircuitOpen. Every
// admitted call must be followed by exactly one Record.
func (b *CircuitBreaker) Allow() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.moveTo(CircuitStateHalfOpen)
	}
	if b.state == CircuitStateHalfOpen {
		if b.probes >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probes++
	}
	return nil
}

// Record reports the result of a call admitted by Allow.
func (b *CircuitBreaker) Record(failed bool) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.moveTo(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		if b.probes > 0 {
			b.probes--
		}
		if failed {
			b.moveTo(CircuitStateOpen)
			return
		}
		b.successes++
		if b.successes >= b.cfg.HalfOpenMaxReq && b.probes == 0 {
			b.moveTo(CircuitStateClosed)
		}
	case CircuitStateOpen:
		if failed {
			b.openedAt = b.now()
		}
	}
}

// State reports the effective state; an open breaker past its timeout reads
// as half-open before the next Allow moves it there.
func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) moveTo(to CircuitState) {
	from := b.state
	b.state = to
	b.probes = 0
	b.successes = 0
	switch to {
	case CircuitStateOpen:
		b.openedAt = b.now()
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
	if b.listener != nil && from != to {
		b.listener(from, to)
	}
}
