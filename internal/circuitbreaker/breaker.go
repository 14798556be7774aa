// Package circuitbreaker stops issuing requests to a venue that keeps failing.
package circuitbreaker

import (
	"sync"
	"time"

	"cbadv/internal/clock"
)

type State int32

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

type Config struct {
	FailThreshold    int           `json:"fail_threshold"`
	SuccessThreshold int           `json:"success_threshold"`
	Timeout          time.Duration `json:"timeout"`
}

// Breaker opens after FailThreshold consecutive failures, lets a probe through
// once Timeout has elapsed, and closes after SuccessThreshold probe successes.
// A nil *Breaker always allows and ignores outcomes.
type Breaker struct {
	mu        sync.Mutex
	cfg       Config
	clock     clock.Clock
	state     State
	failures  int
	successes int
	openedAt  time.Time
	changes   int
}

// New creates a closed Breaker. A nil clk uses the system clock.
func New(config Config, clk clock.Clock) *Breaker {
	if clk == nil {
		clk = clock.System()
	}
	return &Breaker{cfg: config, clock: clk}
}

// Allow reports whether a request may be issued now.
func (b *Breaker) Allow() bool {
	if b == nil {
		return true
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.clock.Now().Sub(b.openedAt) < b.cfg.Timeout {
			return false
		}
		b.transitionTo(StateHalfOpen)
		b.successes = 0
		return true
	default:
		return true
	}
}

// Record feeds the outcome of a request that Allow admitted.
func (b *Breaker) Record(success bool) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		if success {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailThreshold {
			b.trip()
		}
	case StateHalfOpen:
		if !success {
			b.trip()
			return
		}
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.transitionTo(StateClosed)
			b.failures = 0
			b.successes = 0
		}
	case StateOpen:
		// late result of a request admitted before the breaker opened
	}
}

func (b *Breaker) trip() {
	b.openedAt = b.clock.Now()
	b.successes = 0
	b.transitionTo(StateOpen)
}

func (b *Breaker) transitionTo(s State) {
	if b.state != s {
		b.state = s
		b.changes++
	}
}

func (b *Breaker) State() State {
	if b == nil {
		return StateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.successes = 0
}

func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// StateChanges counts transitions since construction.
func (b *Breaker) StateChanges() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.changes
}
