package circuitbreaker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cbadv/internal/clock"
)

func newTestBreaker(fail, success int, timeout time.Duration) (*Breaker, *clock.Fake) {
	fake := clock.NewFake(time.Unix(1700000000, 0))
	return New(Config{
		FailThreshold:    fail,
		SuccessThreshold: success,
		Timeout:          timeout,
	}, fake), fake
}

func TestState_String(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"closed", StateClosed, "CLOSED"},
		{"open", StateOpen, "OPEN"},
		{"half_open", StateHalfOpen, "HALF_OPEN"},
		{"unknown", State(9), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}

func TestBreaker_Nil(t *testing.T) {
	var breaker *Breaker

	assert.True(t, breaker.Allow())
	breaker.Record(false)
	assert.Equal(t, StateClosed, breaker.State())
}

func TestBreaker_TransitionToOpen(t *testing.T) {
	breaker, _ := newTestBreaker(3, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	assert.Equal(t, StateClosed, breaker.State())

	breaker.Record(false)
	assert.Equal(t, StateOpen, breaker.State())
	assert.False(t, breaker.Allow())
}

func TestBreaker_HalfOpenAfterTimeout(t *testing.T) {
	breaker, fake := newTestBreaker(2, 2, 30*time.Second)

	breaker.Record(false)
	breaker.Record(false)

	fake.Advance(29 * time.Second)
	assert.False(t, breaker.Allow())

	fake.Advance(time.Second)
	assert.True(t, breaker.Allow())
	assert.Equal(t, StateHalfOpen, breaker.State())
}

func TestBreaker_TransitionToClosed(t *testing.T) {
	breaker, fake := newTestBreaker(2, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	fake.Advance(time.Second)
	assert.True(t, breaker.Allow())

	breaker.Record(true)
	assert.Equal(t, StateHalfOpen, breaker.State())

	breaker.Record(true)
	assert.Equal(t, StateClosed, breaker.State())
	assert.Equal(t, 3, breaker.StateChanges())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	breaker, fake := newTestBreaker(2, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	fake.Advance(time.Second)
	assert.True(t, breaker.Allow())

	breaker.Record(false)
	assert.Equal(t, StateOpen, breaker.State())
	assert.False(t, breaker.Allow(), "timeout restarts from the probe failure")
}

func TestBreaker_LateResultWhileOpenIgnored(t *testing.T) {
	breaker, _ := newTestBreaker(1, 1, time.Minute)

	breaker.Record(false)
	breaker.Record(true)
	assert.Equal(t, StateOpen, breaker.State())
}

func TestBreaker_Reset(t *testing.T) {
	breaker, _ := newTestBreaker(2, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	assert.Equal(t, StateOpen, breaker.State())

	breaker.Reset()

	assert.Equal(t, StateClosed, breaker.State())
	assert.Equal(t, 0, breaker.Failures())
	assert.True(t, breaker.Allow())
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	breaker, _ := newTestBreaker(5, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	breaker.Record(false)
	assert.Equal(t, 3, breaker.Failures())

	breaker.Record(true)
	assert.Equal(t, 0, breaker.Failures())
}
