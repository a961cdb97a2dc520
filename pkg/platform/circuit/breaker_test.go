package circuit

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBreaker(t *testing.T) {
	b := New("redis-ratelimit")
	assert.Equal(t, "redis-ratelimit", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.False(t, b.IsOpen())
}

// replay feeds a sequence of primary outcomes ('x' failure, '.' success) and
// returns the state letter after each one ('C' closed, 'O' open).
func replay(b *Breaker, outcomes string) string {
	var states strings.Builder
	for _, o := range outcomes {
		if o == 'x' {
			b.RecordFailure()
		} else {
			b.RecordSuccess()
		}
		if b.IsOpen() {
			states.WriteByte('O')
		} else {
			states.WriteByte('C')
		}
	}
	return states.String()
}

func TestBreakerTransitions(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		successes int
		outcomes  string
		states    string
	}{
		{name: "opens on the threshold failure", failures: 3, successes: 1, outcomes: "xxx", states: "CCO"},
		{name: "a success clears the failure streak", failures: 3, successes: 1, outcomes: "xx.xxx", states: "CCCCCO"},
		{name: "closes after the success streak", failures: 1, successes: 2, outcomes: "x..", states: "OOC"},
		{name: "a failure while open restarts the success streak", failures: 1, successes: 3, outcomes: "x..x...", states: "OOOOOOC"},
		{name: "reopening needs a fresh failure streak", failures: 2, successes: 1, outcomes: "xx.xx", states: "COCCO"},
		{name: "non-positive thresholds keep the defaults", failures: 0, successes: -1, outcomes: "xxxxx...", states: "CCCCOOOC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("redis-ratelimit", WithFailureThreshold(tt.failures), WithSuccessThreshold(tt.successes))
			assert.Equal(t, tt.states, replay(b, tt.outcomes))
		})
	}
}

func TestBreakerReportsChanges(t *testing.T) {
	b := New("redis-ratelimit", WithFailureThreshold(2), WithSuccessThreshold(2))

	useFallback, change := b.RecordFailure()
	assert.False(t, useFallback)
	assert.Equal(t, StateChange{}, change)

	useFallback, change = b.RecordFailure()
	assert.True(t, useFallback)
	assert.Equal(t, StateChange{Opened: true}, change)

	useFallback, change = b.RecordFailure()
	assert.True(t, useFallback, "an open breaker keeps routing to the fallback")
	assert.Equal(t, StateChange{}, change, "already open")

	usePrimary, change := b.RecordSuccess()
	assert.False(t, usePrimary)
	assert.Equal(t, StateChange{}, change)

	usePrimary, change = b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.Equal(t, StateChange{Closed: true}, change)
}

func TestBreakerReset(t *testing.T) {
	b := New("redis-ratelimit", WithFailureThreshold(1))
	b.RecordFailure()
	require.True(t, b.IsOpen())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "C", replay(b, "."), "counters were cleared")
}

func TestBreakerConcurrentFailures(t *testing.T) {
	b := New("redis-ratelimit", WithFailureThreshold(50))
	var opened sync.WaitGroup
	var mu sync.Mutex
	transitions := 0

	for range 100 {
		opened.Go(func() {
			if _, change := b.RecordFailure(); change.Opened {
				mu.Lock()
				transitions++
				mu.Unlock()
			}
		})
	}
	opened.Wait()

	assert.True(t, b.IsOpen())
	assert.Equal(t, 1, transitions, "exactly one caller observes the transition")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
}
