package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives the cooldown of a breaker guarding the program cache.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newRedisBreaker(opts ...Option) *Breaker {
	return New("redis", opts...)
}

func TestNewBreakerIsClosed(t *testing.T) {
	b := newRedisBreaker()

	assert.Equal(t, "redis", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "closed", b.State().String())
	assert.True(t, b.Allow(), "cache reads go to redis while closed")
}

// outcome is one cache round trip against redis.
type outcome bool

const (
	ok   outcome = true
	fail outcome = false
)

func TestBreakerTransitions(t *testing.T) {
	tests := []struct {
		name       string
		failures   int
		successes  int
		outcomes   []outcome
		wantOpen   bool
		wantOpened int
		wantClosed int
		wantBypass bool
	}{
		{
			name:       "failures below threshold keep reading redis",
			failures:   3,
			outcomes:   []outcome{fail, fail},
			wantBypass: false,
		},
		{
			name:       "threshold of failures bypasses redis",
			failures:   3,
			outcomes:   []outcome{fail, fail, fail},
			wantOpen:   true,
			wantOpened: 1,
			wantBypass: true,
		},
		{
			name:     "a hit in between restarts the failure count",
			failures: 3,
			outcomes: []outcome{fail, fail, ok, fail, fail},
		},
		{
			name:       "further failures while open do not reopen",
			failures:   1,
			outcomes:   []outcome{fail, fail, fail},
			wantOpen:   true,
			wantOpened: 1,
			wantBypass: true,
		},
		{
			name:       "redis must answer twice before the cache is trusted again",
			failures:   1,
			successes:  2,
			outcomes:   []outcome{fail, ok},
			wantOpen:   true,
			wantOpened: 1,
			wantBypass: true,
		},
		{
			name:       "recovered redis closes the breaker",
			failures:   1,
			successes:  2,
			outcomes:   []outcome{fail, ok, ok},
			wantOpened: 1,
			wantClosed: 1,
		},
		{
			name:       "a failed probe restarts the recovery count",
			failures:   1,
			successes:  2,
			outcomes:   []outcome{fail, ok, fail, ok},
			wantOpen:   true,
			wantOpened: 1,
			wantBypass: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := []Option{WithFailureThreshold(tt.failures)}
			if tt.successes > 0 {
				opts = append(opts, WithSuccessThreshold(tt.successes))
			}
			b := newRedisBreaker(opts...)

			var opened, closed int
			var bypass bool
			for _, o := range tt.outcomes {
				var change StateChange
				if o == ok {
					var usePrimary bool
					usePrimary, change = b.RecordSuccess()
					bypass = !usePrimary
				} else {
					bypass, change = b.RecordFailure()
				}
				if change.Opened {
					opened++
				}
				if change.Closed {
					closed++
				}
			}

			assert.Equal(t, tt.wantOpen, b.IsOpen())
			assert.Equal(t, tt.wantOpened, opened)
			assert.Equal(t, tt.wantClosed, closed)
			assert.Equal(t, tt.wantBypass, bypass)
		})
	}
}

func TestBreakerProbesRedisAfterCooldown(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := newRedisBreaker(WithFailureThreshold(2), WithCooldown(10*time.Second), WithClock(clock.Now))

	b.RecordFailure()
	b.RecordFailure()
	require.True(t, b.IsOpen())
	assert.False(t, b.Allow(), "program lists come straight from the store")

	clock.Advance(9 * time.Second)
	assert.False(t, b.Allow())

	clock.Advance(time.Second)
	assert.True(t, b.Allow(), "one read is let through to probe redis")

	b.RecordFailure()
	assert.False(t, b.Allow(), "a failed probe starts a new cooldown")

	clock.Advance(10 * time.Second)
	require.True(t, b.Allow())
	_, change := b.RecordSuccess()
	assert.True(t, change.Closed)
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestBreakerResetAfterFlush(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := newRedisBreaker(WithFailureThreshold(1), WithCooldown(time.Hour), WithClock(clock.Now))

	b.RecordFailure()
	require.False(t, b.Allow())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())

	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback, "reset keeps the configured threshold")
	assert.True(t, change.Opened)
}
