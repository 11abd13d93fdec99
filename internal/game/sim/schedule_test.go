package sim_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/riftward/riftward/internal/game/sim"
)

func TestQueue_FiresInTimeThenScheduleOrder(t *testing.T) {
	q := sim.NewQueue()
	var fired []string
	q.After(30*time.Millisecond, func() { fired = append(fired, "c") })
	q.After(10*time.Millisecond, func() { fired = append(fired, "a") })
	q.After(10*time.Millisecond, func() { fired = append(fired, "b") })

	q.Advance(50 * time.Millisecond)

	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Equal(t, 0, q.Pending())
	assert.Equal(t, 50*time.Millisecond, q.Now())
}

func TestQueue_AdvanceStopsAtTarget(t *testing.T) {
	q := sim.NewQueue()
	fired := false
	q.After(200*time.Millisecond, func() { fired = true })

	q.Advance(100 * time.Millisecond)
	assert.False(t, fired)
	assert.Equal(t, 1, q.Pending())

	q.Advance(100 * time.Millisecond)
	assert.True(t, fired)
	assert.Equal(t, 200*time.Millisecond, q.Now())
}

func TestQueue_CancelDropsPendingTask(t *testing.T) {
	q := sim.NewQueue()
	fired := false
	cancel := q.After(10*time.Millisecond, func() { fired = true })

	cancel()
	q.Advance(time.Second)
	assert.False(t, fired)

	// Cancelling again, or after the window passed, stays a no-op.
	cancel()
	assert.Equal(t, 0, q.Pending())
}

func TestQueue_CallbackSchedulingWithinWindowFiresSameAdvance(t *testing.T) {
	q := sim.NewQueue()
	var fired []string
	q.After(10*time.Millisecond, func() {
		fired = append(fired, "outer")
		q.After(5*time.Millisecond, func() { fired = append(fired, "inner") })
		q.After(time.Hour, func() { fired = append(fired, "far") })
	})

	q.Advance(100 * time.Millisecond)

	assert.Equal(t, []string{"outer", "inner"}, fired)
	assert.Equal(t, 1, q.Pending(), "the far task stays queued")
}

func TestQueue_CallbackSeesAdvancedClock(t *testing.T) {
	q := sim.NewQueue()
	var seen time.Duration
	q.After(30*time.Millisecond, func() { seen = q.Now() })

	q.Advance(100 * time.Millisecond)

	assert.Equal(t, 30*time.Millisecond, seen)
	assert.Equal(t, 100*time.Millisecond, q.Now())
}

func TestQueue_NonPositiveDelayFiresNextAdvance(t *testing.T) {
	q := sim.NewQueue()
	fired := false
	q.After(0, func() { fired = true })
	require.False(t, fired, "After never fires synchronously")

	q.Advance(time.Millisecond)
	assert.True(t, fired)
}

func TestQueue_ClearDropsTasksKeepsClock(t *testing.T) {
	q := sim.NewQueue()
	q.Advance(50 * time.Millisecond)
	fired := false
	q.After(10*time.Millisecond, func() { fired = true })

	q.Clear()
	q.Advance(time.Second)

	assert.False(t, fired)
	assert.Equal(t, 0, q.Pending())
	assert.Equal(t, 1050*time.Millisecond, q.Now(), "clearing never rewinds the clock")
}

func TestQueue_Property_EveryTaskFiresExactlyOnceInOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		q := sim.NewQueue()
		n := rapid.IntRange(1, 20).Draw(rt, "n")
		delays := make([]time.Duration, n)
		var fired []int
		for i := 0; i < n; i++ {
			delays[i] = time.Duration(rapid.IntRange(0, 500).Draw(rt, "delay")) * time.Millisecond
			i := i
			q.After(delays[i], func() { fired = append(fired, i) })
		}

		q.Advance(time.Second)

		require.Len(rt, fired, n)
		for k := 1; k < len(fired); k++ {
			a, b := fired[k-1], fired[k]
			if delays[a] == delays[b] {
				assert.Less(rt, a, b, "ties break by schedule order")
			} else {
				assert.Less(rt, delays[a], delays[b], "earlier fire times run first")
			}
		}
	})
}
