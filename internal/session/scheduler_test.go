package session

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerFires(t *testing.T) {
	sched := NewScheduler()

	var fired atomic.Int32
	sched.Arm(1, 10*time.Millisecond, func() {
		fired.Add(1)
	})

	assert.Eventually(t, func() bool {
		return fired.Load() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, sched.Pending())
}

func TestSchedulerZeroDurationIsNoOp(t *testing.T) {
	sched := NewScheduler()

	sched.Arm(1, 0, func() {
		t.Error("timer fired for zero duration")
	})
	sched.Arm(2, -time.Second, func() {
		t.Error("timer fired for negative duration")
	})

	assert.Equal(t, 0, sched.Pending())
	time.Sleep(20 * time.Millisecond)
}

func TestSchedulerCancel(t *testing.T) {
	sched := NewScheduler()

	var fired atomic.Int32
	sched.Arm(1, 20*time.Millisecond, func() {
		fired.Add(1)
	})

	require.True(t, sched.Cancel(1))
	assert.False(t, sched.Cancel(1))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestSchedulerRearmSupersedes(t *testing.T) {
	sched := NewScheduler()

	var first, second atomic.Int32
	sched.Arm(1, 10*time.Millisecond, func() {
		first.Add(1)
	})
	sched.Arm(1, 30*time.Millisecond, func() {
		second.Add(1)
	})

	assert.Equal(t, 1, sched.Pending())

	assert.Eventually(t, func() bool {
		return second.Load() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), first.Load())
}

func TestSchedulerCancelRace(t *testing.T) {
	// Cancel and fire must be mutually exclusive: across many rounds the
	// callback either runs once before the cancel or not at all, never
	// after Cancel returned true.
	sched := NewScheduler()

	for i := 0; i < 200; i++ {
		id := uint32(i)
		var fired atomic.Int32
		var wg sync.WaitGroup

		sched.Arm(id, time.Millisecond, func() {
			fired.Add(1)
		})

		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(time.Millisecond)
			if sched.Cancel(id) {
				// Cancelled before dispatch: the callback must never run.
				time.Sleep(5 * time.Millisecond)
				assert.Equal(t, int32(0), fired.Load())
			}
		}()

		wg.Wait()
		assert.LessOrEqual(t, fired.Load(), int32(1))
	}
}
