package sequencer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualClockFiresInOrder(t *testing.T) {
	c := NewManualClock()
	var fired []string
	c.Every(3*time.Second, func() { fired = append(fired, "slow") })
	c.Every(time.Second, func() { fired = append(fired, "fast") })

	c.Advance(3 * time.Second)

	assert.Equal(t, []string{"fast", "fast", "slow", "fast"}, fired)
	assert.Equal(t, 3*time.Second, c.Now())
}

func TestManualClockStopIsIdempotent(t *testing.T) {
	c := NewManualClock()
	n := 0
	tk := c.Every(time.Second, func() { n++ })
	require.Equal(t, 1, c.Active())

	tk.Stop()
	tk.Stop()

	assert.Equal(t, 0, c.Active())
	c.Advance(10 * time.Second)
	assert.Equal(t, 0, n)
}

func TestManualClockCallbackCanStopItself(t *testing.T) {
	c := NewManualClock()
	n := 0
	var tk Ticker
	tk = c.Every(time.Second, func() {
		n++
		if n == 2 {
			tk.Stop()
		}
	})

	c.Advance(10 * time.Second)
	assert.Equal(t, 2, n)
}

func TestManualClockStepWithoutTickers(t *testing.T) {
	c := NewManualClock()
	assert.False(t, c.Step())
}

func TestWallClockPostsToFiredChannel(t *testing.T) {
	c := NewWallClock()
	calls := 0
	tk := c.Every(5*time.Millisecond, func() { calls++ })
	defer tk.Stop()

	select {
	case fn := <-c.Fired():
		fn()
	case <-time.After(time.Second):
		t.Fatal("no beat posted")
	}
	assert.Equal(t, 1, calls)
}

func TestWallClockStopEndsPosting(t *testing.T) {
	c := NewWallClock()
	tk := c.Every(time.Millisecond, func() {})
	tk.Stop()
	tk.Stop()

	// drain whatever was posted before Stop returned
	time.Sleep(10 * time.Millisecond)
	for len(c.Fired()) > 0 {
		<-c.Fired()
	}
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 0, len(c.Fired()))
}
