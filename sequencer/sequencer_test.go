package sequencer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClicker struct{ n int }

func (c *countingClicker) Click() { c.n++ }

func newTestSequencer() (*Sequencer, *ManualClock, *countingClicker) {
	clock := NewManualClock()
	clicks := &countingClicker{}
	return New(DefaultConfig(), clock, clicks), clock, clicks
}

func TestNewSequencerStartsStopped(t *testing.T) {
	s, clock, _ := newTestSequencer()
	snap := s.Snapshot()

	assert.Equal(t, Stopped, snap.Status)
	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, 60.0, snap.Tempo)
	assert.False(t, snap.Animating)
	assert.Equal(t, 0, clock.Active())
}

func TestPlayFullPassFinishesAndCancelsTimer(t *testing.T) {
	s, clock, clicks := newTestSequencer()
	s.Play()

	for i := 0; i < 30; i++ {
		require.True(t, clock.Step(), "beat %d", i+1)
	}

	snap := s.Snapshot()
	assert.Equal(t, 30, snap.Index)
	assert.Equal(t, Finished, snap.Status)
	assert.False(t, snap.IsPlaying())
	assert.False(t, s.HasTimer())
	assert.Equal(t, 0, clock.Active())
	assert.Equal(t, 30, clicks.n)
	assert.Equal(t, 30*time.Second, clock.Now())

	// nothing left to fire
	assert.False(t, clock.Step())
}

func TestBeatAdvancesOncePerInterval(t *testing.T) {
	s, clock, clicks := newTestSequencer()
	s.Play()

	clock.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, s.Snapshot().Index)

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, s.Snapshot().Index)

	clock.Advance(4 * time.Second)
	assert.Equal(t, 5, s.Snapshot().Index)
	assert.Equal(t, 5, clicks.n)
}

func TestPlayWrapsToStartAfterFullPass(t *testing.T) {
	s, clock, _ := newTestSequencer()
	s.Play()
	clock.Advance(30 * time.Second)
	require.Equal(t, 30, s.Snapshot().Index)

	s.Play()

	snap := s.Snapshot()
	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, Playing, snap.Status)
	assert.Equal(t, 0.0, snap.Animation.StartOffset)
}

func TestPauseResumesFromSameIndex(t *testing.T) {
	s, clock, _ := newTestSequencer()
	s.Play()
	clock.Advance(5 * time.Second)
	require.Equal(t, 5, s.Snapshot().Index)

	s.Pause()
	assert.Equal(t, Stopped, s.Snapshot().Status)
	assert.Equal(t, 0, clock.Active())
	assert.False(t, s.Snapshot().Animating)

	clock.Advance(10 * time.Second)
	assert.Equal(t, 5, s.Snapshot().Index)

	s.Play()
	snap := s.Snapshot()
	assert.Equal(t, 5, snap.Index)
	assert.Equal(t, -30.0, snap.Animation.StartOffset)

	clock.Advance(time.Second)
	assert.Equal(t, 6, s.Snapshot().Index)
}

func TestPauseWhenStoppedIsHarmless(t *testing.T) {
	s, clock, _ := newTestSequencer()
	s.Pause()
	s.Pause()
	assert.Equal(t, Stopped, s.Snapshot().Status)
	assert.Equal(t, 0, clock.Active())
}

func TestTogglePlay(t *testing.T) {
	s, _, _ := newTestSequencer()

	s.TogglePlay()
	assert.Equal(t, Playing, s.Snapshot().Status)

	s.TogglePlay()
	assert.Equal(t, Stopped, s.Snapshot().Status)
}

func TestToggleFromFinishedStartsNewPass(t *testing.T) {
	s, clock, _ := newTestSequencer()
	s.Play()
	clock.Advance(30 * time.Second)
	require.Equal(t, Finished, s.Snapshot().Status)

	s.TogglePlay()
	assert.Equal(t, Playing, s.Snapshot().Status)
	assert.Equal(t, 0, s.Snapshot().Index)
}

func TestChangeTempoUpRestartsFromCurrentIndex(t *testing.T) {
	s, clock, _ := newTestSequencer()
	s.Play()
	clock.Advance(3 * time.Second)
	gen := s.Snapshot().Animation.Generation

	s.ChangeTempo(10)

	snap := s.Snapshot()
	assert.Equal(t, 70.0, snap.Tempo)
	assert.Equal(t, 3, snap.Index)
	assert.Equal(t, Playing, snap.Status)
	assert.Equal(t, gen+1, snap.Animation.Generation)
	assert.InDelta(t, 25.714, snap.Animation.Seconds(), 0.001)
	assert.Equal(t, 1, clock.Active())

	interval := BeatInterval(70)
	clock.Advance(interval)
	assert.Equal(t, 4, s.Snapshot().Index)
}

func TestChangeTempoDownClampsAtFloor(t *testing.T) {
	s, clock, _ := newTestSequencer()
	for i := 0; i < 5; i++ {
		s.ChangeTempo(-10)
	}
	require.Equal(t, 10.0, s.Snapshot().Tempo)

	s.Pause()
	s.ChangeTempo(-10)

	snap := s.Snapshot()
	assert.Equal(t, 10.0, snap.Tempo)
	assert.Equal(t, Playing, snap.Status)
	assert.Equal(t, 1, clock.Active())
}

func TestChangeTempoNeverDropsBelowFloor(t *testing.T) {
	for _, delta := range []float64{-1, -9, -10, -49, -50, -51, -1000} {
		s, _, _ := newTestSequencer()
		s.ChangeTempo(delta)
		assert.GreaterOrEqual(t, s.Snapshot().Tempo, 10.0, "delta %v", delta)
	}
}

func TestChangeTempoUpHasNoCeiling(t *testing.T) {
	s, _, _ := newTestSequencer()
	for i := 0; i < 100; i++ {
		s.ChangeTempo(10)
	}
	assert.Equal(t, 1060.0, s.Snapshot().Tempo)
}

func TestChangeTempoWhilePausedStartsPlayback(t *testing.T) {
	s, _, _ := newTestSequencer()
	s.ChangeTempo(10)
	assert.Equal(t, Playing, s.Snapshot().Status)
}

func TestRapidTempoChangesKeepOneTimer(t *testing.T) {
	s, clock, clicks := newTestSequencer()
	s.Play()
	for i := 0; i < 50; i++ {
		s.ChangeTempo(10)
		assert.Equal(t, 1, clock.Active())
		s.ChangeTempo(-10)
		assert.Equal(t, 1, clock.Active())
	}

	// 60 bpm again: exactly one beat per second
	clock.Advance(time.Second)
	assert.Equal(t, 1, s.Snapshot().Index)
	assert.Equal(t, 1, clicks.n)
}

func TestAtMostOneTimerAcrossOperations(t *testing.T) {
	s, clock, _ := newTestSequencer()
	ops := []func(){
		s.Play, s.Play, s.Pause, s.Play,
		func() { s.ChangeTempo(10) },
		func() { clock.Advance(2 * time.Second) },
		s.Reset, s.TogglePlay, s.TogglePlay, s.TogglePlay,
		func() { s.ChangeTempo(-100) },
		func() { clock.Advance(time.Minute) },
		s.Play, s.Reset,
	}
	for i, op := range ops {
		op()
		assert.LessOrEqual(t, clock.Active(), 1, "after op %d", i)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	s, clock, _ := newTestSequencer()
	s.ChangeTempo(30)
	clock.Advance(5 * time.Second)

	s.Reset()

	snap := s.Snapshot()
	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, 60.0, snap.Tempo)
	assert.Equal(t, Stopped, snap.Status)
	assert.False(t, snap.IsPlaying())
	assert.False(t, snap.Animating)
	assert.Equal(t, 0, clock.Active())
}

func TestStaleBeatIsDropped(t *testing.T) {
	s, _, clicks := newTestSequencer()
	s.Play()
	stale := s.timer
	s.Pause()

	s.beat(stale)

	assert.Equal(t, 0, s.Snapshot().Index)
	assert.Equal(t, 0, clicks.n)
}

func TestStaleBeatAfterRestartIsDropped(t *testing.T) {
	s, _, clicks := newTestSequencer()
	s.Play()
	stale := s.timer
	s.ChangeTempo(10)

	s.beat(stale)

	assert.Equal(t, 0, s.Snapshot().Index)
	assert.Equal(t, 0, clicks.n)
	assert.True(t, s.HasTimer())
}

func TestBeatAtOrPastEndStopsWithoutAdvancing(t *testing.T) {
	s, clock, clicks := newTestSequencer()
	s.Play()
	s.state.Index = 30

	clock.Step()

	assert.Equal(t, 30, s.Snapshot().Index)
	assert.Equal(t, Finished, s.Snapshot().Status)
	assert.Equal(t, 0, clicks.n)
	assert.Equal(t, 0, clock.Active())
}

func TestPlayComputesOneAnimationPerStart(t *testing.T) {
	s, _, _ := newTestSequencer()
	s.Play()
	first := s.Snapshot().Animation
	s.Play()
	second := s.Snapshot().Animation

	assert.Equal(t, first.Generation+1, second.Generation)
	assert.Equal(t, first.StartOffset, second.StartOffset)
	assert.Equal(t, -180.0, second.EndOffset)
	assert.Equal(t, 30*time.Second, second.Duration)
}

func TestNilClickerIsAllowed(t *testing.T) {
	clock := NewManualClock()
	s := New(DefaultConfig(), clock, nil)
	s.Play()
	clock.Advance(time.Second)
	assert.Equal(t, 1, s.Snapshot().Index)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "STOP", Stopped.String())
	assert.Equal(t, "PLAY", Playing.String())
	assert.Equal(t, "DONE", Finished.String())
}
