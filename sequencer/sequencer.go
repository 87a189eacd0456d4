package sequencer

import (
	"github.com/google/uuid"

	"go-tempochange/debug"
)

// Clicker emits the audible tone for one beat
type Clicker interface {
	Click()
}

type nopClicker struct{}

func (nopClicker) Click() {}

// timerHandle pairs the live ticker with an id for logging and identity checks
type timerHandle struct {
	id     uuid.UUID
	ticker Ticker
}

// Sequencer advances the beat index on a repeating timer and keeps the scroll
// animation in step with it. All methods must be called from one goroutine,
// including the callbacks delivered by the Clock.
type Sequencer struct {
	cfg     Config
	clock   Clock
	clicker Clicker

	state     State
	timer     *timerHandle
	anim      AnimationTarget
	animating bool
	gen       uint64
}

// New creates a stopped sequencer at index 0 and the default tempo
func New(cfg Config, clock Clock, clicker Clicker) *Sequencer {
	if clicker == nil {
		clicker = nopClicker{}
	}
	return &Sequencer{
		cfg:     cfg,
		clock:   clock,
		clicker: clicker,
		state: State{
			Tempo:  cfg.DefaultTempo,
			Status: Stopped,
		},
	}
}

// Play starts a pass from the current index, wrapping to 0 after a full pass
func (s *Sequencer) Play() {
	if s.state.Index >= s.cfg.TileCount {
		s.state.Index = 0
	}
	s.cancelTimer()

	interval := BeatInterval(s.state.Tempo)
	h := &timerHandle{id: uuid.New()}
	h.ticker = s.clock.Every(interval, func() { s.beat(h) })
	s.timer = h
	s.state.Status = Playing

	s.gen++
	s.anim = ComputeAnimation(s.state.Index, s.cfg.TileCount, s.cfg.TileExtent, interval)
	s.anim.Generation = s.gen
	s.animating = true

	debug.Log("seq", "play timer=%s tempo=%.0f index=%d interval=%s gen=%d",
		h.id, s.state.Tempo, s.state.Index, interval, s.gen)
}

// Pause stops the timer and keeps the index where it is
func (s *Sequencer) Pause() {
	s.cancelTimer()
	s.state.Status = Stopped
	s.animating = false
	debug.Log("seq", "pause index=%d", s.state.Index)
}

// TogglePlay pauses when playing and plays otherwise
func (s *Sequencer) TogglePlay() {
	if s.state.Status == Playing {
		s.Pause()
		return
	}
	s.Play()
}

// ChangeTempo adjusts the tempo and always (re)starts playback.
// Decreases are clamped at MinTempo; increases are not bounded.
func (s *Sequencer) ChangeTempo(delta float64) {
	tempo := s.state.Tempo + delta
	if delta < 0 && tempo < s.cfg.MinTempo {
		tempo = s.cfg.MinTempo
	}
	s.state.Tempo = tempo
	debug.Log("seq", "tempo %+.0f -> %.0f", delta, tempo)
	s.Play()
}

// Reset stops playback and restores index 0 and the default tempo
func (s *Sequencer) Reset() {
	s.cancelTimer()
	s.state.Status = Stopped
	s.state.Index = 0
	s.state.Tempo = s.cfg.DefaultTempo
	s.animating = false
	debug.Log("seq", "reset")
}

// beat runs once per timer fire. Fires from a handle that is no longer the
// active one are dropped.
func (s *Sequencer) beat(h *timerHandle) {
	if s.timer != h {
		debug.Log("seq", "stale beat from timer=%s dropped", h.id)
		return
	}
	if s.state.Index >= s.cfg.TileCount {
		s.finish()
		return
	}
	s.state.Index++
	s.state.Beats++
	s.clicker.Click()
	debug.Log("beat", "index=%d/%d", s.state.Index, s.cfg.TileCount)

	if s.state.Index >= s.cfg.TileCount {
		s.finish()
	}
}

func (s *Sequencer) finish() {
	s.cancelTimer()
	s.state.Status = Finished
	debug.Log("seq", "pass finished")
}

// cancelTimer stops the active ticker and forgets the handle
func (s *Sequencer) cancelTimer() {
	if s.timer == nil {
		return
	}
	s.timer.ticker.Stop()
	debug.Log("seq", "cancel timer=%s", s.timer.id)
	s.timer = nil
}

// Snapshot returns the state for rendering
func (s *Sequencer) Snapshot() Snapshot {
	return Snapshot{
		State:      s.state,
		TileCount:  s.cfg.TileCount,
		TileExtent: s.cfg.TileExtent,
		Animation:  s.anim,
		Animating:  s.animating,
	}
}

// Config returns the sequencer's configuration
func (s *Sequencer) Config() Config {
	return s.cfg
}

// HasTimer reports whether a beat timer is live
func (s *Sequencer) HasTimer() bool {
	return s.timer != nil
}
