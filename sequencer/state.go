package sequencer

import "time"

// Config holds the fixed shape of a pass and the tempo limits
type Config struct {
	TileCount    int     `json:"tileCount"`
	TileExtent   float64 `json:"tileExtent"` // cells per tile, spacing included
	DefaultTempo float64 `json:"defaultTempo"`
	MinTempo     float64 `json:"minTempo"`
	TempoStep    float64 `json:"tempoStep"`
}

// DefaultConfig returns a 30 tile pass at 60 bpm
func DefaultConfig() Config {
	return Config{
		TileCount:    30,
		TileExtent:   6,
		DefaultTempo: 60,
		MinTempo:     10,
		TempoStep:    10,
	}
}

// Status is the playback state of the sequencer
type Status int

const (
	Stopped Status = iota
	Playing
	// Finished means every beat of the pass has fired and the timer is gone.
	// Play starts a new pass from tile 0.
	Finished
)

func (s Status) String() string {
	switch s {
	case Stopped:
		return "STOP"
	case Playing:
		return "PLAY"
	case Finished:
		return "DONE"
	default:
		return "?"
	}
}

// State is owned by the Sequencer. Nothing else writes it.
type State struct {
	Tempo  float64
	Index  int
	Status Status
	Beats  int // beats fired since start-up
}

// BeatInterval returns the time between beats at the given tempo
func BeatInterval(bpm float64) time.Duration {
	return time.Duration(float64(time.Minute) / bpm)
}

// Snapshot is a read-only copy of the sequencer for rendering
type Snapshot struct {
	State
	TileCount  int
	TileExtent float64
	Animation  AnimationTarget
	Animating  bool // Animation is valid
}

// IsPlaying reports whether the beat timer is running
func (s Snapshot) IsPlaying() bool {
	return s.Status == Playing
}
