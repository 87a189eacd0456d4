package audio

import (
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"go-tempochange/config"
	"go-tempochange/debug"
	"go-tempochange/midi"
)

// Output plays the per-beat click and releases its device on Close
type Output interface {
	Click()
	Close() error
}

// New opens the output selected by cfg.Tone.Output
func New(cfg *config.Config) (Output, error) {
	switch cfg.Tone.Output {
	case config.OutputSpeaker:
		return NewSpeaker(cfg.Tone)
	case config.OutputMIDI:
		return midi.OpenClick(midi.ClickConfig{
			PortName: cfg.MIDI.PortName,
			Channel:  cfg.MIDI.Channel - 1,
			Note:     cfg.MIDI.Note,
			Velocity: cfg.MIDI.Velocity,
			Gate:     time.Duration(cfg.MIDI.GateMs) * time.Millisecond,
		})
	default:
		return Silent{}, nil
	}
}

// Silent discards clicks
type Silent struct{}

func (Silent) Click()       {}
func (Silent) Close() error { return nil }

// Speaker plays the tone on the default sound device
type Speaker struct {
	rate beep.SampleRate
	tone Tone
}

// NewSpeaker initialises the sound device. Only one speaker may be open.
func NewSpeaker(cfg config.ToneConfig) (*Speaker, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return nil, fault.Wrap(err, fmsg.WithDesc("init speaker", "Could not open the sound device"))
	}
	debug.Log("audio", "speaker ready rate=%d freq=%.0f", cfg.SampleRate, cfg.Frequency)
	return &Speaker{
		rate: rate,
		tone: Tone{
			Frequency: cfg.Frequency,
			Duration:  time.Duration(cfg.DurationMs) * time.Millisecond,
			Volume:    cfg.Volume,
		},
	}, nil
}

// Click queues one tone; it mixes with any tone still sounding
func (s *Speaker) Click() {
	speaker.Play(s.tone.Streamer(s.rate))
}

// Close drops anything still queued on the device
func (s *Speaker) Close() error {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	return nil
}
