package midi

import (
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-tempochange/debug"
)

// ClickConfig describes the note sent on every beat
type ClickConfig struct {
	PortName string // empty = first output port
	Channel  uint8  // 0-15
	Note     uint8
	Velocity uint8
	Gate     time.Duration // note length
}

// Click sends a short note to a MIDI output on every beat
type Click struct {
	cfg   ClickConfig
	port  drivers.Out
	send  func(gomidi.Message) error
	after func(time.Duration, func())
}

// OpenClick opens the configured output port
func OpenClick(cfg ClickConfig) (*Click, error) {
	port, err := findOutPort(cfg.PortName)
	if err != nil {
		return nil, err
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fault.Wrap(err, fmsg.WithDesc("open midi port", "Could not open MIDI output "+port.String()))
	}
	debug.Log("midi", "click output %s ch=%d note=%d", port.String(), cfg.Channel+1, cfg.Note)

	c := newClick(cfg, send)
	c.port = port
	return c, nil
}

func newClick(cfg ClickConfig, send func(gomidi.Message) error) *Click {
	return &Click{
		cfg:  cfg,
		send: send,
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

// Click sends note on now and note off after the gate time
func (c *Click) Click() {
	if err := c.send(gomidi.NoteOn(c.cfg.Channel, c.cfg.Note, c.cfg.Velocity)); err != nil {
		debug.Warn("midi", "note on: %v", err)
		return
	}
	c.after(c.cfg.Gate, func() {
		if err := c.send(gomidi.NoteOff(c.cfg.Channel, c.cfg.Note)); err != nil {
			debug.Warn("midi", "note off: %v", err)
		}
	})
}

// Close silences the click note and closes the port
func (c *Click) Close() error {
	_ = c.send(gomidi.NoteOff(c.cfg.Channel, c.cfg.Note))
	if c.port == nil {
		return nil
	}
	if err := c.port.Close(); err != nil {
		return fault.Wrap(err, fmsg.With("close midi port"))
	}
	return nil
}
