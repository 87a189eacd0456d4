package midi

import (
	"strings"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// scanTimeout bounds port enumeration; CoreMIDI can hang
const scanTimeout = 3 * time.Second

// OutPortNames lists MIDI output ports
func OutPortNames() ([]string, error) {
	outs, err := outPorts()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(outs))
	for i, p := range outs {
		names[i] = p.String()
	}
	return names, nil
}

func outPorts() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		return outs, nil
	case <-time.After(scanTimeout):
		return nil, fault.New("midi port scan timed out",
			fmsg.WithDesc("midi port scan timed out", "The MIDI driver is not responding"))
	}
}

// findOutPort returns the first port whose name contains name (case-insensitive).
// An empty name selects the first port.
func findOutPort(name string) (drivers.Out, error) {
	outs, err := outPorts()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(outs))
	for i, p := range outs {
		names[i] = p.String()
	}
	i := matchPort(names, name)
	if i < 0 {
		if name == "" {
			name = "(any)"
		}
		return nil, fault.New("midi output not found",
			ftag.With(ftag.NotFound),
			fmsg.WithDesc("midi output "+name+" not found", "No MIDI output matches "+name))
	}
	return outs[i], nil
}

// matchPort returns the index of the first name containing want, or -1
func matchPort(names []string, want string) int {
	want = strings.ToLower(want)
	for i, n := range names {
		if strings.Contains(strings.ToLower(n), want) {
			return i
		}
	}
	return -1
}
