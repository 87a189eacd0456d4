package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// Tone describes a short decaying sine blip
type Tone struct {
	Frequency float64 // Hz
	Duration  time.Duration
	Volume    float64 // peak amplitude 0..1
}

// Streamer renders the tone at sr. Each call returns a fresh streamer.
func (t Tone) Streamer(sr beep.SampleRate) beep.Streamer {
	n := sr.N(t.Duration)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			env := math.Exp(-5 * float64(pos) / float64(n))
			v := t.Volume * env * math.Sin(2*math.Pi*t.Frequency*float64(pos)/float64(sr))
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return i, true
	})
}
