package audio

import (
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-tempochange/config"
)

func drain(s beep.Streamer) [][2]float64 {
	var all [][2]float64
	buf := make([][2]float64, 128)
	for {
		n, ok := s.Stream(buf)
		all = append(all, buf[:n]...)
		if !ok {
			return all
		}
	}
}

func TestToneLength(t *testing.T) {
	tone := Tone{Frequency: 440, Duration: 50 * time.Millisecond, Volume: 0.5}
	samples := drain(tone.Streamer(beep.SampleRate(44100)))
	assert.Len(t, samples, 2205)
}

func TestToneStaysWithinVolume(t *testing.T) {
	tone := Tone{Frequency: 880, Duration: 20 * time.Millisecond, Volume: 0.3}
	for _, s := range drain(tone.Streamer(beep.SampleRate(8000))) {
		assert.LessOrEqual(t, math.Abs(s[0]), 0.3)
		assert.Equal(t, s[0], s[1])
	}
}

func TestToneDecays(t *testing.T) {
	tone := Tone{Frequency: 1000, Duration: 100 * time.Millisecond, Volume: 1}
	samples := drain(tone.Streamer(beep.SampleRate(8000)))
	require.Len(t, samples, 800)

	peak := func(from, to int) float64 {
		m := 0.0
		for _, s := range samples[from:to] {
			m = math.Max(m, math.Abs(s[0]))
		}
		return m
	}
	assert.Greater(t, peak(0, 80), peak(720, 800))
	assert.Equal(t, 0.0, samples[0][0])
}

func TestToneStreamersAreIndependent(t *testing.T) {
	tone := Tone{Frequency: 440, Duration: 10 * time.Millisecond, Volume: 1}
	a := tone.Streamer(beep.SampleRate(8000))
	drain(a)
	b := tone.Streamer(beep.SampleRate(8000))
	assert.Len(t, drain(b), 80)
}

func TestExhaustedToneReportsDone(t *testing.T) {
	tone := Tone{Frequency: 440, Duration: time.Millisecond, Volume: 1}
	s := tone.Streamer(beep.SampleRate(8000))
	drain(s)
	n, ok := s.Stream(make([][2]float64, 4))
	assert.Equal(t, 0, n)
	assert.False(t, ok)
}

func TestNewSilent(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tone.Output = config.OutputNone

	out, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, Silent{}, out)
	out.Click()
	assert.NoError(t, out.Close())
}
