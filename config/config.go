package config

import (
	"os"
	"path/filepath"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"gopkg.in/yaml.v3"

	"go-tempochange/sequencer"
)

// OutputType selects where beat tones go
type OutputType string

const (
	OutputSpeaker OutputType = "speaker"
	OutputMIDI    OutputType = "midi"
	OutputNone    OutputType = "none"
)

// SequenceConfig defines the tile strip and tempo limits
type SequenceConfig struct {
	Tiles         int     `yaml:"tiles"`
	TileWidth     int     `yaml:"tileWidth"` // cells
	TileSpacing   int     `yaml:"tileSpacing"`
	ViewportTiles int     `yaml:"viewportTiles"`
	DefaultTempo  float64 `yaml:"defaultTempo"`
	MinTempo      float64 `yaml:"minTempo"`
	TempoStep     float64 `yaml:"tempoStep"`
}

// ToneConfig defines the per-beat blip
type ToneConfig struct {
	Output     OutputType `yaml:"output"`
	Frequency  float64    `yaml:"frequency"`  // Hz
	DurationMs int        `yaml:"durationMs"` // length of the blip
	Volume     float64    `yaml:"volume"`     // 0..1
	SampleRate int        `yaml:"sampleRate"`
}

// MIDIConfig defines the click note sent when Output is midi
type MIDIConfig struct {
	PortName string `yaml:"portName,omitempty"`
	Channel  uint8  `yaml:"channel"` // 1-16
	Note     uint8  `yaml:"note"`
	Velocity uint8  `yaml:"velocity"`
	GateMs   int    `yaml:"gateMs"`
}

// ThemeConfig selects tile colors
type ThemeConfig struct {
	Palette string `yaml:"palette,omitempty"` // path to a .gpl file; empty = built-in
	Seed    int64  `yaml:"seed,omitempty"`    // 0 = random every run
}

// DebugConfig controls the debug log file
type DebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Path    string `yaml:"path,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Sequence SequenceConfig `yaml:"sequence"`
	Tone     ToneConfig     `yaml:"tone"`
	MIDI     MIDIConfig     `yaml:"midi"`
	Theme    ThemeConfig    `yaml:"theme"`
	Debug    DebugConfig    `yaml:"debug"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Sequence: SequenceConfig{
			Tiles:         30,
			TileWidth:     5,
			TileSpacing:   1,
			ViewportTiles: 6,
			DefaultTempo:  60,
			MinTempo:      10,
			TempoStep:     10,
		},
		Tone: ToneConfig{
			Output:     OutputSpeaker,
			Frequency:  880,
			DurationMs: 60,
			Volume:     0.5,
			SampleRate: 44100,
		},
		MIDI: MIDIConfig{
			Channel:  10,
			Note:     76, // hi wood block
			Velocity: 100,
			GateMs:   50,
		},
		Debug: DebugConfig{
			Level: "debug",
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fault.Wrap(err, fmsg.With("find home directory"))
	}
	return filepath.Join(home, ".config", "go-tempochange"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DebugLogPath returns the log path, honouring the config override
func (c *Config) DebugLogPath() (string, error) {
	if c.Debug.Path != "" {
		return c.Debug.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "debug.log"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file yields defaults.
// Fields absent from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fault.Wrap(err, fmsg.With("read config"))
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fault.Wrap(err,
			fmsg.WithDesc("parse config", "Config file "+path+" is not valid YAML"))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to path, creating its directory
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fault.Wrap(err, fmsg.With("create config directory"))
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fault.Wrap(err, fmsg.With("encode config"))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fault.Wrap(err, fmsg.With("write config"))
	}
	return nil
}

// Validate rejects values the metronome cannot run with
func (c *Config) Validate() error {
	s := c.Sequence
	switch {
	case s.Tiles < 1:
		return invalid("sequence.tiles must be at least 1")
	case s.TileWidth < 1:
		return invalid("sequence.tileWidth must be at least 1")
	case s.TileSpacing < 0:
		return invalid("sequence.tileSpacing must not be negative")
	case s.ViewportTiles < 1:
		return invalid("sequence.viewportTiles must be at least 1")
	case s.MinTempo <= 0:
		return invalid("sequence.minTempo must be positive")
	case s.DefaultTempo < s.MinTempo:
		return invalid("sequence.defaultTempo must not be below minTempo")
	case s.TempoStep <= 0:
		return invalid("sequence.tempoStep must be positive")
	}

	switch c.Tone.Output {
	case OutputSpeaker, OutputMIDI, OutputNone:
	default:
		return invalid("tone.output must be speaker, midi or none")
	}
	if c.Tone.Volume < 0 || c.Tone.Volume > 1 {
		return invalid("tone.volume must be between 0 and 1")
	}
	if c.Tone.Output == OutputSpeaker && (c.Tone.Frequency <= 0 || c.Tone.DurationMs <= 0 || c.Tone.SampleRate <= 0) {
		return invalid("tone.frequency, tone.durationMs and tone.sampleRate must be positive")
	}

	if c.MIDI.Channel < 1 || c.MIDI.Channel > 16 {
		return invalid("midi.channel must be between 1 and 16")
	}
	if c.MIDI.Note > 127 || c.MIDI.Velocity > 127 {
		return invalid("midi.note and midi.velocity must be at most 127")
	}
	return nil
}

func invalid(msg string) error {
	return fault.New(msg, ftag.With(ftag.InvalidArgument), fmsg.WithDesc(msg, "Invalid config: "+msg))
}

// Sequencer converts the sequence section into the sequencer's config
func (c *Config) Sequencer() sequencer.Config {
	return sequencer.Config{
		TileCount:    c.Sequence.Tiles,
		TileExtent:   float64(c.Sequence.TileWidth + c.Sequence.TileSpacing),
		DefaultTempo: c.Sequence.DefaultTempo,
		MinTempo:     c.Sequence.MinTempo,
		TempoStep:    c.Sequence.TempoStep,
	}
}
