package cli

import (
	"fmt"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-tempochange/audio"
	"go-tempochange/config"
	"go-tempochange/debug"
	"go-tempochange/sequencer"
	"go-tempochange/theme"
	"go-tempochange/tui"
	"go-tempochange/widgets"
)

// RunOptions holds flags that override the config for one run.
type RunOptions struct {
	Output   string
	MIDIPort string
	Tiles    int
}

func runMetronome(cmd *cobra.Command, opts *RootOptions, run *RunOptions) error {
	cfg, err := loadConfig(cmd, opts, run)
	if err != nil {
		return err
	}

	if err := setupDebug(cfg); err != nil {
		return err
	}
	defer debug.Disable()

	th, err := loadTheme(cfg)
	if err != nil {
		return err
	}

	var notice string
	out, err := audio.New(cfg)
	if err != nil {
		debug.Warn("audio", "output %s unavailable: %v", cfg.Tone.Output, err)
		notice = fmt.Sprintf("%s output unavailable, running silent", cfg.Tone.Output)
		out = audio.Silent{}
	}
	defer func() {
		if err := out.Close(); err != nil {
			debug.Warn("audio", "close: %v", err)
		}
	}()

	clock := sequencer.NewWallClock()
	seq := sequencer.New(cfg.Sequencer(), clock, out)

	seed := cfg.Theme.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m := tui.NewModel(seq, clock.Fired(), th, stripLayout(cfg), th.TileColors(cfg.Sequence.Tiles, seed))
	if notice != "" {
		m = m.WithNotice(notice)
	}

	debug.Log("app", "start tiles=%d tempo=%.0f output=%s seed=%d",
		cfg.Sequence.Tiles, cfg.Sequence.DefaultTempo, cfg.Tone.Output, seed)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fault.Wrap(err, fmsg.With("run terminal ui"))
	}
	return nil
}

// loadConfig reads the config file and applies any flags the user set
func loadConfig(cmd *cobra.Command, opts *RootOptions, run *RunOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.LoadFile(opts.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Tone.Output = config.OutputType(run.Output)
	}
	if flags.Changed("midi-port") {
		cfg.MIDI.PortName = run.MIDIPort
		if !flags.Changed("output") {
			cfg.Tone.Output = config.OutputMIDI
		}
	}
	if flags.Changed("tiles") {
		cfg.Sequence.Tiles = run.Tiles
	}
	if opts.Debug {
		cfg.Debug.Enabled = true
	}
	if opts.LogLevel != "" {
		cfg.Debug.Level = opts.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupDebug(cfg *config.Config) error {
	if !cfg.Debug.Enabled {
		return nil
	}
	path, err := cfg.DebugLogPath()
	if err != nil {
		return err
	}
	if err := debug.Enable(path); err != nil {
		return err
	}
	return debug.SetLevel(cfg.Debug.Level)
}

func loadTheme(cfg *config.Config) (*theme.Theme, error) {
	if cfg.Theme.Palette == "" {
		return theme.New(theme.Default()), nil
	}
	p, err := theme.LoadGPL(cfg.Theme.Palette)
	if err != nil {
		return nil, err
	}
	return theme.New(p), nil
}

func stripLayout(cfg *config.Config) widgets.StripLayout {
	l := widgets.StripLayout{
		TileWidth: cfg.Sequence.TileWidth,
		Spacing:   cfg.Sequence.TileSpacing,
		Height:    3,
	}
	l.Viewport = cfg.Sequence.ViewportTiles*l.Extent() - l.Spacing
	return l
}
