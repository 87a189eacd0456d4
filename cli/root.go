package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds flags shared by every command.
type RootOptions struct {
	ConfigPath string
	Debug      bool
	LogLevel   string
}

// NewRootCommand creates the root command. Running it without a subcommand
// starts the metronome.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	run := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "go-tempochange",
		Short: "go-tempochange - a scrolling visual metronome",
		Long: `A terminal metronome. Thirty colored tiles scroll past a playhead,
one per beat, with an audible click on every beat.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetronome(cmd, opts, run)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ~/.config/go-tempochange/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "write a debug log")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "debug log level (trace|debug|info|warn|error)")

	bindRunFlags(cmd, run)

	cmd.AddCommand(NewPortsCommand(opts))
	cmd.AddCommand(NewInitConfigCommand(opts))

	return cmd
}

func bindRunFlags(cmd *cobra.Command, run *RunOptions) {
	cmd.Flags().StringVarP(&run.Output, "output", "o", "", "click output (speaker|midi|none)")
	cmd.Flags().StringVar(&run.MIDIPort, "midi-port", "", "MIDI output port name, matched case-insensitively")
	cmd.Flags().IntVar(&run.Tiles, "tiles", 0, "number of tiles in a pass")
}
