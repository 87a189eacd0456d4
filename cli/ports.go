package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-tempochange/midi"
)

// NewPortsCommand lists MIDI outputs usable with --midi-port.
func NewPortsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "ports",
		Short:        "List MIDI output ports",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := midi.OutPortNames()
			if err != nil {
				return err
			}
			return printPorts(cmd, names)
		},
	}
}

func printPorts(cmd *cobra.Command, names []string) error {
	w := cmd.OutOrStdout()
	if len(names) == 0 {
		_, err := fmt.Fprintln(w, "no MIDI output ports")
		return err
	}
	for i, name := range names {
		if _, err := fmt.Fprintf(w, "  %d: %s\n", i, name); err != nil {
			return err
		}
	}
	return nil
}
