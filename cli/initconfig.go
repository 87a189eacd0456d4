package cli

import (
	"fmt"
	"os"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/spf13/cobra"

	"go-tempochange/config"
)

// NewInitConfigCommand writes a config file holding the defaults.
func NewInitConfigCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:          "init-config",
		Short:        "Write the default config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitConfig(cmd, rootOpts, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}

func runInitConfig(cmd *cobra.Command, opts *RootOptions, force bool) error {
	path := opts.ConfigPath
	if path == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fault.Wrap(fmt.Errorf("%s already exists", path),
			ftag.With(ftag.AlreadyExists),
			fmsg.WithDesc("init config", "Config file exists; pass --force to overwrite it"))
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return err
}
