package main

import (
	"github.com/spf13/cobra"

	"codeberg.org/mutker/displayctl/internal/config"
)

func newRootCmd(newBackend backendFactory) *cobra.Command {
	a := &app{newBackend: newBackend}

	root := &cobra.Command{
		Use:   "displayctl",
		Short: "Query and change the monitor configuration of GNOME on Wayland",
		Long: "displayctl reads and changes the monitor layout of a GNOME (Mutter) session.\n\n" +
			"Without a subcommand it runs query.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Configuration file (default: search /etc and the user config dir)")
	config.RegisterFlags(flags)

	query := newQueryCmd(a)
	root.RunE = query.RunE
	root.Flags().AddFlagSet(query.Flags())

	root.AddCommand(
		query,
		newModifyCmd(a),
		newBrightnessCmd(a),
		newHistoryCmd(a),
	)

	return root
}
