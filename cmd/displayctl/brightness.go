package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"codeberg.org/mutker/displayctl/internal/controller"
	"codeberg.org/mutker/displayctl/internal/errors"
)

func newBrightnessCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "brightness <connector> [value]",
		Short: "Show or set brightness through the gamma ramp",
		Long: "Show the brightness and gamma of the monitor on a connector, or set its " +
			"brightness by rewriting the gamma ramp. 1 is unchanged, 0.5 halves the output.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				ctrl, err := a.controller(false)
				if err != nil {
					return err
				}
				defer a.close()

				info, err := ctrl.GammaInfo(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out(cmd), info)
				return nil
			}

			brightness, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.New().Wrap(errors.ErrInvalidArgument, err)
			}

			ctrl, err := a.controller(true)
			if err != nil {
				return err
			}
			defer a.close()

			res, err := ctrl.Brightness(cmd.Context(), args[0], brightness, controller.Options{DryRun: dryRun})
			if err != nil {
				return err
			}

			fmt.Fprintf(out(cmd), "%s -> %s\n", res.Before, res.After)
			if dryRun {
				fmt.Fprintln(out(cmd), "dry run: no changes made.")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the new gamma without applying it")

	return cmd
}
