package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"codeberg.org/mutker/displayctl/internal/controller"
	"codeberg.org/mutker/displayctl/internal/display"
	"codeberg.org/mutker/displayctl/internal/journal"
)

type modifyOptions struct {
	rotate   string
	position string
	scale    string
	mode     string
	primary  bool
	dryRun   bool
}

// actions builds the requested actions in a fixed order: orientation,
// position, scale, mode, primary.
func (o *modifyOptions) actions() ([]display.Action, error) {
	var actions []display.Action

	if o.rotate != "" {
		orientation, err := display.ParseOrientation(o.rotate)
		if err != nil {
			return nil, err
		}
		actions = append(actions, display.SetOrientation{Orientation: orientation})
	}

	if o.position != "" {
		displacement, err := display.ParseDisplacement(o.position)
		if err != nil {
			return nil, err
		}
		actions = append(actions, display.SetDisplacement{Displacement: displacement})
	}

	if o.scale != "" {
		scale, err := display.ParseScale(o.scale)
		if err != nil {
			return nil, err
		}
		actions = append(actions, display.SetScale{Scale: scale})
	}

	if o.mode != "" {
		actions = append(actions, display.SetMode{ModeID: o.mode})
	}

	if o.primary {
		actions = append(actions, display.SetPrimary{})
	}

	if err := display.CheckActions(actions); err != nil {
		return nil, err
	}

	return actions, nil
}

func newModifyCmd(a *app) *cobra.Command {
	opts := &modifyOptions{}

	cmd := &cobra.Command{
		Use:   "modify <connector>",
		Short: "Change the configuration of one monitor",
		Long: "Change the configuration of the monitor on a connector such as \"HDMI-1\". " +
			"Run query without arguments to list connectors.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actions, err := opts.actions()
			if err != nil {
				return err
			}

			ctrl, err := a.controller(true)
			if err != nil {
				return err
			}
			defer a.close()

			for _, action := range actions {
				fmt.Fprintln(out(cmd), action)
			}

			res, err := ctrl.Modify(cmd.Context(), args[0], actions, controller.Options{
				Persistent: a.cfg.Persistent,
				DryRun:     opts.dryRun,
				Verify:     a.cfg.Verify,
			})
			if err != nil {
				return err
			}

			switch res.Outcome {
			case journal.OutcomeNoChanges:
				fmt.Fprintln(out(cmd), "no changes made.")
			case journal.OutcomeDryRun:
				fmt.Fprintln(out(cmd), "dry run: no changes made.")
			case journal.OutcomeVerified:
				fmt.Fprintln(out(cmd), "dry run: configuration verified, no changes made.")
			default:
				fmt.Fprintf(out(cmd), "configuration applied (%s).\n", res.Method)
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.rotate, "rotate", "", "Orientation, e.g. \"left\" or \"inverted,flipped\"")
	flags.StringVar(&opts.position, "position", "", "Position and scale as \"x,y,scale\"")
	flags.StringVar(&opts.scale, "scale", "", "Scale factor, e.g. \"1.5\"")
	flags.StringVar(&opts.mode, "mode", "", "Mode id, as listed by query")
	flags.BoolVar(&opts.primary, "primary", false, "Make this the primary monitor")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "List changes without applying them")

	return cmd
}
