package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"codeberg.org/mutker/displayctl/internal/display"
	"codeberg.org/mutker/displayctl/internal/errors"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

type queryOptions struct {
	summary bool
	format  string
}

// pair is the YAML shape of a single monitor query.
type pair struct {
	Logical  display.LogicalMonitor  `yaml:"logical_monitor"`
	Physical display.PhysicalMonitor `yaml:"physical_monitor"`
}

func newQueryCmd(a *app) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query [connector]",
		Short: "Show the current monitor configuration",
		Long: "Show the current monitor configuration, or the logical and physical monitor " +
			"behind one connector such as \"HDMI-1\".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(opts.format); err != nil {
				return err
			}

			ctrl, err := a.controller(false)
			if err != nil {
				return err
			}
			defer a.close()

			if len(args) == 0 {
				cfg, err := ctrl.Query(cmd.Context())
				if err != nil {
					return err
				}
				if opts.format == formatYAML {
					return encodeYAML(cmd, cfg)
				}
				return cfg.Format(out(cmd), opts.summary)
			}

			lm, pm, err := ctrl.Describe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.format == formatYAML {
				return encodeYAML(cmd, pair{Logical: lm, Physical: pm})
			}
			return display.FormatPair(out(cmd), lm, pm)
		},
	}

	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Only list logical monitors")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "Output format (text, yaml)")

	return cmd
}

func checkFormat(format string) error {
	if format != formatText && format != formatYAML {
		return errors.New().WithData(errors.ErrInvalidArgument, "unknown format "+format)
	}
	return nil
}

func encodeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(out(cmd))
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.New().Wrap(errors.ErrInternal, err)
	}
	return enc.Close()
}
