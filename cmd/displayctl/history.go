package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent changes from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			if !a.cfg.Journal {
				fmt.Fprintln(out(cmd), "journal disabled, enable it with --journal or journal = true.")
				return nil
			}

			rec, err := a.journal()
			if err != nil {
				return err
			}
			defer a.close()

			entries, err := rec.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if format == formatYAML {
				return encodeYAML(cmd, entries)
			}

			w := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tOPERATION\tCONNECTOR\tSERIAL\tOUTCOME\tDETAIL")
			for _, e := range entries {
				detail := e.Detail
				if e.Error != "" {
					detail += " (" + e.Error + ")"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
					e.Timestamp.Local().Format(time.DateTime), e.Operation, e.Connector, e.Serial, e.Outcome, detail)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of entries to show")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format (text, yaml)")

	return cmd
}
