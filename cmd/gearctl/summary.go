package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/gearcheck/internal/service"
)

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show present, donated and absent counts with coverage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, closeLog, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeLog()

			sum, err := manager.Summary(cmd.Context())
			if err != nil {
				return err
			}
			resp := service.SummaryResponse(sum)

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, resp)
			}

			for _, w := range resp.Warnings {
				_, _ = fmt.Fprintln(out, badStyle.Render("warning: "+w))
			}
			printSection(out, "Items", tallyTable("Item", resp.ByItem))
			printSection(out, "Teams", tallyTable("Team", resp.ByTeam))
			printSection(out, "People", tallyTable("Person", resp.ByPerson))
			_, _ = fmt.Fprintf(out, "%d people, %d items, total coverage %s (source: %s)\n",
				resp.People, len(resp.Items), formatCoverage(resp.Totals.Coverage), resp.Source)
			return nil
		},
	}
}
