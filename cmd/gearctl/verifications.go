package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/gearcheck/internal/service"
)

func newVerificationsCmd(opts *options) *cobra.Command {
	var (
		person string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "verifications",
		Short: "List logged verification saves, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, closeLog, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeLog()

			records, err := manager.ListVerifications(cmd.Context(), person, limit)
			if err != nil {
				return err
			}
			resp := service.VerificationsResponse(records)

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, resp)
			}
			if len(resp.Verifications) == 0 {
				_, _ = fmt.Fprintln(out, mutedStyle.Render("No verifications logged."))
				return nil
			}

			t := newTable("When", "Person", "Held", "Absent", "Regressions", "Result")
			for _, v := range resp.Verifications {
				result := goodStyle.Render(v.Location)
				if v.Error != "" {
					result = badStyle.Render(v.Error)
				}
				t.Row(
					v.VerifiedAt.Local().Format(time.DateTime),
					v.Person,
					strconv.Itoa(v.Counts.Held),
					strconv.Itoa(v.Counts.Absent),
					strings.Join(v.Regressions, ", "),
					result,
				)
			}
			_, _ = fmt.Fprintln(out, t.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&person, "person", "", "only this person")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum records, 0 for all")
	return cmd
}
