package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mmynk/gearcheck/internal/api"
	"github.com/mmynk/gearcheck/internal/calculator"
	"github.com/mmynk/gearcheck/internal/service"
)

func newDiffCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Compare the table with the backup snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, closeLog, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeLog()

			res, err := manager.Diff(cmd.Context())
			if err != nil {
				return err
			}
			resp := service.DiffResponse(res)

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, resp)
			}
			if !resp.HasBackup {
				_, _ = fmt.Fprintln(out, mutedStyle.Render("No backup snapshot yet. Run 'gearctl backup' to take one."))
				return nil
			}
			if len(resp.Added) == 0 && len(resp.Removed) == 0 && len(resp.Changes) == 0 {
				_, _ = fmt.Fprintln(out, goodStyle.Render("No changes since the backup."))
				return nil
			}

			if len(resp.Added) > 0 {
				_, _ = fmt.Fprintln(out, goodStyle.Render("Added: "+strings.Join(resp.Added, ", ")))
			}
			if len(resp.Removed) > 0 {
				_, _ = fmt.Fprintln(out, badStyle.Render("Removed: "+strings.Join(resp.Removed, ", ")))
			}
			if len(resp.Changes) > 0 {
				_, _ = fmt.Fprintln(out)
				printSection(out, "Changes", changeTable(resp.Changes))
				printSection(out, "By person", personChangeTable(resp.ByPerson))
			}
			_, _ = fmt.Fprintf(out, "gained %d, lost %d, changed %d\n",
				resp.ByKind[string(calculator.Gained)],
				resp.ByKind[string(calculator.Lost)],
				resp.ByKind[string(calculator.Changed)],
			)
			return nil
		},
	}
}

func changeTable(changes []api.Change) *table.Table {
	t := newTable("Person", "Item", "Backup", "Now", "Kind")
	for _, c := range changes {
		t.Row(c.Person, c.Item, c.Old, c.New, c.Kind)
	}
	return t
}

func personChangeTable(people []api.PersonChanges) *table.Table {
	t := newTable("Person", "Gained", "Lost", "Changed")
	for _, p := range people {
		t.Row(p.Person, strconv.Itoa(p.Gained), strconv.Itoa(p.Lost), strconv.Itoa(p.Changed))
	}
	return t
}
