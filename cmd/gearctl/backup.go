package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBackupCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Take the backup snapshot if it does not exist yet",
		Long: `Copies the current table to the backup worksheet or file. An existing
backup is never replaced, so the diff always compares with the first
snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, closeLog, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeLog()

			if err := manager.EnsureBackup(cmd.Context()); err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]bool{"backup": true})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), goodStyle.Render("Backup snapshot is in place."))
			return nil
		},
	}
}
