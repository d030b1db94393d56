package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/gearcheck/internal/admin"
	"github.com/mmynk/gearcheck/internal/api"
	"github.com/mmynk/gearcheck/internal/roster"
)

func newUsersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Add, remove or edit people in the table",
	}
	cmd.AddCommand(
		newUsersAddCmd(opts),
		newUsersRemoveCmd(opts),
		newUsersEditCmd(opts),
	)
	return cmd
}

func newUsersAddCmd(opts *options) *cobra.Command {
	var id roster.Identity

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Append a person with every item absent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, opts, "Added", args[0], func(ctx context.Context, m *admin.Manager) (string, error) {
				return m.AddUser(ctx, args[0], id)
			})
		},
	}
	cmd.Flags().StringVar(&id.Team, "team", "", "team")
	cmd.Flags().StringVar(&id.StorageCell, "storage-cell", "", "storage cell")
	return cmd
}

func newUsersRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Delete every row of a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, opts, "Removed", args[0], func(ctx context.Context, m *admin.Manager) (string, error) {
				return m.RemoveUser(ctx, args[0])
			})
		},
	}
}

func newUsersEditCmd(opts *options) *cobra.Command {
	var id roster.Identity

	cmd := &cobra.Command{
		Use:   "edit NAME",
		Short: "Set the team and storage cell of a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, opts, "Updated", args[0], func(ctx context.Context, m *admin.Manager) (string, error) {
				return m.EditUser(ctx, args[0], id)
			})
		},
	}
	cmd.Flags().StringVar(&id.Team, "team", "", "team")
	cmd.Flags().StringVar(&id.StorageCell, "storage-cell", "", "storage cell")
	return cmd
}

func runMutation(cmd *cobra.Command, opts *options, verb, name string, fn func(context.Context, *admin.Manager) (string, error)) error {
	manager, closeLog, err := opts.open(cmd.Context())
	if err != nil {
		return err
	}
	defer closeLog()

	location, err := fn(cmd.Context(), manager)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		return writeJSON(out, &api.MutationResponse{Location: location})
	}
	_, _ = fmt.Fprintf(out, "%s %s (saved to %s)\n", verb, goodStyle.Render(name), location)
	return nil
}
