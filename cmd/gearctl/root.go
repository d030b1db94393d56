package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/gearcheck/internal/admin"
	"github.com/mmynk/gearcheck/internal/app"
	"github.com/mmynk/gearcheck/internal/config"
	"github.com/mmynk/gearcheck/pkg/logging"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath string
	jsonOutput bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "gearctl",
		Short: "Inspect and edit the equipment table",
		Long: `gearctl runs the gearcheck admin operations without the web UI.

It reads the same configuration as the server: an optional YAML file
overlaid by GEARCHECK_* environment variables.

Examples:
  # Coverage per item, person and team
  gearctl summary

  # What changed since the backup snapshot
  gearctl diff --json

  # Roster changes
  gearctl users add "Dana Levi" --team 3 --storage-cell A12
  gearctl users remove "Dana Levi"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", os.Getenv("GEARCHECK_CONFIG"), "path to a YAML config file")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print JSON instead of tables")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log at the configured level instead of warn")

	cmd.AddCommand(
		newSummaryCmd(opts),
		newDiffCmd(opts),
		newUsersCmd(opts),
		newVerificationsCmd(opts),
		newBackupCmd(opts),
	)
	return cmd
}

// open loads config and builds a manager over the configured storage. The
// returned func closes the verification log.
func (o *options) open(ctx context.Context) (*admin.Manager, func(), error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	level := "warn"
	if o.verbose {
		level = cfg.LogLevel
	}
	logging.Configure(level, cfg.LogFormat)

	store, err := app.NewTableStore(ctx, cfg, nil)
	if err != nil {
		return nil, nil, err
	}

	vlog, err := app.OpenVerificationLog(cfg)
	if err != nil {
		return nil, nil, err
	}
	if vlog == nil {
		return admin.NewManager(store, nil), func() {}, nil
	}
	return admin.NewManager(store, vlog), func() { _ = vlog.Close() }, nil
}
