package cmd

import (
	"fmt"

	"change-detector/feature/vertex"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	compareFormat string
	compareETL    bool
	compareBackup bool
	compareNotify bool
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the survey export with the vertex tables",
	Long: `Runs the change detection of segments and points.

Optionally runs the ETL workspace first, backs up the database snapshots to the
bucket and sends the composed report.

Examples:
  # Report only, from the current export files
  compare

  # Full run: ETL, backup and notification
  compare --etl --backup --notify

  # Summary table of both pipelines
  compare --format table`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", formatText, "Output format (text, table, json, yaml)")
	compareCmd.Flags().BoolVar(&compareETL, "etl", false, "Run the ETL workspace before comparing")
	compareCmd.Flags().BoolVar(&compareBackup, "backup", false, "Back up the database snapshots to the bucket (defaults to vertex.backup)")
	compareCmd.Flags().BoolVar(&compareNotify, "notify", false, "Send the report with the configured notifier")

	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.connect(); err != nil {
		return err
	}

	svc, err := a.vertexService()
	if err != nil {
		return err
	}

	opts := compareOptions(cmd.Flags().Changed("backup"), a.cfg.Vertex)
	a.logger.Info("Starting change detection",
		zap.Bool("etl", opts.Extract),
		zap.Bool("backup", opts.Backup),
		zap.Bool("notify", opts.Notify))

	result, err := svc.Run(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("change detection failed: %w", err)
	}

	return writeResult(cmd.OutOrStdout(), compareFormat, result)
}

// compareOptions builds the run options from the flags. An unset --backup
// falls back to the vertex.backup setting.
func compareOptions(backupSet bool, cfg vertex.Config) vertex.RunOptions {
	backup := cfg.Backup
	if backupSet {
		backup = compareBackup
	}
	return vertex.RunOptions{
		Extract: compareETL,
		Backup:  backup,
		Notify:  compareNotify,
		Fresh:   true,
	}
}
