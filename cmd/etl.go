package cmd

import (
	"change-detector/feature/etl"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// etlCmd represents the etl command
var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Run the ETL workspace",
	Long:  `Runs the configured workspace to rewrite the vertex export files, without comparing them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := etl.NewRunner(a.cfg.ETL, a.logger).Run(cmd.Context()); err != nil {
			return err
		}
		a.logger.Info("ETL workspace completed",
			zap.String("lines", a.cfg.ETL.LinesOutput),
			zap.String("points", a.cfg.ETL.PointsOutput))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(etlCmd)
}
