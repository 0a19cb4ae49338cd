package cmd

import (
	"encoding/json"
	"fmt"

	"change-detector/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the bucket and the vertex tables",
	Long:  `Checks if the storage bucket has the required folder structure and if the vertex tables match the expected schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runStructureCheck(cmd); err != nil {
			return err
		}
		return runSchemaCheck(cmd)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStructureCheck(cmd)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the vertex table schemas",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchemaCheck(cmd)
	},
}

func init() {
	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the missing folders")
	integrityCmd.AddCommand(structureCmd)
	integrityCmd.AddCommand(schemaCmd)
	RootCmd.AddCommand(integrityCmd)
}

func integrityService(a *app) *integrity.Service {
	return integrity.NewService(a.store, a.cfg.Storage.Bucket, a.logger, a.db, a.cfg.Vertex.LineTable, a.cfg.Vertex.PointTable)
}

func runStructureCheck(cmd *cobra.Command) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	svc := integrityService(a)
	missing, err := svc.CheckStructure(cmd.Context())
	if err != nil {
		return fmt.Errorf("structure check failed: %w", err)
	}

	if len(missing) == 0 {
		a.logger.Info("Bucket structure is complete", zap.String("bucket", a.cfg.Storage.Bucket))
		return nil
	}

	a.logger.Warn("Missing folders detected", zap.Strings("missing", missing))
	if !fixFlag {
		a.logger.Info("Use --fix to create the missing folders.")
		return nil
	}
	return svc.FixStructure(cmd.Context(), missing)
}

func runSchemaCheck(cmd *cobra.Command) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.connect(); err != nil {
		return err
	}

	report, err := integrityService(a).CheckSchema()
	if err != nil {
		return fmt.Errorf("schema check failed: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	if !report.Matched {
		return fmt.Errorf("schema mismatch detected")
	}
	return nil
}
