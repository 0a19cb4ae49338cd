// Package etl runs the workspace that exports the survey data into GeoPackages.
//
// In file mode the runner deletes the previous outputs, passes the output paths as
// workspace parameters, and waits for the process. In server mode the outputs are
// managed by the server and only the server flag is passed. The combined output of
// the process is saved to the configured log file in both modes.
//
// # Usage
//
//	runner := etl.NewRunner(cfg.ETL, logger)
//	if err := runner.Run(ctx); err != nil {
//	    return err
//	}
package etl
