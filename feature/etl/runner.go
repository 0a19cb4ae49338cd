package etl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Commander executes an external command and returns its combined output.
type Commander interface {
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommander runs commands with os/exec.
type ExecCommander struct{}

// CombinedOutput runs the command, killing it when ctx is done.
func (ExecCommander) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Runner invokes the ETL workspace that produces the export snapshots.
type Runner struct {
	cfg       Config
	commander Commander
	logger    *zap.Logger
}

// NewRunner creates a runner using os/exec.
func NewRunner(cfg Config, logger *zap.Logger) *Runner {
	return &Runner{cfg: cfg, commander: ExecCommander{}, logger: logger}
}

// WithCommander replaces the command executor.
func (r *Runner) WithCommander(c Commander) *Runner {
	r.commander = c
	return r
}

// Args builds the workspace command line, without the executable.
func (r *Runner) Args() ([]string, error) {
	args := []string{
		r.cfg.Workspace,
		"--DBConnection1", r.cfg.SourceConnection,
		"--DBConnection2", r.cfg.TargetConnection,
	}

	switch r.cfg.Mode {
	case ModeFile:
		args = append(args,
			"--"+r.cfg.PointsParam, r.cfg.PointsOutput,
			"--"+r.cfg.LinesParam, r.cfg.LinesOutput,
		)
	case ModeServer:
		args = append(args, "--SERVER_FLAG", r.cfg.ServerFlag)
	default:
		return nil, fmt.Errorf("invalid etl mode %q: use %q or %q", r.cfg.Mode, ModeFile, ModeServer)
	}
	return args, nil
}

// Run executes the workspace and writes its output to the log file.
// Outputs of the previous run are removed before the workspace starts.
func (r *Runner) Run(ctx context.Context) error {
	args, err := r.Args()
	if err != nil {
		return err
	}

	for _, out := range []string{r.cfg.PointsOutput, r.cfg.LinesOutput} {
		if out == "" {
			continue
		}
		if err := os.Remove(out); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove stale output %s: %w", out, err)
		}
	}

	if r.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(r.cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	r.logger.Info("Running ETL workspace",
		zap.String("command", r.cfg.Executable+" "+strings.Join(args, " ")),
		zap.String("mode", r.cfg.Mode),
	)

	start := time.Now()
	output, runErr := r.commander.CombinedOutput(ctx, r.cfg.Executable, args...)

	if r.cfg.LogFile != "" {
		if err := os.WriteFile(r.cfg.LogFile, output, 0644); err != nil {
			r.logger.Warn("Failed to save ETL log", zap.String("file", r.cfg.LogFile), zap.Error(err))
		}
	}

	if runErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		r.logger.Error("ETL workspace failed",
			zap.Int("exit_code", exitCode),
			zap.String("log_file", r.cfg.LogFile),
			zap.Error(runErr),
		)
		return fmt.Errorf("etl workspace failed: %w", runErr)
	}

	r.logger.Info("ETL workspace ran successfully",
		zap.Duration("duration", time.Since(start)),
		zap.String("log_file", r.cfg.LogFile),
	)
	return nil
}
