package etl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCommander struct {
	name   string
	args   []string
	output []byte
	err    error
}

func (f *fakeCommander) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return f.output, f.err
}

func testConfig(dir string) Config {
	return Config{
		Executable:       "fme",
		Workspace:        "vertex.fmw",
		Mode:             ModeFile,
		SourceConnection: "main",
		TargetConnection: "main",
		PointsParam:      "DestDataset_OGCGEOPACKAGE_7",
		LinesParam:       "DestDataset_OGCGEOPACKAGE_6",
		PointsOutput:     filepath.Join(dir, "Vertex_Points.gpkg"),
		LinesOutput:      filepath.Join(dir, "Vertex_Lines.gpkg"),
		ServerFlag:       "value",
		LogFile:          filepath.Join(dir, "fme_log.txt"),
	}
}

func TestRunner_Args(t *testing.T) {
	cfg := testConfig("out")

	args, err := NewRunner(cfg, zap.NewNop()).Args()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"vertex.fmw",
		"--DBConnection1", "main",
		"--DBConnection2", "main",
		"--DestDataset_OGCGEOPACKAGE_7", filepath.Join("out", "Vertex_Points.gpkg"),
		"--DestDataset_OGCGEOPACKAGE_6", filepath.Join("out", "Vertex_Lines.gpkg"),
	}, args)

	cfg.Mode = ModeServer
	args, err = NewRunner(cfg, zap.NewNop()).Args()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"vertex.fmw",
		"--DBConnection1", "main",
		"--DBConnection2", "main",
		"--SERVER_FLAG", "value",
	}, args)

	cfg.Mode = "cloud"
	_, err = NewRunner(cfg, zap.NewNop()).Args()
	assert.Error(t, err)
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	require.NoError(t, os.WriteFile(cfg.PointsOutput, []byte("stale"), 0644))

	cmd := &fakeCommander{output: []byte("Translation was SUCCESSFUL")}
	runner := NewRunner(cfg, zap.NewNop()).WithCommander(cmd)

	require.NoError(t, runner.Run(context.Background()))

	assert.Equal(t, "fme", cmd.name)
	assert.Equal(t, "vertex.fmw", cmd.args[0])
	_, err := os.Stat(cfg.PointsOutput)
	assert.True(t, errors.Is(err, os.ErrNotExist), "stale output should be removed")

	log, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Equal(t, "Translation was SUCCESSFUL", string(log))
}

func TestRunner_RunFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	cmd := &fakeCommander{output: []byte("ERROR |Translation FAILED"), err: errors.New("exit status 1")}
	err := NewRunner(cfg, zap.NewNop()).WithCommander(cmd).Run(context.Background())
	assert.ErrorContains(t, err, "exit status 1")

	log, readErr := os.ReadFile(cfg.LogFile)
	require.NoError(t, readErr)
	assert.Equal(t, "ERROR |Translation FAILED", string(log))
}

func TestRunner_RunInvalidMode(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Mode = "cloud"
	require.NoError(t, os.WriteFile(cfg.LinesOutput, []byte("keep"), 0644))

	cmd := &fakeCommander{}
	err := NewRunner(cfg, zap.NewNop()).WithCommander(cmd).Run(context.Background())
	assert.Error(t, err)
	assert.Empty(t, cmd.name)

	// Nothing is touched when the mode is rejected.
	_, statErr := os.Stat(cfg.LinesOutput)
	assert.NoError(t, statErr)
}
