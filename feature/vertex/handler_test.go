package vertex

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"change-detector/core/notify"
	"change-detector/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, extractor Extractor, notifier notify.Notifier) *fiber.App {
	db, sqlMock := setupMockDB(t)
	expectSnapshots(sqlMock)

	cfg := writeExports(t, linesExport, pointsExport)
	cfg.Backup = false

	app := fiber.New()
	svc := NewService(new(mocks.Client), "survey", zap.NewNop(), db, cfg, extractor, notifier)
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func TestHandleGetChanges(t *testing.T) {
	app := setupTestApp(t, nil, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/changes", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["report"], "Segments removed from database:")
	assert.Equal(t, false, body["notified"])

	summary := body["summary"].(map[string]any)
	lines := summary["lines"].(map[string]any)
	assert.EqualValues(t, 1, lines["removed_rows"])
}

func TestHandleGetChanges_Text(t *testing.T) {
	app := setupTestApp(t, nil, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/changes?format=text", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n\nSegments added to database:\nNew-0.00000-1.00000 segments: 1")
}

func TestHandleGetPipeline(t *testing.T) {
	app := setupTestApp(t, nil, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/changes/lines", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "lines", report["name"])
	assert.Len(t, report["categories"], 5)
}

func TestHandleRun(t *testing.T) {
	extractor := &fakeExtractor{}
	notifier := &fakeNotifier{}
	app := setupTestApp(t, extractor, notifier)

	resp, err := app.Test(httptest.NewRequest("POST", "/changes/run", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	assert.Equal(t, 1, extractor.calls)
	assert.Contains(t, notifier.body, "Point Comparison")
}

func TestHandleRun_Error(t *testing.T) {
	app := setupTestApp(t, nil, nil)

	resp, err := app.Test(httptest.NewRequest("POST", "/changes/run?etl=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "no extractor")
}

func TestLoader(t *testing.T) {
	db, _ := setupMockDB(t)
	feature := NewFeature(new(mocks.Client), "survey", zap.NewNop(), db, Config{}, nil, nil)

	assert.Equal(t, "vertex", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))

	disabled := NewFeature(new(mocks.Client), "survey", zap.NewNop(), nil, Config{}, nil, nil)
	assert.False(t, disabled.IsEnabled())
}
