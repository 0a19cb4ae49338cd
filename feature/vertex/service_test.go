package vertex

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"change-detector/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/klauspost/compress/gzip"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB whose expectations may be met in any order.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	mock.MatchExpectationsInOrder(false)

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

type fakeExtractor struct {
	calls int
	err   error
}

func (f *fakeExtractor) Run(ctx context.Context) error {
	f.calls++
	return f.err
}

type fakeNotifier struct {
	subject string
	body    string
	err     error
}

func (f *fakeNotifier) Send(ctx context.Context, subject, body string) error {
	f.subject, f.body = subject, body
	return f.err
}

// writeExports writes CSV exports of both pipelines and returns the config reading them.
func writeExports(t *testing.T, lines, points string) Config {
	t.Helper()
	dir := t.TempDir()
	linesPath := filepath.Join(dir, "lines.csv")
	pointsPath := filepath.Join(dir, "points.csv")
	require.NoError(t, os.WriteFile(linesPath, []byte(lines), 0644))
	require.NoError(t, os.WriteFile(pointsPath, []byte(points), 0644))

	return Config{
		LineTable:    "GIS_VertexLine",
		PointTable:   "GIS_VertexPoint",
		ExportFormat: FormatCSV,
		LinesExport:  linesPath,
		PointsExport: pointsPath,
		Backup:       true,
		BackupPrefix: "backups/",
	}
}

func expectSnapshots(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("FROM `GIS_VertexLine`").WillReturnRows(
		sqlmock.NewRows([]string{"Object_ID", "ROADNAME", "MeasureFromKM", "MeasureToKM", "GEOM"}).
			AddRow(1, "Road3", 0.0, 1.0, "LINESTRING(0 0,1 1)").
			AddRow(2, "Old", 2.0, 3.0, nil),
	)
	mock.ExpectQuery("FROM `GIS_VertexPoint`").WillReturnRows(
		sqlmock.NewRows([]string{"Object_ID", "ROADNAME", "Measure"}).
			AddRow(1, "P", 1.0),
	)
}

const (
	linesExport  = "ROADNAME,MeasureFromKM,MeasureToKM\nRoad3,0,1\nNew,0,1\n"
	pointsExport = "ROADNAME,Measure\nP,1.000001\n"
)

func TestService_Run(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	expectSnapshots(sqlMock)

	cfg := writeExports(t, linesExport, pointsExport)
	client := new(mocks.Client)

	var lineBackup []byte
	client.On("PutObject", mock.Anything, "survey", "backups/GIS_VertexLine_backup_2024-01-02_03-04-05.csv.gz", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			lineBackup, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil).Once()
	client.On("PutObject", mock.Anything, "survey", "backups/GIS_VertexPoint_backup_2024-01-02_03-04-05.csv.gz", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()

	extractor := &fakeExtractor{}
	notifier := &fakeNotifier{}
	svc := NewService(client, "survey", zap.NewNop(), db, cfg, extractor, notifier)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	result, err := svc.Run(context.Background(), RunOptions{Extract: true, Backup: true, Notify: true})
	require.NoError(t, err)

	assert.Equal(t, 1, extractor.calls)
	assert.True(t, result.Notified)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "The GIS team Made changes to the data 2024-01-02 03:04:05", result.Subject)
	assert.Equal(t, result.Subject, notifier.subject)
	assert.Equal(t, result.Report, notifier.body)
	assert.Equal(t, []string{
		"backups/GIS_VertexLine_backup_2024-01-02_03-04-05.csv.gz",
		"backups/GIS_VertexPoint_backup_2024-01-02_03-04-05.csv.gz",
	}, result.Backups)

	assert.Contains(t, result.Report, "**************************Line Comparison**************************")
	assert.Contains(t, result.Report, "Segments removed from database:\nOld-2.00000-3.00000 segments: 1")
	assert.Contains(t, result.Report, "Segments added to database:\nNew-0.00000-1.00000 segments: 1")
	assert.Contains(t, result.Report, "No points removed from database.")
	assert.Contains(t, result.Report, "No points added to database.")
	assert.Equal(t, 2, result.Summary.Lines.DatabaseRows)
	assert.Equal(t, 1, result.Summary.Points.ExportRows)

	zr, err := gzip.NewReader(bytes.NewReader(lineBackup))
	require.NoError(t, err)
	csvData, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t,
		"Object_ID,ROADNAME,MeasureFromKM,MeasureToKM,GEOM\n1,Road3,0,1,\"LINESTRING(0 0,1 1)\"\n2,Old,2,3,\n",
		string(csvData))

	client.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestService_RunWithoutOptionalSteps(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	expectSnapshots(sqlMock)

	cfg := writeExports(t, linesExport, pointsExport)
	notifier := &fakeNotifier{}
	svc := NewService(nil, "survey", zap.NewNop(), db, cfg, nil, notifier)

	result, err := svc.Run(context.Background(), RunOptions{})
	require.NoError(t, err)
	assert.False(t, result.Notified)
	assert.Empty(t, result.Backups)
	assert.Empty(t, notifier.subject)
}

func TestService_RunErrors(t *testing.T) {
	t.Run("extract requested without extractor", func(t *testing.T) {
		svc := NewService(nil, "survey", zap.NewNop(), nil, Config{}, nil, nil)
		_, err := svc.Run(context.Background(), RunOptions{Extract: true})
		assert.Error(t, err)
	})

	t.Run("extractor failure", func(t *testing.T) {
		svc := NewService(nil, "survey", zap.NewNop(), nil, Config{}, &fakeExtractor{err: errors.New("fme failed")}, nil)
		_, err := svc.Run(context.Background(), RunOptions{Extract: true})
		assert.ErrorContains(t, err, "fme failed")
	})

	t.Run("missing database", func(t *testing.T) {
		cfg := writeExports(t, linesExport, pointsExport)
		svc := NewService(nil, "survey", zap.NewNop(), nil, cfg, nil, nil)
		_, err := svc.Run(context.Background(), RunOptions{})
		assert.ErrorContains(t, err, "database connection not available")
	})

	t.Run("missing identity column in export", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		expectSnapshots(sqlMock)
		cfg := writeExports(t, "ROADNAME,MeasureFromKM\nRoad3,0\n", pointsExport)
		svc := NewService(nil, "survey", zap.NewNop(), db, cfg, nil, nil)

		_, err := svc.Run(context.Background(), RunOptions{})
		assert.ErrorContains(t, err, "MeasureToKM")
	})

	t.Run("notifier failure", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		expectSnapshots(sqlMock)
		cfg := writeExports(t, linesExport, pointsExport)
		svc := NewService(nil, "survey", zap.NewNop(), db, cfg, nil, &fakeNotifier{err: errors.New("smtp down")})

		_, err := svc.Run(context.Background(), RunOptions{Notify: true})
		assert.ErrorContains(t, err, "smtp down")
	})
}

func TestService_CompareUsesCache(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	sqlMock.ExpectQuery("FROM `GIS_VertexPoint`").WillReturnRows(
		sqlmock.NewRows([]string{"ROADNAME", "Measure"}).AddRow("P", 1.0).AddRow("Gone", 20.0),
	)

	cfg := writeExports(t, linesExport, pointsExport)
	cfg.CacheTTLSeconds = 60
	svc := NewService(nil, "survey", zap.NewNop(), db, cfg, nil, nil)

	for i := 0; i < 2; i++ {
		report, err := svc.Compare(context.Background(), PipelinePoints, false)
		require.NoError(t, err)
		removed, ok := report.Category("Points removed from database")
		require.True(t, ok)
		assert.Equal(t, []string{"Gone 20.00000-20.00000 points: 1"}, removed.Items)
	}

	// A single query means the second comparison reused the cached snapshots.
	assert.NoError(t, sqlMock.ExpectationsWereMet())

	_, err := svc.Compare(context.Background(), "polygons", false)
	assert.Error(t, err)
}

func TestBackupKey(t *testing.T) {
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	assert.Equal(t, "backups/GIS_VertexLine_backup_2024-05-06_07-08-09.csv.gz", BackupKey("backups/", "dbo.GIS_VertexLine", at))
	assert.Equal(t, "GIS_VertexPoint_backup_2024-05-06_07-08-09.csv.gz", BackupKey("", "GIS_VertexPoint", at))
}
