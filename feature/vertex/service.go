package vertex

import (
	"context"
	"fmt"
	"time"

	"change-detector/core/notify"
	"change-detector/core/reconcile"
	"change-detector/core/storage"
	"change-detector/feature/vertex/models"
	vreconcile "change-detector/feature/vertex/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Pipeline names.
const (
	PipelineLines  = "lines"
	PipelinePoints = "points"
)

// Extractor produces the export snapshots (the ETL workspace).
type Extractor interface {
	Run(ctx context.Context) error
}

// RunOptions selects the optional steps of a full run.
type RunOptions struct {
	// Extract runs the ETL workspace before loading the snapshots.
	Extract bool
	// Backup writes the database snapshots to the bucket.
	Backup bool
	// Notify sends the composed report.
	Notify bool
	// Fresh bypasses cached snapshots.
	Fresh bool
}

// RunResult is the outcome of a full change detection run.
type RunResult struct {
	ID       string            `json:"id" yaml:"id"`
	Started  time.Time         `json:"started" yaml:"started"`
	Duration string            `json:"duration" yaml:"duration"`
	Subject  string            `json:"subject" yaml:"subject"`
	Report   string            `json:"report" yaml:"report"`
	Lines    *reconcile.Report `json:"lines" yaml:"-"`
	Points   *reconcile.Report `json:"points" yaml:"-"`
	Summary  RunSummary        `json:"summary" yaml:"summary"`
	Backups  []string          `json:"backups,omitempty" yaml:"backups,omitempty"`
	Notified bool              `json:"notified" yaml:"notified"`
}

// RunSummary holds the summaries of both pipelines.
type RunSummary struct {
	Lines  reconcile.Summary `json:"lines" yaml:"lines"`
	Points reconcile.Summary `json:"points" yaml:"points"`
}

// Service handles vertex change detection.
type Service struct {
	client    storage.Client
	bucket    string
	logger    *zap.Logger
	db        *gorm.DB
	cfg       Config
	extractor Extractor
	notifier  notify.Notifier
	cache     *reconcile.Cache
	now       func() time.Time
}

// NewService creates a new vertex service.
// extractor and notifier may be nil; the matching run steps then fail or are skipped.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg Config, extractor Extractor, notifier notify.Notifier) *Service {
	return &Service{
		client:    client,
		bucket:    bucket,
		logger:    logger,
		db:        db,
		cfg:       cfg,
		extractor: extractor,
		notifier:  notifier,
		cache:     reconcile.NewCache(),
		now:       time.Now,
	}
}

// Specs returns the comparison specs of both pipelines, keyed by pipeline name.
func (s *Service) Specs() map[string]*reconcile.Spec {
	ttl := s.cfg.CacheTTL()
	return map[string]*reconcile.Spec{
		PipelineLines:  vreconcile.LineSpec(s.lineSource(), ttl),
		PipelinePoints: vreconcile.PointSpec(s.pointSource(), ttl),
	}
}

func (s *Service) lineSource() *PipelineSource {
	return &PipelineSource{
		Export: &ExportSource{
			Format:  s.cfg.ExportFormat,
			Path:    s.cfg.LinesExport,
			Layer:   s.cfg.LinesLayer,
			Columns: vreconcile.LineIdentityColumns,
			client:  s.client,
			bucket:  s.bucket,
		},
		Database: &DatabaseSource{
			Table:    s.cfg.LineTable,
			Columns:  models.LineColumns(),
			Geometry: models.LineGeometry(),
			db:       s.db,
		},
	}
}

func (s *Service) pointSource() *PipelineSource {
	return &PipelineSource{
		Export: &ExportSource{
			Format:  s.cfg.ExportFormat,
			Path:    s.cfg.PointsExport,
			Layer:   s.cfg.PointsLayer,
			Columns: vreconcile.PointIdentityColumns,
			client:  s.client,
			bucket:  s.bucket,
		},
		Database: &DatabaseSource{
			Table:   s.cfg.PointTable,
			Columns: models.PointColumns(),
			db:      s.db,
		},
	}
}

// Compare runs one pipeline and returns its report.
func (s *Service) Compare(ctx context.Context, pipeline string, fresh bool) (*reconcile.Report, error) {
	spec, ok := s.Specs()[pipeline]
	if !ok {
		return nil, fmt.Errorf("unknown pipeline: %s", pipeline)
	}

	if fresh {
		s.cache.Invalidate(spec)
	}
	return reconcile.Run(ctx, spec, s.cache)
}

// snapshots loads the snapshots of a spec through the cache.
func (s *Service) snapshots(ctx context.Context, spec *reconcile.Spec, fresh bool) (*reconcile.Snapshots, error) {
	if fresh {
		s.cache.Invalidate(spec)
	}
	if spec.CacheTTL > 0 {
		return s.cache.GetOrLoad(ctx, spec)
	}
	return reconcile.LoadSnapshots(ctx, spec)
}

// Run performs a full change detection: ETL, snapshot loads, backups, both
// comparisons, and the notification of the composed report.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	result := &RunResult{
		ID:      uuid.NewString(),
		Started: s.now(),
	}
	l := s.logger.With(zap.String("run_id", result.ID))

	if opts.Extract {
		if s.extractor == nil {
			return nil, fmt.Errorf("etl requested but no extractor configured")
		}
		l.Info("Running ETL workspace...")
		if err := s.extractor.Run(ctx); err != nil {
			return nil, err
		}
		// A new export invalidates every cached snapshot.
		opts.Fresh = true
	}

	specs := s.Specs()
	lineSpec, pointSpec := specs[PipelineLines], specs[PipelinePoints]

	var lineSnaps, pointSnaps *reconcile.Snapshots
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lineSnaps, err = s.snapshots(gctx, lineSpec, opts.Fresh)
		return err
	})
	g.Go(func() error {
		var err error
		pointSnaps, err = s.snapshots(gctx, pointSpec, opts.Fresh)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Backup {
		keys, err := s.backup(ctx, result.Started, map[string]*reconcile.Snapshots{
			s.cfg.LineTable:  lineSnaps,
			s.cfg.PointTable: pointSnaps,
		})
		if err != nil {
			return nil, err
		}
		result.Backups = keys
		l.Info("Database snapshots backed up", zap.Strings("keys", keys))
	}

	lines, err := reconcile.Compare(lineSnaps.Export, lineSnaps.Database, lineSpec.IdentityColumns, lineSpec.Adapter)
	if err != nil {
		return nil, fmt.Errorf("line comparison failed: %w", err)
	}
	points, err := reconcile.Compare(pointSnaps.Export, pointSnaps.Database, pointSpec.IdentityColumns, pointSpec.Adapter)
	if err != nil {
		return nil, fmt.Errorf("point comparison failed: %w", err)
	}

	result.Lines = lines
	result.Points = points
	result.Report = reconcile.Compose(lines, points)
	result.Summary = RunSummary{Lines: lines.Summary, Points: points.Summary}
	result.Subject = notify.Subject(s.now())

	if opts.Notify {
		if s.notifier == nil {
			l.Warn("Notification requested but no notifier configured")
		} else {
			if err := s.notifier.Send(ctx, result.Subject, result.Report); err != nil {
				return nil, fmt.Errorf("failed to send report: %w", err)
			}
			result.Notified = true
		}
	}

	result.Duration = time.Since(result.Started).String()
	l.Info("Change detection completed",
		zap.Int("line_removed_rows", lines.Summary.RemovedRows),
		zap.Int("line_added_rows", lines.Summary.AddedRows),
		zap.Int("point_removed_rows", points.Summary.RemovedRows),
		zap.Int("point_added_rows", points.Summary.AddedRows),
		zap.Bool("notified", result.Notified),
	)

	return result, nil
}

// backup writes the database snapshots concurrently and returns the object keys in table order.
func (s *Service) backup(ctx context.Context, at time.Time, snaps map[string]*reconcile.Snapshots) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("backup requested but no storage client configured")
	}

	tables := []string{s.cfg.LineTable, s.cfg.PointTable}
	keys := make([]string, len(tables))

	g, gctx := errgroup.WithContext(ctx)
	for i, table := range tables {
		keys[i] = BackupKey(s.cfg.BackupPrefix, table, at)
		g.Go(func() error {
			return Backup(gctx, s.client, s.bucket, keys[i], snaps[table].Database)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return keys, nil
}
