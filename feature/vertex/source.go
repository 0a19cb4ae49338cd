package vertex

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"change-detector/core/database"
	"change-detector/core/dataset"
	"change-detector/core/storage"

	"gorm.io/gorm"
)

// ExportSource reads one export snapshot produced by the ETL workspace.
type ExportSource struct {
	// Format is one of FormatGeoPackage, FormatCSV or FormatStorage.
	Format string
	// Path is the file path, or the object key for FormatStorage.
	Path string
	// Layer is the GeoPackage layer to read.
	Layer string
	// Columns are the GeoPackage columns to read.
	Columns []string

	client storage.Client
	bucket string
}

// Load reads the export into a table.
func (s *ExportSource) Load(ctx context.Context) (*dataset.Table, error) {
	switch s.Format {
	case FormatGeoPackage:
		return s.loadGeoPackage(ctx)
	case FormatCSV:
		f, err := os.Open(s.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open export %s: %w", s.Path, err)
		}
		defer f.Close()
		return dataset.ReadCSV(f)
	case FormatStorage:
		if s.client == nil {
			return nil, fmt.Errorf("storage client not available for export %s", s.Path)
		}
		data, err := storage.Download(ctx, s.client, s.bucket, s.Path)
		if err != nil {
			return nil, err
		}
		return dataset.ReadCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unknown export format: %s", s.Format)
	}
}

// loadGeoPackage reads the attribute columns of a GeoPackage layer.
// A GeoPackage is a SQLite database with one table per layer.
func (s *ExportSource) loadGeoPackage(ctx context.Context) (*dataset.Table, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("export %s not found: %w", s.Path, err)
	}

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: s.Path})
	if err != nil {
		return nil, fmt.Errorf("failed to open geopackage %s: %w", s.Path, err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	return database.ReadTable(ctx, db, s.Layer, s.Columns, "")
}

// DatabaseSource reads one snapshot of the system-of-record.
type DatabaseSource struct {
	// Table is the (optionally schema qualified) table name.
	Table string
	// Columns are the attribute columns to read.
	Columns []string
	// Geometry is the optional geometry column, read as WKT.
	Geometry string

	db *gorm.DB
}

// Load reads the table into a snapshot.
func (s *DatabaseSource) Load(ctx context.Context) (*dataset.Table, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection not available")
	}
	return database.ReadTable(ctx, s.db, s.Table, s.Columns, s.Geometry)
}

// PipelineSource pairs the export and database snapshots of one pipeline.
// It implements reconcile.Source.
type PipelineSource struct {
	Export   *ExportSource
	Database *DatabaseSource
}

// LoadExport loads the export snapshot.
func (p *PipelineSource) LoadExport(ctx context.Context) (*dataset.Table, error) {
	return p.Export.Load(ctx)
}

// LoadDatabase loads the database snapshot.
func (p *PipelineSource) LoadDatabase(ctx context.Context) (*dataset.Table, error) {
	return p.Database.Load(ctx)
}
