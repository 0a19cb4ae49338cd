package vertex

import "time"

// Export formats supported by ExportSource.
const (
	FormatGeoPackage = "geopackage"
	FormatCSV        = "csv"
	FormatStorage    = "storage"
)

// Config holds configuration for the vertex change detection feature.
type Config struct {
	// LineTable is the segment table of the system-of-record (may be schema qualified).
	LineTable string `mapstructure:"line_table" default:"GIS_VertexLine"`
	// PointTable is the point table of the system-of-record (may be schema qualified).
	PointTable string `mapstructure:"point_table" default:"GIS_VertexPoint"`
	// ExportFormat is where the ETL export is read from (geopackage, csv, storage).
	ExportFormat string `mapstructure:"export_format" default:"geopackage"`
	// LinesExport is the segment export: a file path, or an object key for storage.
	LinesExport string `mapstructure:"lines_export" default:"Vertex_Lines.gpkg"`
	// PointsExport is the point export: a file path, or an object key for storage.
	PointsExport string `mapstructure:"points_export" default:"Vertex_Points.gpkg"`
	// LinesLayer is the GeoPackage layer holding the segments.
	LinesLayer string `mapstructure:"lines_layer" default:"FeatureClassLines"`
	// PointsLayer is the GeoPackage layer holding the points.
	PointsLayer string `mapstructure:"points_layer" default:"FeatureClassPoints"`
	// Backup enables the database snapshot backup on full runs.
	Backup bool `mapstructure:"backup" default:"true"`
	// BackupPrefix is the bucket prefix of the snapshot backups.
	BackupPrefix string `mapstructure:"backup_prefix" default:"backups/"`
	// CacheTTLSeconds keeps loaded snapshots for repeated HTTP comparisons. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"60"`
}

// CacheTTL returns the snapshot cache TTL.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
