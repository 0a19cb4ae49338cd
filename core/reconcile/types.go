package reconcile

import (
	"context"
	"strings"
	"time"

	"change-detector/core/dataset"
)

// Span is the typed position of one orphaned record along a road.
// Points carry the same value in From and To.
type Span struct {
	Road string
	From float64
	To   float64
}

// Range is a merged group of orphaned records for one road.
type Range struct {
	// Start is the lowest position absorbed into the range.
	Start float64 `json:"start"`

	// End is the furthest position absorbed into the range.
	End float64 `json:"end"`

	// Count is the number of original records absorbed.
	Count int `json:"count"`
}

// ChangeKind classifies a matched pair of ranges.
type ChangeKind string

const (
	// ChangeResized means the two ranges absorbed a different number of records.
	ChangeResized ChangeKind = "resized"
	// ChangeMoved means equal counts but at least one boundary moved.
	ChangeMoved ChangeKind = "moved"
	// ChangeInternal means equal counts and identical boundaries.
	ChangeInternal ChangeKind = "internal"
)

// Match pairs a removed range with its closest added range on the same road.
type Match struct {
	Road          string     `json:"road"`
	Removed       Range      `json:"removed"`
	Added         Range      `json:"added"`
	StartDistance float64    `json:"start_distance"`
	EndDistance   float64    `json:"end_distance"`
	Kind          ChangeKind `json:"kind"`
}

// Category is one bucket of the change taxonomy with its rendered descriptions.
type Category struct {
	Label string   `json:"label"`
	Items []string `json:"items"`
}

// Labels names the five categories of a pipeline, in declaration order.
type Labels struct {
	Resized  string
	Moved    string
	Internal string
	Removed  string
	Added    string
}

// Columns names the positional columns of a pipeline.
// For point data From and To refer to the same column.
type Columns struct {
	Road string
	From string
	To   string
}

// Summary provides aggregate statistics for one comparison.
type Summary struct {
	// ExportRows is the number of rows in the export snapshot.
	ExportRows int `json:"export_rows" yaml:"export_rows"`

	// DatabaseRows is the number of rows in the database snapshot.
	DatabaseRows int `json:"database_rows" yaml:"database_rows"`

	// RemovedRows counts database rows whose identity is missing from the export.
	RemovedRows int `json:"removed_rows" yaml:"removed_rows"`

	// AddedRows counts export rows whose identity is missing from the database.
	AddedRows int `json:"added_rows" yaml:"added_rows"`

	// RemovedRanges counts grouped ranges built from the removed rows.
	RemovedRanges int `json:"removed_ranges" yaml:"removed_ranges"`

	// AddedRanges counts grouped ranges built from the added rows.
	AddedRanges int `json:"added_ranges" yaml:"added_ranges"`

	// Matched counts removed ranges paired with an added range.
	Matched int `json:"matched" yaml:"matched"`

	// Categories maps each category label to its number of items.
	Categories map[string]int `json:"categories" yaml:"categories"`
}

// Report is the result of comparing one pipeline.
type Report struct {
	// Name is the adapter name (e.g., "lines", "points").
	Name string `json:"name"`

	// Title is the banner title used when composing reports.
	Title string `json:"title"`

	// Categories holds the rendered buckets in declaration order.
	Categories []Category `json:"categories"`

	// Matches holds every accepted match, including those the pipeline
	// leaves out of its categories.
	Matches []Match `json:"matches"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Source loads the two snapshots of a pipeline.
type Source interface {
	// LoadExport loads the snapshot produced by the ETL workspace.
	LoadExport(ctx context.Context) (*dataset.Table, error)

	// LoadDatabase loads the snapshot stored in the system-of-record.
	LoadDatabase(ctx context.Context) (*dataset.Table, error)
}

// Spec defines the configuration for a comparison run.
// It bundles the adapter, the snapshot source, and cache settings.
type Spec struct {
	// Adapter provides geometry-specific comparison logic.
	Adapter Adapter

	// IdentityColumns is the ordered list of columns forming the identity tuple.
	IdentityColumns []string

	// Source loads the export and database snapshots.
	Source Source

	// CacheTTL is the time-to-live for cached snapshots.
	// If zero, caching is disabled.
	CacheTTL time.Duration
}

// CacheKey returns a unique key for caching based on spec parameters.
func (s *Spec) CacheKey() string {
	return s.Adapter.Name() + "|" + strings.Join(s.IdentityColumns, "|")
}
