package reconcile

import (
	"context"
	"errors"
	"fmt"

	"change-detector/core/dataset"
	"change-detector/core/utils"
)

// ErrInvalidMeasure is returned when a measure cell cannot be read as a number.
var ErrInvalidMeasure = errors.New("invalid measure")

// Compare diffs the export snapshot against the database snapshot and classifies
// the differences. Database-only records are reported as removed, export-only
// records as added. Compare performs no I/O and does not modify its inputs.
func Compare(export, database *dataset.Table, idColumns []string, adapter Adapter) (*Report, error) {
	if len(idColumns) == 0 {
		return nil, fmt.Errorf("no identity columns given")
	}

	exportNorm, err := normalizeMeasures(export, adapter)
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	databaseNorm, err := normalizeMeasures(database, adapter)
	if err != nil {
		return nil, fmt.Errorf("database snapshot: %w", err)
	}

	removedRows, addedRows, err := Difference(exportNorm, databaseNorm, idColumns)
	if err != nil {
		return nil, err
	}

	removedSpans, err := extractSpans(removedRows, adapter.Columns())
	if err != nil {
		return nil, err
	}
	addedSpans, err := extractSpans(addedRows, adapter.Columns())
	if err != nil {
		return nil, err
	}

	removed := Group(removedSpans, adapter)
	added := Group(addedSpans, adapter)

	intersecting := IntersectRoads(removed, added)
	matches := MatchRanges(removed, added, intersecting, adapter)

	categories := buildCategories(removed, added, intersecting, matches, adapter)
	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		counts[c.Label] = len(c.Items)
	}

	return &Report{
		Name:       adapter.Name(),
		Title:      adapter.Title(),
		Categories: categories,
		Matches:    matches,
		Summary: Summary{
			ExportRows:    export.Len(),
			DatabaseRows:  database.Len(),
			RemovedRows:   removedRows.Len(),
			AddedRows:     addedRows.Len(),
			RemovedRanges: countRanges(removed),
			AddedRanges:   countRanges(added),
			Matched:       len(matches),
			Categories:    counts,
		},
	}, nil
}

// normalizeMeasures returns a copy of the table whose measure columns hold
// float64 values normalized by the adapter.
func normalizeMeasures(t *dataset.Table, adapter Adapter) (*dataset.Table, error) {
	cols := adapter.Columns()
	if _, err := t.Index(cols.Road); err != nil {
		return nil, err
	}

	measures := []string{cols.From}
	if cols.To != cols.From {
		measures = append(measures, cols.To)
	}
	idx, err := t.Indexes(measures)
	if err != nil {
		return nil, err
	}

	out := t.Clone()
	for i, row := range out.Rows {
		for j, pos := range idx {
			v, err := utils.ToFloat64(row[pos])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %s: %v", ErrInvalidMeasure, i+1, measures[j], err)
			}
			n := adapter.Normalize(v)
			if n == 0 {
				// -0 and 0 must share one identity key.
				n = 0
			}
			row[pos] = n
		}
	}
	return out, nil
}

// extractSpans reads the typed position of every row of a normalized table.
func extractSpans(t *dataset.Table, cols Columns) ([]Span, error) {
	idx, err := t.Indexes([]string{cols.Road, cols.From, cols.To})
	if err != nil {
		return nil, err
	}

	spans := make([]Span, 0, t.Len())
	for _, row := range t.Rows {
		spans = append(spans, Span{
			Road: utils.ToString(row[idx[0]]),
			From: row[idx[1]].(float64),
			To:   row[idx[2]].(float64),
		})
	}
	return spans, nil
}

// Run loads both snapshots of the spec and compares them.
// When a cache is given and the spec enables caching, snapshots are reused until they expire.
func Run(ctx context.Context, spec *Spec, cache *Cache) (*Report, error) {
	var (
		snaps *Snapshots
		err   error
	)
	if cache != nil && spec.CacheTTL > 0 {
		snaps, err = cache.GetOrLoad(ctx, spec)
	} else {
		snaps, err = LoadSnapshots(ctx, spec)
	}
	if err != nil {
		return nil, err
	}

	return Compare(snaps.Export, snaps.Database, spec.IdentityColumns, spec.Adapter)
}
