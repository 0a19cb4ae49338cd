package reconcile

import (
	"fmt"

	"change-detector/core/reconcile"
	"change-detector/core/utils"
)

// PointIdentityColumns identify a vertex across the export and the database.
var PointIdentityColumns = []string{"ROADNAME", "Measure"}

const (
	// pointPrecision is the number of decimals measures are rounded to before comparison.
	pointPrecision = 5
	// pointGap is the largest distance (km) between consecutive points of one range.
	pointGap = 5.0
	// pointTolerance is the largest start or end shift of a matched point range.
	pointTolerance = 5.0
	// pointDeadZone discards matches shifted by a nonzero amount up to this distance.
	pointDeadZone = 0.002
)

// PointAdapter implements the reconcile.Adapter interface for survey vertices.
type PointAdapter struct{}

// NewPointAdapter creates a new point adapter.
func NewPointAdapter() *PointAdapter {
	return &PointAdapter{}
}

// Name returns the unique name of this adapter.
func (a *PointAdapter) Name() string {
	return "points"
}

// Title returns the banner title of the point report.
func (a *PointAdapter) Title() string {
	return "Point Comparison"
}

// Columns returns the road and measure columns of a point.
// A point has one measure, so From and To name the same column.
func (a *PointAdapter) Columns() reconcile.Columns {
	return reconcile.Columns{Road: "ROADNAME", From: "Measure", To: "Measure"}
}

// Normalize rounds a measure to five decimals, half to even.
func (a *PointAdapter) Normalize(measure float64) float64 {
	return utils.Round(measure, pointPrecision)
}

// Joins merges a point lying within the gap of the last absorbed point.
func (a *PointAdapter) Joins(open reconcile.Range, next reconcile.Span) bool {
	return next.From-open.End <= pointGap
}

// Absorb moves the range end to the next point.
func (a *PointAdapter) Absorb(open reconcile.Range, next reconcile.Span) reconcile.Range {
	open.End = next.To
	open.Count++
	return open
}

// Qualifies applies the symmetric point gate.
func (a *PointAdapter) Qualifies(startDistance, endDistance float64) bool {
	return startDistance <= pointTolerance && endDistance <= pointTolerance
}

// Accepts rejects a best match shifted by a negligible nonzero amount at either end.
func (a *PointAdapter) Accepts(startDistance, endDistance float64) bool {
	return !inDeadZone(startDistance) && !inDeadZone(endDistance)
}

func inDeadZone(d float64) bool {
	return d > 0 && d <= pointDeadZone
}

// Describe renders a point range.
func (a *PointAdapter) Describe(road string, r reconcile.Range) string {
	return fmt.Sprintf("%s %.5f-%.5f points: %d", road, r.Start, r.End, r.Count)
}

// Labels returns the point categories.
func (a *PointAdapter) Labels() reconcile.Labels {
	return reconcile.Labels{
		Resized:  "Points added to or removed from existing section",
		Moved:    "Points have been adjusted or moved",
		Internal: "Points that had internal bounds adjusted",
		Removed:  "Points removed from database",
		Added:    "Points added to database",
	}
}

// KeepMatched leaves matched points out of the report.
// Points on roads orphaned in both directions are therefore not reported.
func (a *PointAdapter) KeepMatched() bool {
	return false
}
