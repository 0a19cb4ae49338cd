package reconcile

import (
	"fmt"
	"math"

	"change-detector/core/reconcile"
)

// LineIdentityColumns identify a segment across the export and the database.
var LineIdentityColumns = []string{"ROADNAME", "MeasureFromKM", "MeasureToKM"}

const (
	// lineStartTolerance is the largest start shift (km) of a matched segment range.
	lineStartTolerance = 0.1
	// lineEndTolerance is the largest end shift (km) of a matched segment range.
	lineEndTolerance = 0.3
)

// LineAdapter implements the reconcile.Adapter interface for road segments.
type LineAdapter struct{}

// NewLineAdapter creates a new segment adapter.
func NewLineAdapter() *LineAdapter {
	return &LineAdapter{}
}

// Name returns the unique name of this adapter.
func (a *LineAdapter) Name() string {
	return "lines"
}

// Title returns the banner title of the segment report.
func (a *LineAdapter) Title() string {
	return "Line Comparison"
}

// Columns returns the road and measure columns of a segment.
func (a *LineAdapter) Columns() reconcile.Columns {
	return reconcile.Columns{Road: "ROADNAME", From: "MeasureFromKM", To: "MeasureToKM"}
}

// Normalize keeps segment measures exact.
func (a *LineAdapter) Normalize(measure float64) float64 {
	return measure
}

// Joins merges a segment that starts at or before the end of the open range.
func (a *LineAdapter) Joins(open reconcile.Range, next reconcile.Span) bool {
	return next.From <= open.End
}

// Absorb extends the open range to the furthest end seen.
func (a *LineAdapter) Absorb(open reconcile.Range, next reconcile.Span) reconcile.Range {
	open.End = math.Max(open.End, next.To)
	open.Count++
	return open
}

// Qualifies applies the asymmetric segment gate.
func (a *LineAdapter) Qualifies(startDistance, endDistance float64) bool {
	return startDistance <= lineStartTolerance && endDistance <= lineEndTolerance
}

// Accepts keeps every selected segment match.
func (a *LineAdapter) Accepts(startDistance, endDistance float64) bool {
	return true
}

// Describe renders a segment range.
func (a *LineAdapter) Describe(road string, r reconcile.Range) string {
	return fmt.Sprintf("%s-%.5f-%.5f segments: %d", road, r.Start, r.End, r.Count)
}

// Labels returns the segment categories.
func (a *LineAdapter) Labels() reconcile.Labels {
	return reconcile.Labels{
		Resized:  "Segments added to or removed from existing section",
		Moved:    "Segments have been adjusted or moved",
		Internal: "Segments that had internal bounds adjusted",
		Removed:  "Segments removed from database",
		Added:    "Segments added to database",
	}
}

// KeepMatched reports matched segments.
func (a *LineAdapter) KeepMatched() bool {
	return true
}
