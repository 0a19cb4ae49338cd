package reconcile

// Adapter defines the interface for geometry-specific comparison logic.
// Each adapter describes how positions are read, normalized, grouped, matched
// and rendered for one kind of survey data (e.g., line segments, points).
type Adapter interface {
	// Name returns the unique name of this adapter (e.g., "lines", "points").
	Name() string

	// Title returns the banner title of the pipeline report (e.g., "Line Comparison").
	Title() string

	// Columns returns the road and measure columns read from each record.
	Columns() Columns

	// Normalize returns the canonical value of a measure before identity comparison.
	Normalize(measure float64) float64

	// Joins reports whether the next position, in sorted order, merges into the open range.
	Joins(open Range, next Span) bool

	// Absorb returns the open range extended by the next position.
	// Implementations must increment Count.
	Absorb(open Range, next Span) Range

	// Qualifies reports whether a candidate passes the tolerance gate.
	Qualifies(startDistance, endDistance float64) bool

	// Accepts reports whether the selected best candidate is kept.
	// It runs after selection, so a rejected best match is not replaced by a runner-up.
	Accepts(startDistance, endDistance float64) bool

	// Describe renders a range of the given road.
	Describe(road string, r Range) string

	// Labels returns the category labels of the pipeline.
	Labels() Labels

	// KeepMatched reports whether matched categories are part of the report.
	KeepMatched() bool
}
