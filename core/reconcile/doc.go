// Package reconcile implements the change detection engine used to compare two
// snapshots of linear-referenced survey data: the ETL export and the database copy.
//
// A comparison is a pure function of two tables and an identity column list. It runs
// in four forward-only stages:
//
//  1. Set-Difference: records whose identity tuple exists in exactly one snapshot.
//  2. Interval Grouping: per road, orphaned records are sorted by position and merged
//     into contiguous ranges, each carrying the number of records it absorbed.
//  3. Range Matching: on roads orphaned in both directions, each removed range picks
//     its closest added range within a tolerance gate. Matching is greedy and an added
//     range may be claimed by several removed ranges.
//  4. Classification & Rendering: matches are labelled (count change, boundary shift,
//     internal adjustment) and every bucket is rendered into a text report.
//
// # Adapters
//
// Geometry-specific rules (columns, normalization, merge rule, tolerance gate,
// description format, category labels) live behind the Adapter interface.
// See feature/vertex/reconcile for the line and point adapters.
//
// # Loading
//
// Run loads the snapshots of a Spec concurrently through its Source and compares them.
// A Cache keeps loaded snapshots for a TTL, with singleflight stampede protection,
// for callers that compare repeatedly (the HTTP service).
//
// # Usage Example
//
//	report, err := reconcile.Compare(export, database, []string{"ROADNAME", "Measure"}, points.NewAdapter())
//	fmt.Print(reconcile.Compose(lineReport, report))
package reconcile
