// Package reconcile provides the segment and point adapters of the change detector.
//
// Segments ("lines") are identified by (ROADNAME, MeasureFromKM, MeasureToKM). Overlapping
// or touching segments of one road merge into a range, and a removed range matches an
// added range whose start moved at most 0.1 km and whose end moved at most 0.3 km.
//
// Points are identified by (ROADNAME, Measure) with Measure rounded to five decimals.
// Points closer than 5 km to the previous point merge into a range, and matches may
// move up to 5 km at either end. A best match moved by a nonzero amount of at most
// 0.002 km is discarded. The point report only lists roads orphaned in one direction.
package reconcile
