// Package dataset holds materialized tabular snapshots.
//
// A Table is an ordered list of column names and rows of cell values. Snapshots from the
// ETL export (CSV) and from the system-of-record database are both loaded into a Table
// before being handed to the reconcile engine, which only ever projects rows onto their
// identity columns.
//
// # Usage
//
//	t, err := dataset.ReadCSV(file)
//	idx, err := t.Index("ROADNAME")
//	if errors.Is(err, dataset.ErrMissingColumn) {
//	    // malformed input
//	}
package dataset
