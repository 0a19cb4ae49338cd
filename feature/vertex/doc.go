// Package vertex implements change detection between the survey export and the
// system-of-record tables GIS_VertexLine and GIS_VertexPoint.
//
// # Sources
//
// The export snapshot is read from the GeoPackages written by the ETL workspace
// (a GeoPackage is a SQLite database with one table per layer), from a local CSV
// file, or from a CSV object in the bucket. The database snapshot is read with GORM;
// the segment geometry is read as WKT.
//
// # Runs
//
// Service.Run chains the optional ETL step, the concurrent snapshot loads, the
// gzip-compressed CSV backups of the database snapshots, both comparisons and the
// notification of the composed report:
//
//	**************************Line Comparison**************************
//	Segments removed from database:
//	Road7-0.00000-1.20000 segments: 3
//	...
//
// Snapshots are cached per pipeline for vertex.cache_ttl_seconds so repeated HTTP
// comparisons do not reread the tables; full runs always reload.
//
// # Routes
//
//   - GET  /changes          both pipelines (JSON, or format=text)
//   - GET  /changes/lines    segment pipeline
//   - GET  /changes/points   point pipeline
//   - POST /changes/run      ETL, backup, compare and notify
package vertex
