// Package database handles database connections, snapshot reads and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL (the system-of-record) or
// SQLite (local runs and tests) connections from the application's configuration.
//
// # Snapshot Reads
//
// ReadTable selects a list of columns of a survey table into a dataset.Table.
// Geometry columns are read as WKT via ST_AsText. Table names may be schema
// qualified ("dbo.GIS_VertexLine").
//
// # Schema Inspection
//
// GetTableColumns retrieves the column definitions of a table. It backs the schema
// integrity check, which verifies the survey tables against the vertex models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	snapshot, err := database.ReadTable(ctx, db, "GIS_VertexPoint", []string{"ROADNAME", "Measure"}, "")
package database
