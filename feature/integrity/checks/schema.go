package checks

import (
	"fmt"
	"strings"

	"change-detector/core/database"
	"change-detector/feature/vertex/models"

	"gorm.io/gorm"
)

// SchemaTarget pairs a configured table with the model describing its columns.
type SchemaTarget struct {
	Table string
	Model any
}

// SchemaReport strictly types the result of a schema integrity check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// VertexTargets returns the targets for the configured segment and point tables.
func VertexTargets(lineTable, pointTable string) []SchemaTarget {
	return []SchemaTarget{
		{Table: lineTable, Model: models.VertexLine{}},
		{Table: pointTable, Model: models.VertexPoint{}},
	}
}

// CheckSchema verifies the database schema using the GORM models as the source of truth.
// A table that cannot be inspected is reported, not returned as an error.
func CheckSchema(db *gorm.DB, targets []SchemaTarget) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, target := range targets {
		actualCols, err := database.GetTableColumns(db, target.Table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", target.Table, err))
			report.Matched = false
			continue
		}
		if len(actualCols) == 0 {
			report.Errors = append(report.Errors, fmt.Sprintf("Table %s not found", target.Table))
			report.Matched = false
			continue
		}

		actualMap := make(map[string]database.ColumnInfo, len(actualCols))
		for _, col := range actualCols {
			actualMap[col.Field] = col
		}

		tblReport := TableReport{
			MissingColumns: []string{},
			TypeMismatches: []string{},
			Status:         "ok",
		}

		for _, field := range models.Fields(target.Model) {
			actCol, exists := actualMap[strings.ToLower(field.Column)]
			if !exists {
				tblReport.MissingColumns = append(tblReport.MissingColumns, field.Column)
				tblReport.Status = "error"
				continue
			}

			// Soft check: only columns with an explicit gorm type are compared.
			expType := strings.ToLower(field.Type)
			if expType != "" && !strings.Contains(actCol.Type, expType) {
				tblReport.TypeMismatches = append(tblReport.TypeMismatches,
					fmt.Sprintf("%s: expected %s, got %s", field.Column, expType, actCol.Type))
				tblReport.Status = "error"
			}
		}

		if tblReport.Status != "ok" {
			report.Matched = false
		}
		report.Tables[target.Table] = tblReport
	}

	return report, nil
}
