package database

import (
	"context"
	"fmt"
	"strings"

	"change-detector/core/dataset"

	"gorm.io/gorm"
)

// ReadTable selects the given columns of a table into a dataset.Table.
// When geometry is set, the column is read as WKT through ST_AsText and
// returned under its own name.
func ReadTable(ctx context.Context, db *gorm.DB, tableName string, columns []string, geometry string) (*dataset.Table, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection not available")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns requested for table %s", tableName)
	}

	selects := make([]string, 0, len(columns)+1)
	for _, col := range columns {
		selects = append(selects, quoteIdent(db, col))
	}
	if geometry != "" {
		g := quoteIdent(db, geometry)
		selects = append(selects, fmt.Sprintf("ST_AsText(%s) AS %s", g, g))
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(selects, ", "), QuoteTable(db, tableName))

	rows, err := db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", tableName, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", tableName, err)
	}

	table := dataset.New(names...)
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", tableName, err)
		}
		for i, v := range values {
			// Drivers hand text columns back as []byte.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		if err := table.Append(values...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate table %s: %w", tableName, err)
	}

	return table, nil
}
