package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"change-detector/feature/vertex"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
)

// Output formats of the compare command.
const (
	formatText  = "text"
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// writeResult renders a run result in the requested format.
func writeResult(w io.Writer, format string, result *vertex.RunResult) error {
	switch strings.ToLower(format) {
	case formatText, "":
		_, err := io.WriteString(w, result.Report)
		return err
	case formatTable:
		return writeSummaryTable(w, result.Summary)
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case formatYAML:
		data, err := yaml.MarshalWithOptions(result, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// writeSummaryTable renders the counts of both pipelines, one row per category.
func writeSummaryTable(w io.Writer, s vertex.RunSummary) error {
	table := tablewriter.NewTable(w)
	table.Header("Pipeline", "Metric", "Count")

	pipelines := []struct {
		name string
		rows [][2]string
	}{
		{vertex.PipelineLines, summaryRows(s.Lines.ExportRows, s.Lines.DatabaseRows, s.Lines.RemovedRows, s.Lines.AddedRows, s.Lines.Categories)},
		{vertex.PipelinePoints, summaryRows(s.Points.ExportRows, s.Points.DatabaseRows, s.Points.RemovedRows, s.Points.AddedRows, s.Points.Categories)},
	}

	for _, p := range pipelines {
		for _, row := range p.rows {
			if err := table.Append(p.name, row[0], row[1]); err != nil {
				return err
			}
		}
	}
	return table.Render()
}

func summaryRows(exportRows, databaseRows, removedRows, addedRows int, categories map[string]int) [][2]string {
	rows := [][2]string{
		{"export rows", strconv.Itoa(exportRows)},
		{"database rows", strconv.Itoa(databaseRows)},
		{"removed rows", strconv.Itoa(removedRows)},
		{"added rows", strconv.Itoa(addedRows)},
	}

	labels := make([]string, 0, len(categories))
	for label := range categories {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		rows = append(rows, [2]string{label, strconv.Itoa(categories[label])})
	}
	return rows
}
