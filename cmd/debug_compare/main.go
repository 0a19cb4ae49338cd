package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"change-detector/core/config"
	"change-detector/core/database"
	"change-detector/core/reconcile"
	"change-detector/core/storage"
	"change-detector/feature/vertex"

	"go.uber.org/zap"
)

// debug_compare dumps both snapshots' row counts, the orphan counts of the report and
// every accepted match (including the point matches left out of the report).
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	svc := vertex.NewService(client, cfg.Storage.Bucket, zap.NewNop(), db, cfg.Vertex, nil, nil)
	ctx := context.Background()
	output := map[string]interface{}{}

	for _, name := range []string{vertex.PipelineLines, vertex.PipelinePoints} {
		spec := svc.Specs()[name]
		fmt.Printf("=== %s ===\n", spec.Adapter.Title())

		snaps, err := reconcile.LoadSnapshots(ctx, spec)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Export rows: %d, database rows: %d\n", snaps.Export.Len(), snaps.Database.Len())

		report, err := reconcile.Compare(snaps.Export, snaps.Database, spec.IdentityColumns, spec.Adapter)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Rows only in database: %d, rows only in export: %d\n", report.Summary.RemovedRows, report.Summary.AddedRows)
		for _, m := range report.Matches {
			fmt.Printf("%s %s: %.5f-%.5f -> %.5f-%.5f\n", m.Kind, m.Road, m.Removed.Start, m.Removed.End, m.Added.Start, m.Added.End)
		}
		output[name] = report
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile("debug_compare.json", data, 0644); err != nil {
		log.Fatal(err)
	}

	fmt.Println("\nDebug complete. Check debug_compare.json for details.")
}
