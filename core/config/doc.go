// Package config provides configuration management for the change detector.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file (loaded with godotenv). Defaults come from the `default` struct
// tags of each section; nested keys map to upper-case environment variables with
// underscores (vertex.line_table -> VERTEX_LINE_TABLE).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, timeouts)
//   - Database: system-of-record connection (mysql or sqlite)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Vertex: table names, export location, backups and snapshot cache
//   - ETL: workspace invocation of the external transformation tool
//   - Notify: report delivery (smtp, storage, log or none)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Vertex.LineTable)
package config
