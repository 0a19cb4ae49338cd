package etl

// Run modes of the workspace.
const (
	ModeFile   = "file"
	ModeServer = "server"
)

// Config holds configuration for the ETL workspace invocation.
type Config struct {
	// Executable is the path of the workspace runner.
	Executable string `mapstructure:"executable" default:"fme"`
	// Workspace is the workspace file to run.
	Workspace string `mapstructure:"workspace" default:"1 GIS to HIS Vertex work 2.fmw"`
	// Mode is either "file" (write GeoPackages locally) or "server".
	Mode string `mapstructure:"mode" default:"file"`
	// SourceConnection is the workspace's first database connection name.
	SourceConnection string `mapstructure:"source_connection" default:"main"`
	// TargetConnection is the workspace's second database connection name.
	TargetConnection string `mapstructure:"target_connection" default:"main"`
	// PointsParam is the workspace parameter naming the point output.
	PointsParam string `mapstructure:"points_param" default:"DestDataset_OGCGEOPACKAGE_7"`
	// LinesParam is the workspace parameter naming the segment output.
	LinesParam string `mapstructure:"lines_param" default:"DestDataset_OGCGEOPACKAGE_6"`
	// PointsOutput is the point GeoPackage written in file mode.
	PointsOutput string `mapstructure:"points_output" default:"Vertex_Points.gpkg"`
	// LinesOutput is the segment GeoPackage written in file mode.
	LinesOutput string `mapstructure:"lines_output" default:"Vertex_Lines.gpkg"`
	// ServerFlag is the value of --SERVER_FLAG in server mode.
	ServerFlag string `mapstructure:"server_flag" default:"value"`
	// LogFile receives the combined workspace output.
	LogFile string `mapstructure:"log_file" default:"fme_log.txt"`
	// TimeoutSeconds bounds one workspace run. Zero means no limit.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"3600"`
}
