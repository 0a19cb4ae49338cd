package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReadTimeoutSeconds bounds the time spent reading a request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"30"`
	// WriteTimeoutSeconds bounds the time spent writing a response.
	// A full change detection run can take several minutes.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"600"`
}

// HasAuth reports whether API key protection is enabled.
func (c Config) HasAuth() bool {
	return c.ApiKey != ""
}
