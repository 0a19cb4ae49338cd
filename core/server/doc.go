// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// configuration structure for server settings: the listen port, the API key
// and the request timeouts.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings.
package server
