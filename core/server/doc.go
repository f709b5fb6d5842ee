// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// only defines the configuration structure (port, API key) consumed by the
// core/config package.
package server
