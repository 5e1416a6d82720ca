// Package app wires the application together: logger, configuration
// loading, store selection, repository registration, and the HTTP server
// lifecycle. Each App instance is fully isolated, with its own logger and
// registry, so tests can run several side by side.
package app
