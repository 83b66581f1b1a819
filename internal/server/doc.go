// Package server provides the HTTP and WebSocket surface.
//
// Echo handlers for the poll API, the live-update WebSocket endpoint,
// and the observability endpoints (health, metrics, version).
package server
