// Package server provides the operational HTTP server. It exposes
// the Prometheus metrics endpoint and a liveness probe; it never
// serves log content.
package server
