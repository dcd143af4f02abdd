// Package cli provides shared helpers for logveil commands: typed
// command errors, shutdown signal handling, and output formatting.
package cli
