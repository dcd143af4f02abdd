package config

import "time"

// Config is the root configuration structure for Logveil.
type Config struct {
	// Policy locates the JSON redaction policy file.
	Policy PolicyConfig `yaml:"policy"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Audit contains configuration for the redaction audit trail.
	Audit AuditConfig `yaml:"audit"`
}

// PolicyConfig locates the redaction policy.
type PolicyConfig struct {
	// Path is the path to the JSON policy file. An empty file is a
	// valid zero-rule policy.
	// Default: "./redaction-rules.json"
	Path string `yaml:"path"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging configures the service's own structured logger.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures the Prometheus metrics endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactSelf routes the service's own log output through the
	// loaded redaction policy.
	// Default: true
	RedactSelf bool `yaml:"redact_self"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the ops HTTP server is started.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address for the ops server exposing
	// /metrics and /healthz.
	// Default: "127.0.0.1:9600"
	ListenAddress string `yaml:"listen_address"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown of the ops server.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// AuditConfig contains configuration for the redaction audit trail.
// Audit records capture which rules fired, never the matched text.
type AuditConfig struct {
	// Enabled controls whether redactions are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend ("sqlite", "memory").
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path for the sqlite backend.
	// Default: "data/audit.db"
	SQLitePath string `yaml:"sqlite_path"`

	// AsyncBuffer is the size of the recorder's async write channel.
	// Default: 1000
	AsyncBuffer int `yaml:"async_buffer"`

	// WriteTimeout bounds each storage write.
	// Default: 5s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// Retention configures pruning of old audit records.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig controls audit record pruning.
type RetentionConfig struct {
	// Days is the maximum age of audit records. Zero disables
	// age-based pruning.
	// Default: 30
	Days int `yaml:"days"`

	// MaxRecords caps the total number of audit records. Zero
	// disables the cap.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`

	// Schedule is a cron expression for when pruning runs. Empty
	// disables scheduled pruning.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`
}
