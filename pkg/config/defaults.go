package config

import "time"

// Default values for configuration fields.
const (
	// Policy defaults
	DefaultPolicyPath = "./redaction-rules.json"

	// Logging defaults
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"
	DefaultRedactSelf = true

	// Metrics defaults
	DefaultMetricsEnabled  = true
	DefaultMetricsAddress  = "127.0.0.1:9600"
	DefaultShutdownTimeout = 10 * time.Second

	// Audit defaults
	DefaultAuditEnabled      = false
	DefaultAuditBackend      = "sqlite"
	DefaultAuditSQLitePath   = "data/audit.db"
	DefaultAuditAsyncBuffer  = 1000
	DefaultAuditWriteTimeout = 5 * time.Second

	// Retention defaults
	DefaultRetentionDays     = 30
	DefaultRetentionSchedule = "0 3 * * *"
)

// NewDefaultConfig returns a configuration populated entirely with
// default values. Boolean fields whose default is true are only set
// here; ApplyDefaults cannot tell an explicit false from unset.
// LoadConfig unmarshals the YAML over this struct, so file values
// always win.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Telemetry.Logging.RedactSelf = DefaultRedactSelf
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	return cfg
}

// ApplyDefaults fills in zero-valued fields with default values.
// Explicitly configured fields are left untouched.
func ApplyDefaults(cfg *Config) {
	if cfg.Policy.Path == "" {
		cfg.Policy.Path = DefaultPolicyPath
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}

	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsAddress
	}
	if cfg.Telemetry.Metrics.ShutdownTimeout == 0 {
		cfg.Telemetry.Metrics.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = DefaultAuditBackend
	}
	if cfg.Audit.SQLitePath == "" {
		cfg.Audit.SQLitePath = DefaultAuditSQLitePath
	}
	if cfg.Audit.AsyncBuffer == 0 {
		cfg.Audit.AsyncBuffer = DefaultAuditAsyncBuffer
	}
	if cfg.Audit.WriteTimeout == 0 {
		cfg.Audit.WriteTimeout = DefaultAuditWriteTimeout
	}
	if cfg.Audit.Retention.Days == 0 && cfg.Audit.Retention.MaxRecords == 0 {
		cfg.Audit.Retention.Days = DefaultRetentionDays
	}
	if cfg.Audit.Retention.Schedule == "" {
		cfg.Audit.Retention.Schedule = DefaultRetentionSchedule
	}
}
