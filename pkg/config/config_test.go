package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Policy.Path != DefaultPolicyPath {
		t.Errorf("Policy.Path = %q, want %q", cfg.Policy.Path, DefaultPolicyPath)
	}
	if cfg.Telemetry.Logging.Level != DefaultLogLevel {
		t.Errorf("Logging.Level = %q, want %q", cfg.Telemetry.Logging.Level, DefaultLogLevel)
	}
	if cfg.Telemetry.Logging.Format != DefaultLogFormat {
		t.Errorf("Logging.Format = %q, want %q", cfg.Telemetry.Logging.Format, DefaultLogFormat)
	}
	if !cfg.Telemetry.Logging.RedactSelf {
		t.Error("Logging.RedactSelf should default to true")
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("Metrics.Enabled should default to true")
	}
	if cfg.Audit.Enabled {
		t.Error("Audit.Enabled should default to false")
	}
	if cfg.Audit.Retention.Days != DefaultRetentionDays {
		t.Errorf("Retention.Days = %d, want %d", cfg.Audit.Retention.Days, DefaultRetentionDays)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("Default configuration failed validation: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
policy:
  path: /etc/logveil/rules.json
telemetry:
  logging:
    level: debug
    format: text
    redact_self: false
  metrics:
    listen_address: "127.0.0.1:9999"
audit:
  enabled: true
  backend: memory
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Policy.Path != "/etc/logveil/rules.json" {
		t.Errorf("Policy.Path = %q", cfg.Policy.Path)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Logging.RedactSelf {
		t.Error("Explicit redact_self: false was not honored")
	}
	if cfg.Telemetry.Metrics.ListenAddress != "127.0.0.1:9999" {
		t.Errorf("Metrics.ListenAddress = %q", cfg.Telemetry.Metrics.ListenAddress)
	}
	if cfg.Audit.Backend != "memory" {
		t.Errorf("Audit.Backend = %q, want memory", cfg.Audit.Backend)
	}

	// Omitted fields keep their defaults.
	if cfg.Audit.AsyncBuffer != DefaultAuditAsyncBuffer {
		t.Errorf("Audit.AsyncBuffer = %d, want default %d", cfg.Audit.AsyncBuffer, DefaultAuditAsyncBuffer)
	}
	if cfg.Audit.Retention.Schedule != DefaultRetentionSchedule {
		t.Errorf("Retention.Schedule = %q, want default", cfg.Audit.Retention.Schedule)
	}
}

func TestLoadConfig_FileMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "policy: [unclosed")
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("Expected error for malformed YAML")
	}
	if !strings.Contains(err.Error(), "parse") {
		t.Errorf("Expected parse error, got %v", err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
policy:
  path: /etc/logveil/rules.json
`)

	t.Setenv("LOGVEIL_POLICY_PATH", "/override/rules.json")
	t.Setenv("LOGVEIL_LOG_LEVEL", "warn")
	t.Setenv("LOGVEIL_METRICS_ENABLED", "false")
	t.Setenv("LOGVEIL_AUDIT_RETENTION_DAYS", "7")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides returned error: %v", err)
	}

	if cfg.Policy.Path != "/override/rules.json" {
		t.Errorf("Policy.Path = %q, env override not applied", cfg.Policy.Path)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, env override not applied", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("Metrics.Enabled env override not applied")
	}
	if cfg.Audit.Retention.Days != 7 {
		t.Errorf("Retention.Days = %d, env override not applied", cfg.Audit.Retention.Days)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
		field  string
	}{
		{
			name:   "bad log level",
			mutate: func(cfg *Config) { cfg.Telemetry.Logging.Level = "verbose" },
			field:  "telemetry.logging.level",
		},
		{
			name:   "bad log format",
			mutate: func(cfg *Config) { cfg.Telemetry.Logging.Format = "xml" },
			field:  "telemetry.logging.format",
		},
		{
			name:   "bad metrics address",
			mutate: func(cfg *Config) { cfg.Telemetry.Metrics.ListenAddress = "no-port" },
			field:  "telemetry.metrics.listen_address",
		},
		{
			name: "bad audit backend",
			mutate: func(cfg *Config) {
				cfg.Audit.Enabled = true
				cfg.Audit.Backend = "postgres"
			},
			field: "audit.backend",
		},
		{
			name: "bad retention schedule",
			mutate: func(cfg *Config) {
				cfg.Audit.Enabled = true
				cfg.Audit.Retention.Schedule = "not a cron"
			},
			field: "audit.retention.schedule",
		},
		{
			name: "negative retention days",
			mutate: func(cfg *Config) {
				cfg.Audit.Enabled = true
				cfg.Audit.Retention.Days = -1
			},
			field: "audit.retention.days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Expected error mentioning %q, got %v", tt.field, err)
			}
		})
	}
}

func TestValidate_AuditDisabledSkipsBackendChecks(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Audit.Enabled = false
	cfg.Audit.Backend = "postgres"

	if err := Validate(cfg); err != nil {
		t.Errorf("Disabled audit should not be validated, got %v", err)
	}
}
