// Package config defines the Logveil service configuration.
//
// Configuration is loaded from a YAML file, filled in with defaults,
// optionally overridden by LOGVEIL_* environment variables, and then
// validated. The redaction policy itself is a separate JSON file (see
// pkg/redact); this package only carries its path.
//
// Loading sequence:
//  1. Parse YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides (LoadConfigWithEnvOverrides)
//  4. Validate the final configuration
package config
