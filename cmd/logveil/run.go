package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"logveil-hq/logveil/pkg/audit"
	"logveil-hq/logveil/pkg/audit/recorder"
	"logveil-hq/logveil/pkg/audit/retention"
	"logveil-hq/logveil/pkg/audit/storage"
	"logveil-hq/logveil/pkg/cli"
	"logveil-hq/logveil/pkg/config"
	"logveil-hq/logveil/pkg/redact"
	"logveil-hq/logveil/pkg/server"
	"logveil-hq/logveil/pkg/telemetry/logging"
	"logveil-hq/logveil/pkg/telemetry/metrics"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1024 * 1024

var runFlags struct {
	policyPath string
	logLevel   string
	source     string
	dryRun     bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Redact log lines from stdin to stdout",
	Long: `Read log lines from stdin, apply the configured redaction rules, and
write the sanitized lines to stdout.

Diagnostics go to stderr so the redacted stream stays clean for piping.

Examples:
  # Redact a live log stream
  tail -f app.log | logveil run

  # Use a specific rule file
  cat app.log | logveil run --policy rules.json

  # Validate the configuration and rule file without reading input
  logveil run --dry-run`,
	RunE: runRedactor,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.policyPath, "policy", "p", "", "override rule file path")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&runFlags.source, "source", "stdin", "source label for audit records")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config and rules without reading input")
}

func runRedactor(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}

	// Apply flag overrides
	if runFlags.policyPath != "" {
		cfg.Policy.Path = runFlags.policyPath
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	m := metrics.New()

	// Load redaction rules
	redactor, err := redact.NewFromFile(cfg.Policy.Path)
	if err != nil {
		m.RecordLoadFailure()
		return cli.NewCommandError("run", fmt.Errorf("failed to load rules from %s: %w", cfg.Policy.Path, err))
	}

	// The service's own logger redacts through the same rules, so
	// secrets quoted in diagnostics never leak either. Logs go to
	// stderr; stdout carries only redacted input lines.
	logCfg := logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    os.Stderr,
	}
	if cfg.Telemetry.Logging.RedactSelf {
		logCfg.Redactor = redactor
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	slog.Info("rules loaded",
		"policy_path", cfg.Policy.Path,
		"rule_count", redactor.Store().Len(),
		"trigger_groups", redactor.Store().Groups(),
	)

	if runFlags.dryRun {
		fmt.Fprintf(os.Stderr, "configuration valid, %d rules loaded from %s\n",
			redactor.Store().Len(), cfg.Policy.Path)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Audit recording (optional)
	var auditRecorder *recorder.Recorder
	if cfg.Audit.Enabled {
		auditStorage, err := openAuditStorage(cfg)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		defer auditStorage.Close()

		auditRecorder = recorder.NewRecorder(auditStorage, &recorder.Config{
			Enabled:      true,
			AsyncBuffer:  cfg.Audit.AsyncBuffer,
			WriteTimeout: cfg.Audit.WriteTimeout,
		})
		defer auditRecorder.Close()

		if cfg.Audit.Retention.Schedule != "" {
			pruner := retention.NewPruner(auditStorage, &retention.Config{
				RetentionDays: cfg.Audit.Retention.Days,
				MaxRecords:    cfg.Audit.Retention.MaxRecords,
				PruneSchedule: cfg.Audit.Retention.Schedule,
			})
			if err := pruner.Start(ctx); err != nil {
				slog.Warn("failed to start retention scheduler", "error", err)
			} else {
				defer pruner.Stop()
			}
		}
	}

	// Ops server (optional)
	if cfg.Telemetry.Metrics.Enabled {
		srv := server.NewServer(&server.Config{
			ListenAddress:   cfg.Telemetry.Metrics.ListenAddress,
			ShutdownTimeout: cfg.Telemetry.Metrics.ShutdownTimeout,
		}, m, func() server.Health {
			return server.Health{
				Status:     "ok",
				PolicyPath: cfg.Policy.Path,
				RuleCount:  redactor.Store().Len(),
			}
		})
		if err := srv.Start(ctx); err != nil {
			return cli.NewCommandError("run", err)
		}
		defer srv.Shutdown(context.Background())
	}

	// Redact stdin to stdout until EOF or a shutdown signal.
	errChan := make(chan error, 1)
	go func() {
		errChan <- redactStream(os.Stdin, os.Stdout, redactor, m, auditRecorder)
	}()

	sigChan := cli.WaitForShutdown()

	select {
	case err := <-errChan:
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		slog.Info("input stream closed, shutting down")
		return nil
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		cancel()
		return nil
	}
}

// redactStream reads lines from r, redacts them, and writes the
// sanitized lines to w.
func redactStream(r io.Reader, w io.Writer, redactor *redact.Redactor, m *metrics.Metrics, auditRecorder *recorder.Recorder) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	out := bufio.NewWriter(w)
	defer out.Flush()

	ctx := context.Background()
	for scanner.Scan() {
		start := time.Now()
		redacted, matches := redactor.Apply(scanner.Text())
		m.RecordRedaction(matches, time.Since(start))

		if auditRecorder != nil {
			auditRecorder.Record(ctx, runFlags.source, matches)
		}

		if _, err := out.WriteString(redacted); err != nil {
			return fmt.Errorf("write failed: %w", err)
		}
		if err := out.WriteByte('\n'); err != nil {
			return fmt.Errorf("write failed: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read failed: %w", err)
	}
	return nil
}

// loadRunConfig loads the configuration file, falling back to built-in
// defaults when the default config file does not exist.
func loadRunConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); errors.Is(err, os.ErrNotExist) {
		if !rootCmd.PersistentFlags().Changed("config") {
			cfg := config.NewDefaultConfig()
			applyRunEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("config file not found: %s", cfgFile)
	}
	return config.LoadConfigWithEnvOverrides(cfgFile)
}

// applyRunEnv honors the policy path override even without a config
// file.
func applyRunEnv(cfg *config.Config) {
	if val := os.Getenv("LOGVEIL_POLICY_PATH"); val != "" {
		cfg.Policy.Path = val
	}
}

// openAuditStorage creates the configured audit storage backend.
func openAuditStorage(cfg *config.Config) (audit.Storage, error) {
	switch cfg.Audit.Backend {
	case "sqlite":
		sqliteConfig := storage.DefaultSQLiteConfig()
		sqliteConfig.Path = cfg.Audit.SQLitePath
		auditStorage, err := storage.NewSQLiteStorage(sqliteConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite audit storage: %w", err)
		}
		return auditStorage, nil
	case "memory":
		return storage.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported audit backend: %s", cfg.Audit.Backend)
	}
}
