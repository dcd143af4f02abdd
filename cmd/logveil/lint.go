package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"logveil-hq/logveil/pkg/cli"
	"logveil-hq/logveil/pkg/redact"
)

var lintFlags struct {
	file   string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate redaction rule files",
	Long: `Validate redaction rule files for structural and semantic errors.

The lint command loads rule files and performs the same validation the
run command applies at startup:
  - JSON syntax validation
  - File version check
  - Per-rule checks (non-empty search, non-empty replace, pattern compiles)

Examples:
  # Lint a single file
  logveil lint --file redaction-rules.json

  # Lint a directory of rule files
  logveil lint --dir rules/

  # JSON output for CI/CD
  logveil lint --file redaction-rules.json --format json`,
	RunE: lintRules,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "rule file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of rule files")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult represents the validation result for a single rule file.
type LintResult struct {
	File      string `json:"file"`
	Valid     bool   `json:"valid"`
	RuleCount int    `json:"rule_count"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}

func lintRules(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		matches, err := filepath.Glob(filepath.Join(lintFlags.dir, "*.json"))
		if err != nil {
			return fmt.Errorf("failed to list rule files: %w", err)
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return fmt.Errorf("no rule files found")
	}

	results := make([]LintResult, 0, len(files))
	failed := 0
	for _, file := range files {
		result := lintRuleFile(file)
		if !result.Valid {
			failed++
		}
		results = append(results, result)
	}

	if cli.OutputFormat(lintFlags.format) == cli.FormatJSON {
		formatter, err := cli.NewFormatter(cli.FormatJSON)
		if err != nil {
			return err
		}
		if err := formatter.FormatTo(os.Stdout, results); err != nil {
			return err
		}
	} else {
		printLintText(results)
	}

	if failed > 0 {
		return cli.NewCommandError("lint", fmt.Errorf("%d of %d file(s) failed validation", failed, len(files)))
	}
	return nil
}

// lintRuleFile validates one rule file and classifies the failure.
func lintRuleFile(path string) LintResult {
	result := LintResult{File: path}

	store, err := redact.LoadFile(path)
	if err != nil {
		result.Error = err.Error()
		result.ErrorKind = classifyLintError(err)
		return result
	}

	result.Valid = true
	result.RuleCount = store.Len()
	return result
}

func classifyLintError(err error) string {
	var (
		malformed   *redact.MalformedPolicyError
		unsupported *redact.UnsupportedVersionError
		emptySearch *redact.EmptySearchError
		emptyRepl   *redact.EmptyReplacementError
		badPattern  *redact.InvalidPatternError
	)
	switch {
	case errors.As(err, &malformed):
		return "malformed"
	case errors.Is(err, redact.ErrMissingVersion):
		return "missing_version"
	case errors.As(err, &unsupported):
		return "unsupported_version"
	case errors.As(err, &emptySearch):
		return "empty_search"
	case errors.As(err, &emptyRepl):
		return "empty_replacement"
	case errors.As(err, &badPattern):
		return "invalid_pattern"
	default:
		return "io"
	}
}

func printLintText(results []LintResult) {
	for _, result := range results {
		if result.Valid {
			fmt.Printf("✓ %s: %d rule(s) valid\n", result.File, result.RuleCount)
			continue
		}
		fmt.Printf("✗ %s: %s [%s]\n", result.File, result.Error, result.ErrorKind)
	}
}
