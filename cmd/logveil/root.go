package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "logveil",
	Short: "Logveil - log redaction engine",
	Long: `Logveil removes sensitive data from log streams before it reaches
disk or downstream collectors.

Redaction is driven by a versioned JSON rule file. Each rule pairs a
regular expression with an optional literal trigger substring; a rule's
expression only runs against lines that contain its trigger, which
keeps the fast path cheap for the common case of nothing to redact.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
