// Package main provides the entry point for the reportgen CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for reportgen.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reportgen",
		Short: "Campaign performance report generator",
		Long: `reportgen assembles campaign performance reports from heterogeneous
input files (xlsx/xls workbooks, CSV exports, JSON dumps).

Input files are normalized into one canonical dataset, the report
category selects which widgets render, and the assembled report is
exported as Markdown, HTML, JSON, or PDF. Unreadable files and widgets
without enough data are skipped with a warning rather than failing the
whole report.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewWidgetsCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
