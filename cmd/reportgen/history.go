package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arloai/reportgen/internal/config"
	"github.com/arloai/reportgen/internal/history"
	"github.com/arloai/reportgen/internal/log"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent report generations",
		Long: `History lists recent report generations recorded in the local
history database: when each report was generated, its category and
output format, and which widgets and source files went into it.

Examples:
  # Last 20 generations
  reportgen history

  # Everything
  reportgen history --limit 0`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit,
		"Maximum number of generations to list (0 lists everything)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit < 0 {
		return config.ErrInvalidHistoryLimit
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Opening without create keeps "no reports yet" from materializing
	// an empty database file as a side effect of a read command.
	store, err := history.Open(config.XDGDataDir(), history.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "no report history yet")
		return nil
	}
	defer store.Close() //nolint:errcheck // Read-only listing

	entries, err := store.List(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no report history yet")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprintf(out, "%s  %-12s %-8s %d widget(s)  %s\n",
			e.GeneratedAt.Local().Format(time.DateTime),
			e.Category,
			e.Format,
			len(e.Widgets),
			strings.Join(e.Sources, ", "),
		)
	}

	return nil
}
