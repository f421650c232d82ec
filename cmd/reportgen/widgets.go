package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arloai/reportgen/internal/adapter"
	"github.com/arloai/reportgen/internal/log"
	"github.com/arloai/reportgen/internal/normalizer"
	"github.com/arloai/reportgen/internal/widget"
)

// NewWidgetsCmd creates the widgets command.
func NewWidgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widgets",
		Short: "List the report widgets in the default catalog",
		Long: `Widgets lists every widget registered in the default catalog with a
short description.

With --sources, the given files are normalized first and each widget is
marked eligible or not for the resulting dataset, showing which widgets
a report over those files would actually contain.

Examples:
  # List the catalog
  reportgen widgets

  # Show which widgets the data can feed
  reportgen widgets --sources performance.xlsx --sources placements.csv`,
		RunE: runWidgetsCmd,
	}

	cmd.Flags().StringSliceP("sources", "s", nil,
		"Source files to check widget eligibility against")

	return cmd
}

// runWidgetsCmd executes the widgets command.
func runWidgetsCmd(cmd *cobra.Command, _ []string) error {
	sources, err := cmd.Flags().GetStringSlice("sources")
	if err != nil {
		return err
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	slog.SetDefault(logger)

	registry := widget.NewDefaultRegistry(widget.WithLogger(logger))

	// Without sources there is nothing to check eligibility against;
	// every widget is listed as available.
	eligible := map[string]bool{}
	checkEligibility := len(sources) > 0
	if checkEligibility {
		adapters := adapter.NewRegistry(adapter.WithLogger(logger))
		n := normalizer.New(adapters, normalizer.WithLogger(logger))
		dataset := n.ProcessSources(cmd.Context(), sources)
		for _, name := range registry.EligibleFor(dataset) {
			eligible[name] = true
		}
	}

	out := cmd.OutOrStdout()
	for _, name := range registry.Names() {
		w := registry.Get(name)
		if w == nil {
			continue
		}
		if checkEligibility {
			mark := " "
			if eligible[name] {
				mark = "*"
			}
			fmt.Fprintf(out, "%s %-28s %s\n", mark, name, w.Description())
			continue
		}
		fmt.Fprintf(out, "%-28s %s\n", name, w.Description())
	}
	if checkEligibility {
		fmt.Fprintf(out, "\n* eligible for the given sources\n")
	}

	return nil
}
