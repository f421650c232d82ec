package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arloai/reportgen/internal/adapter"
	"github.com/arloai/reportgen/internal/composer"
	"github.com/arloai/reportgen/internal/config"
	"github.com/arloai/reportgen/internal/engine"
	"github.com/arloai/reportgen/internal/export"
	"github.com/arloai/reportgen/internal/history"
	"github.com/arloai/reportgen/internal/log"
	"github.com/arloai/reportgen/internal/model"
	"github.com/arloai/reportgen/internal/normalizer"
	"github.com/arloai/reportgen/internal/widget"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [source files]",
		Short: "Generate a campaign performance report from source files",
		Long: `Generate normalizes the given source files (xlsx/xls workbooks, CSV
exports, JSON dumps) into one dataset, renders the widgets selected by
the report category, and exports the assembled report.

Source order matters: when two files carry the same key, the later
file wins. Unreadable files are skipped with a warning.

Examples:
  # Final campaign report to stdout as Markdown
  reportgen generate --category final performance.xlsx placements.csv

  # Mid-campaign report as a standalone HTML page
  reportgen generate --category mid_campaign -f html -o report.html daily.csv

  # Explicit widget selection, ignoring the category defaults
  reportgen generate -w topline_kpi_grid -w daily_spend_chart spend.csv

  # PDF via headless chromium
  reportgen generate --category final -f pdf -o report.pdf performance.xlsx

Configuration file (.reportgen) example:
  template_dir: /opt/brand/templates
  categories:
    final:
      - topline_kpi_grid
      - creative_comparison`,
		Args: cobra.ArbitraryArgs,
		RunE: runGenerateCmd,
	}

	cmd.Flags().StringP("category", "C", "other",
		"Report category: initial, mid_campaign, final, or other")
	cmd.Flags().StringSliceP("widgets", "w", nil,
		"Widgets to render, overriding the category defaults")
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Output format: html, markdown, json, or pdf")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to this file path (default: stdout; required for pdf)")
	cmd.Flags().String("template", config.DefaultTemplate,
		"Page template name for html and pdf output")
	cmd.Flags().String("pdf-backend", config.DefaultPDFBackend,
		"PDF backend: chromium or wkhtmltopdf")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .reportgen in current or home directory)")
	cmd.Flags().Bool("no-history", false,
		"Do not record this generation in the history database")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildGenerateConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runGenerate(ctx, cfg, cmd.OutOrStdout(), logger)
}

// buildGenerateConfig creates a Config from cobra command flags.
func buildGenerateConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Category, err = cmd.Flags().GetString("category")
	if err != nil {
		return nil, err
	}

	// Only an explicitly set flag overrides the category defaults; a
	// nil widget list means "use the defaults" downstream.
	if cmd.Flags().Changed("widgets") {
		cfg.Widgets, err = cmd.Flags().GetStringSlice("widgets")
		if err != nil {
			return nil, err
		}
	}

	cfg.Format, err = cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}

	cfg.Output, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Template, err = cmd.Flags().GetString("template")
	if err != nil {
		return nil, err
	}

	cfg.PDFBackend, err = cmd.Flags().GetString("pdf-backend")
	if err != nil {
		return nil, err
	}

	cfg.NoHistory, err = cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error when it
	// is not found. Otherwise a missing config file just means defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cfg.Overrides, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Sources = args

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runGenerate executes the generation pipeline and exports the result.
func runGenerate(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	e := newEngine(cfg, logger)

	deliverable, err := e.Generate(ctx, engine.Request{
		Category: cfg.Category,
		Sources:  cfg.Sources,
		Widgets:  cfg.Widgets,
		Format:   cfg.Format,
	})
	if err != nil {
		return err
	}

	output, closeOutput, err := openOutput(cfg, stdout)
	if err != nil {
		return err
	}
	defer closeOutput()

	exporter, err := newExporter(cfg, output)
	if err != nil {
		return err
	}

	if _, err := exporter.Export(ctx, deliverable); err != nil {
		return fmt.Errorf("export report: %w", err)
	}
	if cfg.Output != "" {
		logger.Info("report written", "path", cfg.Output, "format", cfg.Format)
	}

	if !cfg.NoHistory {
		recordHistory(ctx, cfg, deliverable, logger)
	}

	return nil
}

// newEngine wires the adapter registry, normalizer, widget registry,
// and composer into an engine.
func newEngine(cfg *config.Config, logger *slog.Logger) *engine.Engine {
	adapters := adapter.NewRegistry(adapter.WithLogger(logger))
	n := normalizer.New(adapters, normalizer.WithLogger(logger))

	widgets := widget.NewDefaultRegistry(widget.WithLogger(logger))

	composerOpts := []composer.Option{composer.WithLogger(logger)}
	if overrides := cfg.CategoryWidgets(); len(overrides) > 0 {
		composerOpts = append(composerOpts, composer.WithCategoryOverrides(overrides))
	}
	c := composer.New(widgets, composerOpts...)

	return engine.New(n, c, engine.WithLogger(logger))
}

// openOutput resolves the export destination: the configured file path,
// or stdout when none is set. PDF output is binary and must go to a
// file.
//
// File destinations are opened lazily on the first write, so a failure
// anywhere between here and the actual export (a missing template, an
// unavailable backend) leaves a pre-existing report at the same path
// untouched.
func openOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func(), error) {
	if cfg.Output == "" {
		if cfg.Format == "pdf" {
			return nil, nil, fmt.Errorf("pdf output requires --output (binary data is not written to stdout)")
		}
		return stdout, func() {}, nil
	}

	w := &lazyFileWriter{path: cfg.Output}
	return w, func() { _ = w.Close() }, nil
}

// lazyFileWriter defers creating (and truncating) its file until the
// first Write call.
type lazyFileWriter struct {
	path string
	file *os.File
}

// Write implements io.Writer, creating the file and any missing parent
// directories on the first call.
func (w *lazyFileWriter) Write(p []byte) (int, error) {
	if w.file == nil {
		if dir := filepath.Dir(w.path); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return 0, fmt.Errorf("create output directory: %w", err)
			}
		}
		f, err := os.Create(w.path) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return 0, fmt.Errorf("create output file: %w", err)
		}
		w.file = f
	}
	return w.file.Write(p)
}

// Close closes the underlying file if a write ever opened it.
func (w *lazyFileWriter) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}

// newExporter builds the exporter for the configured format.
func newExporter(cfg *config.Config, output io.Writer) (export.Exporter, error) {
	htmlOpts := []export.HTMLOption{
		export.WithTemplate(cfg.Template),
		export.WithTemplateDir(cfg.ResolvedTemplateDir()),
	}

	switch cfg.Format {
	case "markdown":
		return export.NewMarkdownExporter(output), nil
	case "json":
		return export.NewJSONExporter(output, export.WithPrettyPrint()), nil
	case "html":
		return export.NewHTMLExporter(output, htmlOpts...)
	case "pdf":
		return export.NewPDFExporter(output, cfg.PDFBackend, htmlOpts...)
	default:
		return nil, fmt.Errorf("%w: %q", engine.ErrUnknownFormat, cfg.Format)
	}
}

// recordHistory saves the generation to the history database. History
// is bookkeeping, not part of the report contract, so failures are
// logged and the command still succeeds.
func recordHistory(ctx context.Context, cfg *config.Config, d *model.Deliverable, logger *slog.Logger) {
	store, err := history.Open(cfg.DBDir, history.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer store.Close() //nolint:errcheck // Best-effort bookkeeping

	if _, err := store.Save(ctx, d, cfg.Format); err != nil {
		logger.Warn("failed to record generation in history", "error", err)
		return
	}
	logger.Debug("generation recorded", "db", store.Path())
}
