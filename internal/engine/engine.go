// Package engine ties source normalization and report composition into
// one generation entry point.
//
// The engine validates the requested output format up front so that
// misconfiguration fails before any source file is read, then folds the
// sources into a canonical dataset and hands it to the composer. Dirty
// input degrades the report (skipped sources, skipped widgets); only a
// malformed request itself is an error.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloai/reportgen/internal/composer"
	"github.com/arloai/reportgen/internal/model"
	"github.com/arloai/reportgen/internal/normalizer"
)

// ErrUnknownFormat is returned when a generation request names an
// output format family the engine does not produce.
var ErrUnknownFormat = errors.New("unknown output format")

// Output format families the engine can produce.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatPDF      = "pdf"
)

// Formats returns the supported output format families.
func Formats() []string {
	return []string{FormatHTML, FormatMarkdown, FormatJSON, FormatPDF}
}

// ValidateFormat reports whether format names a supported output family.
func ValidateFormat(format string) error {
	for _, f := range Formats() {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Request describes one report generation.
type Request struct {
	// Category selects the default widget list ("initial",
	// "mid_campaign", "final", or anything else for the baseline).
	Category string

	// Sources are the input file paths, in fold order.
	Sources []string

	// Widgets optionally overrides the category defaults. Nil means
	// use the defaults; an empty non-nil slice means render nothing.
	Widgets []string

	// Format is the output format family the caller will export to.
	Format string
}

// Engine generates report deliverables from raw source files.
type Engine struct {
	normalizer *normalizer.Normalizer
	composer   *composer.Composer
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine over the given normalizer and composer.
func New(n *normalizer.Normalizer, c *composer.Composer, opts ...Option) *Engine {
	e := &Engine{
		normalizer: n,
		composer:   c,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Generate produces a deliverable for the request.
//
// An unknown output format is the one hard failure: it is a caller
// mistake, not a data problem, and is rejected before any file I/O.
// Everything downstream is best-effort; unreadable sources and
// ineligible widgets are logged and skipped by the normalizer and
// composer respectively.
func (e *Engine) Generate(ctx context.Context, req Request) (*model.Deliverable, error) {
	if err := ValidateFormat(req.Format); err != nil {
		return nil, err
	}

	e.logger.Info("generating report",
		"category", req.Category,
		"sources", len(req.Sources),
		"format", req.Format,
	)

	dataset := e.normalizer.ProcessSources(ctx, req.Sources)
	if dataset.IsEmpty() {
		e.logger.Warn("no usable data extracted from sources", "sources", len(req.Sources))
	}

	deliverable := e.composer.Compose(req.Category, dataset, req.Widgets)

	e.logger.Info("report generated",
		"category", deliverable.Category,
		"widgets", len(deliverable.Widgets),
		"sources", len(deliverable.Sources),
	)
	return deliverable, nil
}
