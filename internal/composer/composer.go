// Package composer selects, filters, and assembles widgets into a
// report deliverable.
//
// Given a report category and a merged canonical dataset, the composer
// derives the widget list (explicit override or category-driven default),
// drops widgets that are unregistered or capability-ineligible, renders
// the survivors in request order, and packages the outputs with
// report-level metadata into an immutable Deliverable.
package composer

import (
	"log/slog"
	"strings"
	"time"

	"github.com/arloai/reportgen/internal/model"
	"github.com/arloai/reportgen/internal/widget"
)

// EngineVersion identifies the engine release recorded in report
// metadata.
const EngineVersion = "0.1.0"

// Composer assembles deliverables from a widget registry.
// Composition never mutates the dataset or the registry, so one composer
// is safe to share across concurrent generations as long as nobody
// re-registers widgets mid-flight.
type Composer struct {
	// registry resolves widget names to implementations.
	registry *widget.Registry

	// overrides replaces the static category default lists for the
	// categories it names. Loaded from the config file.
	overrides map[string][]string

	// version is the engine version recorded in report metadata.
	version string

	// now supplies the generation timestamp; replaceable in tests.
	now func() time.Time

	// logger is used for per-widget skip warnings.
	logger *slog.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets a custom logger for the composer.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		c.logger = logger
	}
}

// WithVersion overrides the engine version recorded in metadata.
func WithVersion(version string) Option {
	return func(c *Composer) {
		c.version = version
	}
}

// WithCategoryOverrides replaces the default widget list for the named
// categories. Categories not present keep the static defaults.
func WithCategoryOverrides(overrides map[string][]string) Option {
	return func(c *Composer) {
		c.overrides = overrides
	}
}

// withClock replaces the timestamp source. Used by tests.
func withClock(now func() time.Time) Option {
	return func(c *Composer) {
		c.now = now
	}
}

// New creates a Composer over the given registry.
func New(registry *widget.Registry, opts ...Option) *Composer {
	c := &Composer{
		registry: registry,
		version:  EngineVersion,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Compose builds a deliverable for the category from the dataset.
//
// When widgetNames is nil the category's default ordered list is used.
// Unknown and ineligible widgets are skipped with a warning; rendering
// zero widgets is not an error, the deliverable simply carries an empty
// widget list and the caller decides whether that is acceptable.
func (c *Composer) Compose(category string, d *model.Dataset, widgetNames []string) *model.Deliverable {
	if widgetNames == nil {
		widgetNames = c.defaultWidgets(category)
	}

	c.logger.Info("composing report",
		"category", category,
		"requested_widgets", len(widgetNames),
		"sources", len(d.Sources),
	)

	sections := make(map[string]string)
	rendered := make([]string, 0, len(widgetNames))
	for _, name := range widgetNames {
		w := c.registry.Get(name)
		if w == nil {
			c.logger.Warn("requested widget is not registered, skipping", "widget", name)
			continue
		}
		if !w.CanRender(d) {
			c.logger.Warn("widget cannot render with available data, skipping", "widget", name)
			continue
		}
		sections[name] = w.Render(d)
		rendered = append(rendered, name)
		c.logger.Debug("rendered widget", "widget", name)
	}

	body := make([]string, 0, len(rendered))
	for _, name := range rendered {
		body = append(body, sections[name])
	}

	sources := append([]string(nil), d.Sources...)

	return &model.Deliverable{
		Body:     strings.Join(body, "\n"),
		Category: category,
		Sources:  sources,
		Widgets:  rendered,
		Sections: sections,
		Meta: model.ReportMeta{
			GeneratedAt:   c.now(),
			Category:      category,
			Sources:       sources,
			EngineVersion: c.version,
		},
	}
}

// defaultWidgets resolves the ordered default widget list for a
// category: a configured override when present, otherwise the static
// mapping.
func (c *Composer) defaultWidgets(category string) []string {
	if names, ok := c.overrides[category]; ok {
		return append([]string(nil), names...)
	}
	return DefaultWidgets(category)
}
