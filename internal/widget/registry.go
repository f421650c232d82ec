package widget

import (
	"log/slog"

	"github.com/arloai/reportgen/internal/model"
)

// Registry catalogs widgets by name.
//
// Design decision: The registry is an explicit value constructed by the
// caller and passed into composition, not a process-wide singleton. It is
// read-mostly after construction and safe to share read-only across
// concurrent compositions; callers that re-register widgets concurrently
// with an in-flight composition must synchronize externally.
type Registry struct {
	// widgets holds the catalog by name.
	widgets map[string]Widget

	// order preserves first-registration order so listings and
	// eligibility scans are deterministic.
	order []string

	// logger is used for registration and degradation logging.
	logger *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets a custom logger for the registry.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		widgets: make(map[string]Widget),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// CatalogEntry pairs a catalog name with its widget constructor.
// Constructors may fail (an optional component unavailable in this
// build); the failed entry degrades to a placeholder under the same name.
type CatalogEntry struct {
	// Name is the catalog name.
	Name string

	// Build constructs the widget.
	Build func() (Widget, error)
}

// DefaultCatalog returns the fixed default widget catalog in its
// canonical order.
func DefaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		{Name: "topline_kpi_grid", Build: func() (Widget, error) { return NewToplineKPIGrid(), nil }},
		{Name: "budget_pacing_meter", Build: func() (Widget, error) { return NewBudgetPacingMeter(), nil }},
		{Name: "ctr_over_time", Build: func() (Widget, error) { return NewCTROverTime(), nil }},
		{Name: "imps_clicks_over_time", Build: func() (Widget, error) { return NewImpsClicksOverTime(), nil }},
		{Name: "daily_spend_chart", Build: func() (Widget, error) { return NewDailySpendChart(), nil }},
		{Name: "placement_performance_table", Build: func() (Widget, error) { return NewPlacementPerformanceTable(), nil }},
		{Name: "creative_comparison", Build: func() (Widget, error) { return NewCreativeComparison(), nil }},
		{Name: "session_engagement_chart", Build: func() (Widget, error) { return NewSessionEngagementChart(), nil }},
	}
}

// NewDefaultRegistry creates a Registry populated from the default
// catalog. A catalog entry whose constructor fails degrades to an inert
// placeholder under the same name, so name-based lookups for the default
// catalog never fail and downstream selection needs no special cases.
func NewDefaultRegistry(opts ...RegistryOption) *Registry {
	return NewRegistryFromCatalog(DefaultCatalog(), opts...)
}

// NewRegistryFromCatalog creates a Registry populated from the given
// catalog entries, degrading failed entries to placeholders.
func NewRegistryFromCatalog(catalog []CatalogEntry, opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	for _, entry := range catalog {
		w, err := entry.Build()
		if err != nil {
			r.logger.Warn("widget failed to load, using placeholder",
				"widget", entry.Name,
				"error", err,
			)
			w = NewPlaceholder(entry.Name)
		}
		r.Register(w)
	}
	return r
}

// Register adds a widget to the catalog. Registration is idempotent by
// name: registering a name already present replaces the prior entry and
// keeps its original catalog position.
func (r *Registry) Register(w Widget) {
	name := w.Name()
	if _, exists := r.widgets[name]; !exists {
		r.order = append(r.order, name)
	}
	r.widgets[name] = w
	r.logger.Debug("registered widget", "widget", name)
}

// Get returns the widget registered under name, or nil when absent.
func (r *Registry) Get(name string) Widget {
	return r.widgets[name]
}

// Names returns all registered widget names in catalog order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// EligibleFor returns the names of all widgets whose capability predicate
// accepts the dataset, in catalog order.
func (r *Registry) EligibleFor(d *model.Dataset) []string {
	var eligible []string
	for _, name := range r.order {
		if r.widgets[name].CanRender(d) {
			eligible = append(eligible, name)
		}
	}
	return eligible
}
