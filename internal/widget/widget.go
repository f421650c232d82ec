package widget

import (
	"sort"
	"strings"

	"github.com/arloai/reportgen/internal/model"
)

// Widget is a named, stateless visual component.
//
// Both operations must be pure functions of the dataset: no widget holds
// or mutates shared state, and each invocation is independent of prior
// invocations. CanRender is consulted before every render attempt and is
// expected to be cheap (field-presence and non-emptiness checks).
type Widget interface {
	// Name returns the widget's unique catalog name.
	Name() string

	// Description returns a human-readable summary of what the widget
	// shows.
	Description() string

	// RequiredSections lists the canonical sections the widget reads.
	// Used for pre-flight validation and the widgets CLI listing; the
	// capability predicate remains the authority on eligibility.
	RequiredSections() []string

	// CanRender reports whether the widget can produce meaningful
	// output from the dataset.
	CanRender(d *model.Dataset) bool

	// Render produces the widget's markup fragment. Callers are
	// expected to consult CanRender first; rendering an ineligible
	// dataset yields an empty or degenerate fragment, never a panic.
	Render(d *model.Dataset) string
}

// sortedKeys returns the map's keys in sorted order. Widgets iterate
// dataset sections through this helper so that rendering the same dataset
// twice yields byte-identical output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// containsToken reports whether name contains any of the tokens,
// case-insensitively.
func containsToken(name string, tokens ...string) bool {
	lower := strings.ToLower(name)
	for _, tok := range tokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// findSeriesColumn locates the first time series (by sorted series name)
// holding a record column that matches any token. Returns the series name
// and the matched column.
func findSeriesColumn(d *model.Dataset, tokens ...string) (series, column string, ok bool) {
	for _, name := range sortedKeys(d.TimeSeries) {
		s := d.TimeSeries[name]
		if col, found := seriesColumn(s, tokens...); found {
			return name, col, true
		}
	}
	return "", "", false
}

// seriesColumn finds a record column in s matching any token.
// Column sets can differ across sparse records, so all records are
// scanned, and candidates are sorted for determinism.
func seriesColumn(s model.Series, tokens ...string) (string, bool) {
	columns := make(map[string]struct{})
	for _, rec := range s.Records {
		for col := range rec {
			if containsToken(col, tokens...) {
				columns[col] = struct{}{}
			}
		}
	}
	if len(columns) == 0 {
		return "", false
	}
	return sortedKeys(columns)[0], true
}

// findMetricColumn locates the first metric group (by sorted group name)
// holding a column that matches any token.
func findMetricColumn(d *model.Dataset, tokens ...string) (group, column string, ok bool) {
	for _, g := range sortedKeys(d.Metrics) {
		for _, col := range sortedKeys(d.Metrics[g]) {
			if containsToken(col, tokens...) {
				return g, col, true
			}
		}
	}
	return "", "", false
}

// findDimension locates the first dimensions entry (by sorted key) whose
// name matches any token.
func findDimension(d *model.Dataset, tokens ...string) (string, bool) {
	for _, name := range sortedKeys(d.Dimensions) {
		if containsToken(name, tokens...) {
			return name, true
		}
	}
	return "", false
}
