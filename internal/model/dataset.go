package model

import "time"

// Dataset is the canonical in-memory schema every source adapter produces
// and every widget consumes. All four sections are always non-nil, even
// when empty, so consumers never need nil checks before ranging.
//
// Design decision: We use one shared shape for both adapter output
// ("fragments") and the merged accumulator rather than two parallel types.
// The merge rule is identical at every level (section-wise key set), so a
// second type would only duplicate fields without adding safety.
type Dataset struct {
	// Metrics maps a metric-group name (typically the originating source
	// or sheet name) to descriptive statistics per numeric column.
	Metrics map[string]MetricGroup `json:"metrics"`

	// TimeSeries maps a source+column-qualified series name to an ordered
	// time axis with parallel row records.
	TimeSeries map[string]Series `json:"time_series"`

	// Dimensions maps a source+column-qualified name to categorical
	// value occurrence counts.
	Dimensions map[string]map[string]int `json:"dimensions"`

	// Metadata holds arbitrary descriptive keys (source file identity,
	// adapter kind, row/column counts). Unlike the other sections, keys
	// here are not source-qualified and overwrite on collision is the
	// expected behavior.
	Metadata map[string]any `json:"metadata"`

	// Sources lists the paths of sources successfully folded into this
	// dataset, in encounter order. Maintained by the normalizer; adapters
	// leave it empty.
	Sources []string `json:"sources,omitempty"`
}

// Fragment is the canonical-shaped output of adapting one source, prior
// to merging. It shares the Dataset shape by design.
type Fragment = Dataset

// MetricGroup holds descriptive statistics keyed by column name.
type MetricGroup map[string]Summary

// Summary contains the descriptive statistics computed for one numeric
// column: the five-number summary plus count, mean, and sample standard
// deviation.
type Summary struct {
	// Count is the number of values the statistics were computed over.
	Count float64 `json:"count"`

	// Mean is the arithmetic mean.
	Mean float64 `json:"mean"`

	// Std is the sample standard deviation (n-1 denominator).
	// Zero when fewer than two values are present.
	Std float64 `json:"std"`

	// Min is the smallest value.
	Min float64 `json:"min"`

	// Q1 is the first quartile (25th percentile).
	Q1 float64 `json:"q1"`

	// Median is the 50th percentile.
	Median float64 `json:"median"`

	// Q3 is the third quartile (75th percentile).
	Q3 float64 `json:"q3"`

	// Max is the largest value.
	Max float64 `json:"max"`
}

// Series holds one detected time axis and the row records observed at each
// point. Timestamps and Records are parallel slices: Records[i] contains
// the non-time columns of the row whose time value is Timestamps[i].
type Series struct {
	// Timestamps is the ordered time axis, in source row order.
	Timestamps []time.Time `json:"dates"`

	// Records contains the non-time columns at each point.
	Records []Record `json:"data"`
}

// Record is one row of a time series with the time columns removed.
// Values are either float64 (numeric columns) or string (everything else).
type Record map[string]any

// Float returns the value under key as a float64.
// The second return value reports whether the key exists and holds a number.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// NewDataset creates an empty canonical dataset with all four sections
// initialized. This is the required starting state for a normalization
// pass: consumers rely on every section being present even when empty.
func NewDataset() *Dataset {
	return &Dataset{
		Metrics:    make(map[string]MetricGroup),
		TimeSeries: make(map[string]Series),
		Dimensions: make(map[string]map[string]int),
		Metadata:   make(map[string]any),
	}
}

// Merge folds a fragment into the dataset. For each of the four sections
// the fragment's keys are set into the accumulator, overwriting on key
// collision. Cross-source collisions in Metrics, TimeSeries, and Dimensions
// are avoided primarily by key qualification at the adapter level; the
// merge itself performs no collision detection.
//
// Design decision: Overwrite rather than union is preserved from the
// original engine for compatibility. Callers that need a stricter policy
// can diff key sets before merging; see the composer's source tracking
// for what the engine itself relies on.
func (d *Dataset) Merge(frag *Fragment) {
	if frag == nil {
		return
	}
	for k, v := range frag.Metrics {
		d.Metrics[k] = v
	}
	for k, v := range frag.TimeSeries {
		d.TimeSeries[k] = v
	}
	for k, v := range frag.Dimensions {
		d.Dimensions[k] = v
	}
	for k, v := range frag.Metadata {
		d.Metadata[k] = v
	}
}

// IsEmpty reports whether no section holds any data.
// Metadata-only fragments (e.g. the rich-document placeholder adapter)
// are not considered empty because their notes still merge.
func (d *Dataset) IsEmpty() bool {
	return len(d.Metrics) == 0 &&
		len(d.TimeSeries) == 0 &&
		len(d.Dimensions) == 0 &&
		len(d.Metadata) == 0
}
