package adapter

import (
	"strconv"
	"strings"
	"time"

	"github.com/arloai/reportgen/internal/model"
	"github.com/arloai/reportgen/internal/stats"
)

// timestampLayouts are the accepted cell formats for time-axis detection,
// tried in order. The list covers the date styles seen in real campaign
// exports (ISO, slash-separated US and ISO ordering, and full timestamps).
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// Frame is an in-memory table parsed from one tabular source (a CSV file
// or a single workbook sheet): a header row plus raw cell text.
type Frame struct {
	// Columns is the header row.
	Columns []string

	// Rows holds the data cells in source order. Short rows are allowed;
	// missing cells are treated as empty.
	Rows [][]string
}

// columnKind classifies a column for normalization.
type columnKind int

const (
	// kindText is a categorical/text column, counted into dimensions.
	kindText columnKind = iota

	// kindNumeric is a column whose every non-empty cell parses as a
	// number, summarized into metrics.
	kindNumeric

	// kindTime is a time-axis column, extracted into a time series and
	// excluded from metrics and dimensions.
	kindTime
)

// Normalize converts the frame into a canonical fragment under the given
// source name.
//
// Per column it: detects time axes (by a case-insensitive "date" token in
// the name, or because every non-empty cell parses as a timestamp), builds
// one time-series entry per axis with the time columns removed from the
// row records, summarizes every numeric column into one metrics entry
// keyed by the source name, and counts the values of every remaining
// text column into a source+column-qualified dimensions entry.
func (f *Frame) Normalize(source string) *model.Fragment {
	frag := model.NewDataset()
	frag.Metadata["source_name"] = source
	frag.Metadata["rows"] = len(f.Rows)
	frag.Metadata["columns"] = append([]string(nil), f.Columns...)

	kinds := make([]columnKind, len(f.Columns))
	for i := range f.Columns {
		kinds[i] = f.classifyColumn(i)
	}

	f.extractTimeSeries(frag, source, kinds)
	f.extractMetrics(frag, source, kinds)
	f.extractDimensions(frag, source, kinds)

	return frag
}

// classifyColumn determines the kind of column i from its name and cells.
// The name heuristic takes precedence: a column whose name contains a
// date-like token is a time axis even when its cells look numeric
// (epoch-style exports).
func (f *Frame) classifyColumn(i int) columnKind {
	if strings.Contains(strings.ToLower(f.Columns[i]), "date") {
		return kindTime
	}

	nonEmpty := 0
	numeric := true
	timestamps := true
	for _, row := range f.Rows {
		cell := f.cell(row, i)
		if cell == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			numeric = false
		}
		if _, ok := parseTimestamp(cell); !ok {
			timestamps = false
		}
	}

	if nonEmpty == 0 {
		return kindText
	}
	if timestamps {
		return kindTime
	}
	if numeric {
		return kindNumeric
	}
	return kindText
}

// extractTimeSeries builds one series per time-axis column. Rows whose
// time cell is empty or unparseable contribute nothing to that series.
func (f *Frame) extractTimeSeries(frag *model.Fragment, source string, kinds []columnKind) {
	for i, kind := range kinds {
		if kind != kindTime {
			continue
		}

		series := model.Series{}
		for _, row := range f.Rows {
			ts, ok := parseTimestamp(f.cell(row, i))
			if !ok {
				continue
			}
			series.Timestamps = append(series.Timestamps, ts)
			series.Records = append(series.Records, f.record(row, kinds))
		}

		if len(series.Timestamps) == 0 {
			continue
		}
		frag.TimeSeries[source+"_"+f.Columns[i]] = series
	}
}

// record builds the row record with all time columns removed.
// Numeric cells are stored as float64, everything else as string.
func (f *Frame) record(row []string, kinds []columnKind) model.Record {
	rec := make(model.Record)
	for i, kind := range kinds {
		if kind == kindTime {
			continue
		}
		cell := f.cell(row, i)
		if cell == "" {
			continue
		}
		if v, err := strconv.ParseFloat(cell, 64); err == nil && kind == kindNumeric {
			rec[f.Columns[i]] = v
		} else {
			rec[f.Columns[i]] = cell
		}
	}
	return rec
}

// extractMetrics summarizes every numeric column into one metrics entry
// keyed by the source name.
func (f *Frame) extractMetrics(frag *model.Fragment, source string, kinds []columnKind) {
	group := make(model.MetricGroup)
	for i, kind := range kinds {
		if kind != kindNumeric {
			continue
		}

		var values []float64
		for _, row := range f.Rows {
			cell := f.cell(row, i)
			if cell == "" {
				continue
			}
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			group[f.Columns[i]] = stats.Describe(values)
		}
	}

	if len(group) > 0 {
		frag.Metrics[source] = group
	}
}

// extractDimensions counts categorical values per remaining text column,
// keyed by source+column name.
func (f *Frame) extractDimensions(frag *model.Fragment, source string, kinds []columnKind) {
	for i, kind := range kinds {
		if kind != kindText {
			continue
		}

		counts := make(map[string]int)
		for _, row := range f.Rows {
			cell := f.cell(row, i)
			if cell == "" {
				continue
			}
			counts[cell]++
		}
		if len(counts) > 0 {
			frag.Dimensions[source+"_"+f.Columns[i]] = counts
		}
	}
}

// cell returns the trimmed cell at column i, or "" for short rows.
func (f *Frame) cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseTimestamp attempts to parse a cell as a timestamp using the
// accepted layouts in order.
func parseTimestamp(cell string) (time.Time, bool) {
	if cell == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
