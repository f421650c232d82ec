package widget

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/arloai/reportgen/internal/model"
)

// maxChartPoints caps how many points a text chart plots. Mermaid xycharts
// become unreadable past a few dozen labels, so long series are trimmed to
// their most recent points.
const maxChartPoints = 30

// chartDateFormat is the x-axis label layout for time axes.
const chartDateFormat = "01/02"

// chartSeries is one plotted line or bar group.
type chartSeries struct {
	// kind is "line" or "bar".
	kind string

	// values holds one value per x-axis label.
	values []float64
}

// xyChart builds a mermaid xychart-beta block.
func xyChart(title, yLabel string, labels []string, series []chartSeries) string {
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = fmt.Sprintf("%q", l)
	}

	maxY := 1.0
	for _, s := range series {
		for _, v := range s.values {
			if v*1.2 > maxY {
				maxY = v * 1.2
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %q\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(quoted, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis %q 0 --> %d\n", yLabel, int(math.Ceil(maxY))))
	for _, s := range series {
		formatted := make([]string, len(s.values))
		for i, v := range s.values {
			formatted[i] = fmt.Sprintf("%.2f", v)
		}
		sb.WriteString(fmt.Sprintf("    %s [%s]\n", s.kind, strings.Join(formatted, ", ")))
	}
	return sb.String()
}

// tail returns at most maxChartPoints of the most recent timestamps and
// the parallel value slices, keeping them aligned.
func tail(timestamps []time.Time, valueSets ...[]float64) ([]string, [][]float64) {
	start := 0
	if len(timestamps) > maxChartPoints {
		start = len(timestamps) - maxChartPoints
	}

	labels := make([]string, 0, len(timestamps)-start)
	for _, ts := range timestamps[start:] {
		labels = append(labels, ts.Format(chartDateFormat))
	}

	trimmed := make([][]float64, len(valueSets))
	for i, values := range valueSets {
		if start < len(values) {
			trimmed[i] = values[start:]
		}
	}
	return labels, trimmed
}

// seriesValues extracts the numeric column from each record of s, paired
// with its timestamp. Records missing the column (or holding a non-numeric
// value) are skipped along with their timestamp so the axes stay parallel.
func seriesValues(s model.Series, column string) ([]time.Time, []float64) {
	var ts []time.Time
	var values []float64
	for i, rec := range s.Records {
		if i >= len(s.Timestamps) {
			break
		}
		v, ok := rec.Float(column)
		if !ok {
			continue
		}
		ts = append(ts, s.Timestamps[i])
		values = append(values, v)
	}
	return ts, values
}
