package widget

import (
	"io"

	"github.com/nao1215/markdown"

	"github.com/arloai/reportgen/internal/model"
)

// CTROverTime plots the click-through rate across a detected time axis.
type CTROverTime struct{}

// NewCTROverTime creates the CTR trend widget.
func NewCTROverTime() *CTROverTime {
	return &CTROverTime{}
}

// Name implements Widget.Name.
func (w *CTROverTime) Name() string {
	return "ctr_over_time"
}

// Description implements Widget.Description.
func (w *CTROverTime) Description() string {
	return "Click-through rate trend across the campaign time axis"
}

// RequiredSections implements Widget.RequiredSections.
func (w *CTROverTime) RequiredSections() []string {
	return []string{"time_series"}
}

// CanRender reports whether a time series carries a CTR column.
func (w *CTROverTime) CanRender(d *model.Dataset) bool {
	_, _, ok := findSeriesColumn(d, "ctr")
	return ok
}

// Render plots the CTR column as a mermaid line chart.
func (w *CTROverTime) Render(d *model.Dataset) string {
	name, column, ok := findSeriesColumn(d, "ctr")
	if !ok {
		return ""
	}

	ts, values := seriesValues(d.TimeSeries[name], column)
	labels, trimmed := tail(ts, values)

	md := markdown.NewMarkdown(io.Discard)
	md.H2("Click-Through Rate Over Time")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, xyChart(
		"CTR Over Time", "CTR (%)", labels,
		[]chartSeries{{kind: "line", values: trimmed[0]}},
	))
	md.PlainText("")
	return md.String()
}

// ImpsClicksOverTime plots impressions and clicks as two lines on a
// shared time axis.
type ImpsClicksOverTime struct{}

// NewImpsClicksOverTime creates the impressions/clicks trend widget.
func NewImpsClicksOverTime() *ImpsClicksOverTime {
	return &ImpsClicksOverTime{}
}

// Name implements Widget.Name.
func (w *ImpsClicksOverTime) Name() string {
	return "imps_clicks_over_time"
}

// Description implements Widget.Description.
func (w *ImpsClicksOverTime) Description() string {
	return "Impressions and clicks plotted across the campaign time axis"
}

// RequiredSections implements Widget.RequiredSections.
func (w *ImpsClicksOverTime) RequiredSections() []string {
	return []string{"time_series"}
}

// CanRender requires one series carrying both an impressions column and
// a clicks column, so the two lines share an axis.
func (w *ImpsClicksOverTime) CanRender(d *model.Dataset) bool {
	_, ok := w.findSeries(d)
	return ok
}

// findSeries locates the first series with both columns present.
func (w *ImpsClicksOverTime) findSeries(d *model.Dataset) (string, bool) {
	for _, name := range sortedKeys(d.TimeSeries) {
		s := d.TimeSeries[name]
		_, impsOK := seriesColumn(s, "impression")
		_, clicksOK := seriesColumn(s, "click")
		if impsOK && clicksOK {
			return name, true
		}
	}
	return "", false
}

// Render plots both columns as lines on one mermaid chart.
func (w *ImpsClicksOverTime) Render(d *model.Dataset) string {
	name, ok := w.findSeries(d)
	if !ok {
		return ""
	}
	s := d.TimeSeries[name]
	impsCol, _ := seriesColumn(s, "impression")
	clicksCol, _ := seriesColumn(s, "click")

	// Use the shared timestamp axis; records missing either column are
	// carried as zero so both lines stay the same length.
	imps := make([]float64, len(s.Records))
	clicks := make([]float64, len(s.Records))
	for i, rec := range s.Records {
		imps[i], _ = rec.Float(impsCol)
		clicks[i], _ = rec.Float(clicksCol)
	}

	labels, trimmed := tail(s.Timestamps, imps, clicks)

	md := markdown.NewMarkdown(io.Discard)
	md.H2("Impressions and Clicks Over Time")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, xyChart(
		"Impressions vs Clicks", "Volume", labels,
		[]chartSeries{
			{kind: "line", values: trimmed[0]},
			{kind: "line", values: trimmed[1]},
		},
	))
	md.PlainText("")
	return md.String()
}

// DailySpendChart plots spend per time point as a bar chart.
type DailySpendChart struct{}

// NewDailySpendChart creates the daily spend widget.
func NewDailySpendChart() *DailySpendChart {
	return &DailySpendChart{}
}

// Name implements Widget.Name.
func (w *DailySpendChart) Name() string {
	return "daily_spend_chart"
}

// Description implements Widget.Description.
func (w *DailySpendChart) Description() string {
	return "Spend per day across the campaign time axis"
}

// RequiredSections implements Widget.RequiredSections.
func (w *DailySpendChart) RequiredSections() []string {
	return []string{"time_series"}
}

// CanRender reports whether a time series carries a spend-like column.
func (w *DailySpendChart) CanRender(d *model.Dataset) bool {
	_, _, ok := findSeriesColumn(d, "spend", "cost")
	return ok
}

// Render plots the spend column as a mermaid bar chart.
func (w *DailySpendChart) Render(d *model.Dataset) string {
	name, column, ok := findSeriesColumn(d, "spend", "cost")
	if !ok {
		return ""
	}

	ts, values := seriesValues(d.TimeSeries[name], column)
	labels, trimmed := tail(ts, values)

	md := markdown.NewMarkdown(io.Discard)
	md.H2("Daily Spend")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, xyChart(
		"Daily Spend", "Spend ($)", labels,
		[]chartSeries{{kind: "bar", values: trimmed[0]}},
	))
	md.PlainText("")
	return md.String()
}

// SessionEngagementChart plots a session or engagement column across the
// campaign time axis.
type SessionEngagementChart struct{}

// NewSessionEngagementChart creates the session engagement widget.
func NewSessionEngagementChart() *SessionEngagementChart {
	return &SessionEngagementChart{}
}

// Name implements Widget.Name.
func (w *SessionEngagementChart) Name() string {
	return "session_engagement_chart"
}

// Description implements Widget.Description.
func (w *SessionEngagementChart) Description() string {
	return "Session engagement trend across the campaign time axis"
}

// RequiredSections implements Widget.RequiredSections.
func (w *SessionEngagementChart) RequiredSections() []string {
	return []string{"time_series"}
}

// CanRender reports whether a time series carries a session or
// engagement column.
func (w *SessionEngagementChart) CanRender(d *model.Dataset) bool {
	_, _, ok := findSeriesColumn(d, "session", "engagement")
	return ok
}

// Render plots the engagement column as a mermaid line chart.
func (w *SessionEngagementChart) Render(d *model.Dataset) string {
	name, column, ok := findSeriesColumn(d, "session", "engagement")
	if !ok {
		return ""
	}

	ts, values := seriesValues(d.TimeSeries[name], column)
	labels, trimmed := tail(ts, values)

	md := markdown.NewMarkdown(io.Discard)
	md.H2("Session Engagement")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, xyChart(
		"Session Engagement", column, labels,
		[]chartSeries{{kind: "line", values: trimmed[0]}},
	))
	md.PlainText("")
	return md.String()
}
