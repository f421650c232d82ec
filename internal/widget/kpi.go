package widget

import (
	"fmt"
	"io"
	"math"

	"github.com/nao1215/markdown"

	"github.com/arloai/reportgen/internal/model"
)

// ToplineKPIGrid is the baseline widget: a per-source grid of descriptive
// statistics for every summarized numeric column. It is the one widget
// every category's default list starts with, so its predicate is the
// loosest in the catalog.
type ToplineKPIGrid struct{}

// NewToplineKPIGrid creates the baseline KPI widget.
func NewToplineKPIGrid() *ToplineKPIGrid {
	return &ToplineKPIGrid{}
}

// Name implements Widget.Name.
func (w *ToplineKPIGrid) Name() string {
	return "topline_kpi_grid"
}

// Description implements Widget.Description.
func (w *ToplineKPIGrid) Description() string {
	return "Grid of topline descriptive statistics per source"
}

// RequiredSections implements Widget.RequiredSections.
func (w *ToplineKPIGrid) RequiredSections() []string {
	return []string{"metrics"}
}

// CanRender reports whether any metric group is present.
func (w *ToplineKPIGrid) CanRender(d *model.Dataset) bool {
	return len(d.Metrics) > 0
}

// Render produces one statistics table per metric group.
func (w *ToplineKPIGrid) Render(d *model.Dataset) string {
	md := markdown.NewMarkdown(io.Discard)
	md.H2("Topline KPIs")
	md.PlainText("")

	for _, group := range sortedKeys(d.Metrics) {
		md.H3(group)
		md.PlainText("")

		rows := make([][]string, 0, len(d.Metrics[group]))
		for _, column := range sortedKeys(d.Metrics[group]) {
			s := d.Metrics[group][column]
			rows = append(rows, []string{
				column,
				fmtStat(s.Count),
				fmtStat(s.Mean),
				fmtStat(s.Std),
				fmtStat(s.Min),
				fmtStat(s.Median),
				fmtStat(s.Max),
			})
		}

		md.Table(markdown.TableSet{
			Header: []string{"Metric", "Count", "Mean", "Std", "Min", "Median", "Max"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return md.String()
}

// BudgetPacingMeter summarizes total spend against the campaign budget.
// The budget itself is optional metadata; without it the widget still
// reports spend totals.
type BudgetPacingMeter struct{}

// NewBudgetPacingMeter creates the budget pacing widget.
func NewBudgetPacingMeter() *BudgetPacingMeter {
	return &BudgetPacingMeter{}
}

// Name implements Widget.Name.
func (w *BudgetPacingMeter) Name() string {
	return "budget_pacing_meter"
}

// Description implements Widget.Description.
func (w *BudgetPacingMeter) Description() string {
	return "Total spend measured against the campaign budget"
}

// RequiredSections implements Widget.RequiredSections.
func (w *BudgetPacingMeter) RequiredSections() []string {
	return []string{"metrics", "metadata"}
}

// CanRender reports whether any metric group holds a spend-like column.
func (w *BudgetPacingMeter) CanRender(d *model.Dataset) bool {
	_, _, ok := findMetricColumn(d, "spend", "cost")
	return ok
}

// Render totals spend across every matching column and, when a budget
// metadata key is present, reports the pacing percentage.
func (w *BudgetPacingMeter) Render(d *model.Dataset) string {
	md := markdown.NewMarkdown(io.Discard)
	md.H2("Budget Pacing")
	md.PlainText("")

	// mean*count recovers the column total from its summary statistics.
	var total float64
	for _, group := range sortedKeys(d.Metrics) {
		for _, column := range sortedKeys(d.Metrics[group]) {
			if !containsToken(column, "spend", "cost") {
				continue
			}
			s := d.Metrics[group][column]
			total += s.Mean * s.Count
		}
	}

	items := []string{fmt.Sprintf("Total spend: $%.2f", total)}
	if budget, ok := metadataFloat(d, "budget"); ok && budget > 0 {
		items = append(items,
			fmt.Sprintf("Budget: $%.2f", budget),
			fmt.Sprintf("Pacing: %.1f%% of budget consumed", total/budget*100),
		)
	}
	md.BulletList(items...)
	md.PlainText("")

	if budget, ok := metadataFloat(d, "budget"); ok && budget > 0 && total > budget {
		md.Warningf("Spend exceeds budget by $%.2f.", total-budget)
		md.PlainText("")
	}

	return md.String()
}

// fmtStat formats a statistic compactly: whole numbers without decimals,
// everything else with two.
func fmtStat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// metadataFloat reads a numeric metadata value.
// JSON-sourced numbers arrive as float64, config-sourced as int.
func metadataFloat(d *model.Dataset, key string) (float64, bool) {
	v, ok := d.Metadata[key]
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
