package widget

import (
	"io"
	"sort"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/arloai/reportgen/internal/model"
)

// CreativeComparison compares creative variants by their row counts,
// rendered as a mermaid pie chart.
type CreativeComparison struct{}

// NewCreativeComparison creates the creative comparison widget.
func NewCreativeComparison() *CreativeComparison {
	return &CreativeComparison{}
}

// Name implements Widget.Name.
func (w *CreativeComparison) Name() string {
	return "creative_comparison"
}

// Description implements Widget.Description.
func (w *CreativeComparison) Description() string {
	return "Share of rows per creative variant"
}

// RequiredSections implements Widget.RequiredSections.
func (w *CreativeComparison) RequiredSections() []string {
	return []string{"dimensions"}
}

// CanRender reports whether a creative dimension is present.
func (w *CreativeComparison) CanRender(d *model.Dataset) bool {
	_, ok := findDimension(d, "creative")
	return ok
}

// Render draws the creative share pie chart.
func (w *CreativeComparison) Render(d *model.Dataset) string {
	key, ok := findDimension(d, "creative")
	if !ok {
		return ""
	}
	counts := d.Dimensions[key]

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Creative Share"),
		piechart.WithShowData(true),
	)

	values := sortedKeys(counts)
	sort.SliceStable(values, func(i, j int) bool {
		return counts[values[i]] > counts[values[j]]
	})
	for _, v := range values {
		chart.LabelAndIntValue(v, uint64(counts[v]))
	}

	md := markdown.NewMarkdown(io.Discard)
	md.H2("Creative Comparison")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
	return md.String()
}
