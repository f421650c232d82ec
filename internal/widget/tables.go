package widget

import (
	"io"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/arloai/reportgen/internal/model"
)

// PlacementPerformanceTable tabulates placement occurrence counts from
// the dimensions section, highest volume first.
type PlacementPerformanceTable struct{}

// NewPlacementPerformanceTable creates the placement table widget.
func NewPlacementPerformanceTable() *PlacementPerformanceTable {
	return &PlacementPerformanceTable{}
}

// Name implements Widget.Name.
func (w *PlacementPerformanceTable) Name() string {
	return "placement_performance_table"
}

// Description implements Widget.Description.
func (w *PlacementPerformanceTable) Description() string {
	return "Row counts per placement, highest volume first"
}

// RequiredSections implements Widget.RequiredSections.
func (w *PlacementPerformanceTable) RequiredSections() []string {
	return []string{"dimensions"}
}

// CanRender reports whether a placement dimension is present.
func (w *PlacementPerformanceTable) CanRender(d *model.Dataset) bool {
	_, ok := findDimension(d, "placement")
	return ok
}

// Render tabulates the placement counts.
func (w *PlacementPerformanceTable) Render(d *model.Dataset) string {
	key, ok := findDimension(d, "placement")
	if !ok {
		return ""
	}

	md := markdown.NewMarkdown(io.Discard)
	md.H2("Placement Performance")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Placement", "Rows"},
		Rows:   countRows(d.Dimensions[key]),
	})
	md.PlainText("")
	return md.String()
}

// countRows converts a value-count map into table rows sorted by count
// descending, then value ascending for a stable order among ties.
func countRows(counts map[string]int) [][]string {
	values := sortedKeys(counts)
	sort.SliceStable(values, func(i, j int) bool {
		return counts[values[i]] > counts[values[j]]
	})

	rows := make([][]string, 0, len(values))
	for _, v := range values {
		rows = append(rows, []string{v, strconv.Itoa(counts[v])})
	}
	return rows
}
