package widget

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arloai/reportgen/internal/model"
)

// titleCaser converts snake_case catalog names into display headings.
var titleCaser = cases.Title(language.English)

// Placeholder is an inert widget registered under a catalog name whose
// real implementation failed to load. It renders unconditionally so that
// name-based lookups and composition keep working while the catalog
// degrades one entry at a time.
type Placeholder struct {
	// name is the catalog name the placeholder stands in for.
	name string
}

// NewPlaceholder creates a placeholder under the given catalog name.
func NewPlaceholder(name string) *Placeholder {
	return &Placeholder{name: name}
}

// Name implements Widget.Name.
func (w *Placeholder) Name() string {
	return w.name
}

// Description implements Widget.Description.
func (w *Placeholder) Description() string {
	return "Placeholder for the " + w.name + " widget"
}

// RequiredSections implements Widget.RequiredSections.
func (w *Placeholder) RequiredSections() []string {
	return nil
}

// CanRender always accepts: placeholders must never block composition.
func (w *Placeholder) CanRender(_ *model.Dataset) bool {
	return true
}

// Render produces an inert fragment noting the widget is unavailable.
func (w *Placeholder) Render(_ *model.Dataset) string {
	md := markdown.NewMarkdown(io.Discard)
	md.H3(titleCaser.String(strings.ReplaceAll(w.name, "_", " ")))
	md.PlainText("")
	md.Note("This widget is not available in this build.")
	md.PlainText("")
	return md.String()
}
