package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/nao1215/markdown"

	"github.com/arloai/reportgen/internal/model"
)

// MarkdownExporter writes the deliverable as a standalone Markdown
// document: a title and metadata header, the composed widget body, and
// a consumed-sources footer.
type MarkdownExporter struct {
	output io.Writer

	// title overrides the default document title.
	title string
}

// MarkdownOption configures a MarkdownExporter.
type MarkdownOption func(*MarkdownExporter)

// WithTitle sets a custom document title.
func WithTitle(title string) MarkdownOption {
	return func(e *MarkdownExporter) {
		e.title = title
	}
}

// NewMarkdownExporter creates a MarkdownExporter writing to output.
func NewMarkdownExporter(output io.Writer, opts ...MarkdownOption) *MarkdownExporter {
	e := &MarkdownExporter{
		output: output,
		title:  "Campaign Performance Report",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Format returns "markdown".
func (e *MarkdownExporter) Format() string { return "markdown" }

// Export writes the deliverable as Markdown.
func (e *MarkdownExporter) Export(_ context.Context, d *model.Deliverable) (int, error) {
	md := markdown.NewMarkdown(io.Discard)
	md.H1(e.title)
	md.PlainText("")
	md.BulletList(
		fmt.Sprintf("Category: %s", d.Category),
		fmt.Sprintf("Generated: %s", d.Meta.GeneratedAt.Format(time.RFC3339)),
		fmt.Sprintf("Engine: %s", d.Meta.EngineVersion),
	)
	md.PlainText("")
	md.PlainText(d.Body)

	if len(d.Sources) > 0 {
		md.PlainText("")
		md.H2("Sources")
		md.PlainText("")
		md.BulletList(d.Sources...)
	}

	n, err := io.WriteString(e.output, md.String()+"\n")
	if err != nil {
		return n, fmt.Errorf("write markdown report: %w", err)
	}
	return n, nil
}
