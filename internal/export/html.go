package export

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/arloai/reportgen/internal/model"
)

//go:embed templates/default.html
var builtinTemplates embed.FS

// DefaultTemplate is the name of the embedded page template.
const DefaultTemplate = "default"

// pageData is the data handed to a page template.
type pageData struct {
	Title         string
	Category      string
	GeneratedAt   string
	Sources       []string
	EngineVersion string

	// Body is the widget body converted from Markdown to HTML. It is
	// produced by our own Markdown renderer, so it is injected unescaped.
	Body template.HTML
}

// HTMLExporter converts the deliverable's Markdown body to HTML and
// splices it into a page template.
//
// The template named "default" resolves to an embedded page. Any other
// name is looked up as <name>.html in the configured template
// directory; a missing template is a construction-time error, not a
// runtime fallback.
type HTMLExporter struct {
	output io.Writer
	title  string
	tmpl   *template.Template
	md     goldmark.Markdown
}

// HTMLOption configures an HTMLExporter.
type HTMLOption func(*htmlSettings)

// htmlSettings collects construction parameters before template
// resolution.
type htmlSettings struct {
	title        string
	templateName string
	templateDir  string
}

// WithPageTitle sets a custom document title.
func WithPageTitle(title string) HTMLOption {
	return func(s *htmlSettings) {
		s.title = title
	}
}

// WithTemplate selects a page template by name.
func WithTemplate(name string) HTMLOption {
	return func(s *htmlSettings) {
		s.templateName = name
	}
}

// WithTemplateDir sets the directory searched for non-default page
// templates.
func WithTemplateDir(dir string) HTMLOption {
	return func(s *htmlSettings) {
		s.templateDir = dir
	}
}

// NewHTMLExporter creates an HTMLExporter writing to output. Template
// resolution happens here so that a misconfigured template name fails
// before any report is generated.
func NewHTMLExporter(output io.Writer, opts ...HTMLOption) (*HTMLExporter, error) {
	settings := &htmlSettings{
		title:        "Campaign Performance Report",
		templateName: DefaultTemplate,
	}
	for _, opt := range opts {
		opt(settings)
	}

	tmpl, err := resolveTemplate(settings.templateName, settings.templateDir)
	if err != nil {
		return nil, err
	}

	return &HTMLExporter{
		output: output,
		title:  settings.title,
		tmpl:   tmpl,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}, nil
}

// Format returns "html".
func (e *HTMLExporter) Format() string { return "html" }

// Export converts the deliverable body to HTML and writes the full
// page.
func (e *HTMLExporter) Export(_ context.Context, d *model.Deliverable) (int, error) {
	var body bytes.Buffer
	if err := e.md.Convert([]byte(d.Body), &body); err != nil {
		return 0, fmt.Errorf("convert report body to html: %w", err)
	}

	var page bytes.Buffer
	err := e.tmpl.Execute(&page, pageData{
		Title:         e.title,
		Category:      d.Category,
		GeneratedAt:   d.Meta.GeneratedAt.Format(time.RFC3339),
		Sources:       d.Sources,
		EngineVersion: d.Meta.EngineVersion,
		Body:          template.HTML(body.String()), //nolint:gosec // Body HTML comes from our own Markdown renderer
	})
	if err != nil {
		return 0, fmt.Errorf("execute page template: %w", err)
	}

	n, err := e.output.Write(page.Bytes())
	if err != nil {
		return n, fmt.Errorf("write html report: %w", err)
	}
	return n, nil
}

// resolveTemplate loads the named page template: the embedded default,
// or <name>.html from dir for any other name.
func resolveTemplate(name, dir string) (*template.Template, error) {
	if name == "" || name == DefaultTemplate {
		return template.ParseFS(builtinTemplates, "templates/default.html")
	}

	path := filepath.Join(dir, name+".html")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %q (looked in %q)", ErrTemplateNotFound, name, dir)
	}
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("parse page template %q: %w", path, err)
	}
	return tmpl, nil
}
