package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/arloai/reportgen/internal/model"
)

// PDF backends.
const (
	// BackendChromium prints the HTML rendering through a headless
	// Chromium over the DevTools protocol.
	BackendChromium = "chromium"

	// BackendWkhtmltopdf shells out to the wkhtmltopdf binary.
	BackendWkhtmltopdf = "wkhtmltopdf"
)

// PDFBackends returns the implemented backend names.
func PDFBackends() []string {
	return []string{BackendChromium, BackendWkhtmltopdf}
}

// PDFExporter renders the deliverable to HTML and prints that page to
// PDF through the selected backend.
//
// Backend availability is an environment property, not a configuration
// one, so it is only checked at export time: a missing browser or
// binary surfaces ErrBackendUnavailable from Export, while an unknown
// backend name fails construction.
type PDFExporter struct {
	output  io.Writer
	backend string
	html    *HTMLExporter
}

// NewPDFExporter creates a PDFExporter writing to output through the
// named backend. The HTML options shape the intermediate page the
// backend prints.
func NewPDFExporter(output io.Writer, backend string, opts ...HTMLOption) (*PDFExporter, error) {
	switch backend {
	case BackendChromium, BackendWkhtmltopdf:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPDFBackend, backend)
	}

	var page bytes.Buffer
	html, err := NewHTMLExporter(&page, opts...)
	if err != nil {
		return nil, err
	}

	return &PDFExporter{
		output:  output,
		backend: backend,
		html:    html,
	}, nil
}

// Format returns "pdf".
func (e *PDFExporter) Format() string { return "pdf" }

// Export renders the deliverable to an HTML page file and prints it to
// PDF.
func (e *PDFExporter) Export(ctx context.Context, d *model.Deliverable) (int, error) {
	page, err := e.renderPage(ctx, d)
	if err != nil {
		return 0, err
	}

	dir, err := os.MkdirTemp("", "reportgen-pdf-*")
	if err != nil {
		return 0, fmt.Errorf("create temp dir for pdf rendering: %w", err)
	}
	defer os.RemoveAll(dir) //nolint:errcheck // Best-effort temp cleanup

	htmlPath := filepath.Join(dir, "report.html")
	if err := os.WriteFile(htmlPath, page, 0o600); err != nil {
		return 0, fmt.Errorf("write intermediate html: %w", err)
	}

	switch e.backend {
	case BackendChromium:
		return e.printChromium(ctx, htmlPath)
	case BackendWkhtmltopdf:
		return e.printWkhtmltopdf(ctx, htmlPath)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPDFBackend, e.backend)
	}
}

// renderPage runs the inner HTML exporter and returns the page bytes.
func (e *PDFExporter) renderPage(ctx context.Context, d *model.Deliverable) ([]byte, error) {
	buf, ok := e.html.output.(*bytes.Buffer)
	if !ok {
		return nil, fmt.Errorf("pdf exporter html buffer is %T", e.html.output)
	}
	buf.Reset()
	if _, err := e.html.Export(ctx, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// printChromium launches a headless browser, loads the page file, and
// streams the printed PDF to the output.
func (e *PDFExporter) printChromium(ctx context.Context, htmlPath string) (int, error) {
	url, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return 0, fmt.Errorf("%w: launch chromium: %v", ErrBackendUnavailable, err)
	}

	browser := rod.New().ControlURL(url).Context(ctx)
	if err := browser.Connect(); err != nil {
		return 0, fmt.Errorf("%w: connect to chromium: %v", ErrBackendUnavailable, err)
	}
	defer browser.Close() //nolint:errcheck // Browser teardown

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + htmlPath})
	if err != nil {
		return 0, fmt.Errorf("open page in chromium: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return 0, fmt.Errorf("wait for page load: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
	})
	if err != nil {
		return 0, fmt.Errorf("print page to pdf: %w", err)
	}

	n, err := io.Copy(e.output, stream)
	if err != nil {
		return int(n), fmt.Errorf("write pdf report: %w", err)
	}
	return int(n), nil
}

// printWkhtmltopdf runs the external binary with stdout piped to the
// output.
func (e *PDFExporter) printWkhtmltopdf(ctx context.Context, htmlPath string) (int, error) {
	bin, err := exec.LookPath("wkhtmltopdf")
	if err != nil {
		return 0, fmt.Errorf("%w: wkhtmltopdf not found in PATH", ErrBackendUnavailable)
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--quiet", "--enable-local-file-access", htmlPath, "-")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("run wkhtmltopdf: %w", err)
	}

	n, err := e.output.Write(out.Bytes())
	if err != nil {
		return n, fmt.Errorf("write pdf report: %w", err)
	}
	return n, nil
}
