package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/arloai/reportgen/internal/model"
)

// JSONExporter writes the deliverable as a JSON document for tool
// integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a
// third-party JSON library. The deliverable is small (one report, not
// the canonical dataset), serialization speed is irrelevant here, and
// the standard encoder gives stable field ordering from the struct
// definition.
type JSONExporter struct {
	output io.Writer

	// indent enables pretty-printed output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the per-level indentation string.
	indentString string
}

// JSONOption configures a JSONExporter.
type JSONOption func(*JSONExporter)

// WithIndent enables pretty-printed JSON output with the given prefix
// and per-level indent.
func WithIndent(prefix, indent string) JSONOption {
	return func(e *JSONExporter) {
		e.indent = true
		e.indentPrefix = prefix
		e.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space
// indentation. Convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONOption {
	return func(e *JSONExporter) {
		e.indent = true
		e.indentPrefix = ""
		e.indentString = "  "
	}
}

// NewJSONExporter creates a JSONExporter writing to output.
func NewJSONExporter(output io.Writer, opts ...JSONOption) *JSONExporter {
	e := &JSONExporter{output: output}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Format returns "json".
func (e *JSONExporter) Format() string { return "json" }

// Export writes the deliverable as JSON.
func (e *JSONExporter) Export(_ context.Context, d *model.Deliverable) (int, error) {
	var (
		data []byte
		err  error
	)
	if e.indent {
		data, err = json.MarshalIndent(d, e.indentPrefix, e.indentString)
	} else {
		data, err = json.Marshal(d)
	}
	if err != nil {
		return 0, fmt.Errorf("marshal deliverable: %w", err)
	}

	// Trailing newline for terminal-friendly output.
	data = append(data, '\n')

	n, err := e.output.Write(data)
	if err != nil {
		return n, fmt.Errorf("write json report: %w", err)
	}
	return n, nil
}
