package adapter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/arloai/reportgen/internal/model"
)

// CSVAdapter reads delimited text sources.
//
// Design decision: The delimiter and charset are adapter configuration
// rather than per-call parameters because one report run ingests exports
// from the same ad platform, which uses a single convention throughout.
type CSVAdapter struct {
	// delimiter is the field separator. Defaults to comma.
	delimiter rune

	// latin1 enables ISO 8859-1 decoding for exports from legacy tools
	// that do not emit UTF-8.
	latin1 bool
}

// CSVOption configures a CSVAdapter.
type CSVOption func(*CSVAdapter)

// WithDelimiter sets the field separator (e.g. ';' or '\t').
func WithDelimiter(d rune) CSVOption {
	return func(a *CSVAdapter) {
		a.delimiter = d
	}
}

// WithLatin1 enables ISO 8859-1 input decoding.
func WithLatin1() CSVOption {
	return func(a *CSVAdapter) {
		a.latin1 = true
	}
}

// NewCSVAdapter creates a CSVAdapter with the given options.
func NewCSVAdapter(opts ...CSVOption) *CSVAdapter {
	a := &CSVAdapter{delimiter: ','}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name implements Adapter.Name.
func (a *CSVAdapter) Name() string {
	return "csv"
}

// Adapt reads the delimited file at path and normalizes it into a
// canonical fragment. The first row is taken as the header; the source
// name is the file's base name without extension.
func (a *CSVAdapter) Adapt(path string) (*model.Fragment, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided source path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open csv source: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	var input io.Reader = f
	if a.latin1 {
		input = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	reader := csv.NewReader(input)
	reader.Comma = a.delimiter
	// Campaign exports occasionally have trailing columns on some rows;
	// let the frame treat short rows as empty cells instead of failing.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv source: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv source %q has no header row", path)
	}

	frame := &Frame{Columns: rows[0], Rows: rows[1:]}
	frag := frame.Normalize(sourceName(path))
	frag.Metadata["source_file"] = path
	frag.Metadata["source_type"] = a.Name()
	return frag, nil
}
