package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arloai/reportgen/internal/model"
)

// ErrUnsupportedFormat is returned when a source path's extension has no
// registered adapter. The batch layer logs and skips these; only direct
// single-source callers see the error.
var ErrUnsupportedFormat = errors.New("unsupported source format")

// Adapter converts one source file into a canonical dataset fragment.
// Implementations must be stateless and safe for concurrent use: every
// Adapt call depends only on the file at path.
type Adapter interface {
	// Adapt reads the file at path and returns its canonical fragment.
	// Any parse or read failure is returned as-is; the caller decides
	// whether to propagate or skip.
	Adapt(path string) (*model.Fragment, error)

	// Name returns the adapter's kind for logging and metadata.
	Name() string
}

// Registry maps recognized file extensions to adapters.
// Lookups are by lower-cased extension including the dot (".csv").
type Registry struct {
	// adapters holds the extension to adapter mapping.
	adapters map[string]Adapter

	// logger is used for registration logging.
	logger *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets a custom logger for the registry.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithCSVAdapter replaces the default CSV adapter, allowing callers to
// configure delimiter and charset handling.
func WithCSVAdapter(a *CSVAdapter) RegistryOption {
	return func(r *Registry) {
		r.adapters[".csv"] = a
	}
}

// NewRegistry creates a Registry populated with the default adapters:
// delimited text (.csv), spreadsheet workbooks (.xlsx, .xls), structured
// records (.json), and the rich-document placeholder (.pdf).
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		adapters: make(map[string]Adapter),
	}

	r.adapters[".csv"] = NewCSVAdapter()
	r.adapters[".xlsx"] = NewExcelAdapter()
	r.adapters[".xls"] = NewLegacyExcelAdapter()
	r.adapters[".json"] = NewJSONAdapter()
	r.adapters[".pdf"] = NewDocumentAdapter()

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Register maps an extension to an adapter. Registering an extension that
// is already present replaces the prior adapter.
func (r *Registry) Register(ext string, a Adapter) {
	ext = strings.ToLower(ext)
	r.adapters[ext] = a
	r.logger.Debug("registered source adapter", "extension", ext, "adapter", a.Name())
}

// ForPath returns the adapter registered for the path's extension.
// Returns ErrUnsupportedFormat (wrapped with the extension) when no
// adapter is registered.
func (r *Registry) ForPath(path string) (Adapter, error) {
	ext := strings.ToLower(filepath.Ext(path))
	a, ok := r.adapters[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return a, nil
}

// Extensions returns the sorted list of registered extensions.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.adapters))
	for ext := range r.adapters {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// sourceName derives the metric-group name for a file: the base name
// without its extension, mirroring how sheet names identify workbook
// sheets.
func sourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
