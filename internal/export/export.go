package export

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/arloai/reportgen/internal/model"
)

var (
	// ErrTemplateNotFound is returned when a named page template does
	// not exist in the template directory.
	ErrTemplateNotFound = errors.New("page template not found")

	// ErrUnknownPDFBackend is returned when a PDF exporter is created
	// with a backend name it does not implement.
	ErrUnknownPDFBackend = errors.New("unknown pdf backend")

	// ErrBackendUnavailable is returned when a PDF backend is known
	// but cannot run in this environment (no browser, no binary).
	ErrBackendUnavailable = errors.New("pdf backend unavailable")
)

// Exporter renders a deliverable to a configured destination.
//
// Design decision: We use an interface so the same generation pipeline
// can fan out to files, stdout, or buffers without caring about the
// format. Exporters write deliverables, not raw bytes, so io.Writer
// alone is not enough.
type Exporter interface {
	// Export writes the deliverable to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Export(ctx context.Context, d *model.Deliverable) (int, error)

	// Format returns the output format family this exporter produces.
	Format() string
}

// All runs every exporter against the same deliverable concurrently
// and waits for all of them. The first error cancels the remaining
// exports and is returned.
//
// Exporters must target distinct sinks; All provides no serialization
// between them.
func All(ctx context.Context, d *model.Deliverable, exporters ...Exporter) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, e := range exporters {
		e := e
		g.Go(func() error {
			_, err := e.Export(ctx, d)
			return err
		})
	}
	return g.Wait()
}
