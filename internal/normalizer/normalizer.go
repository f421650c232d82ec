// Package normalizer runs each source file through its matching adapter
// and merges the resulting fragments into one canonical dataset.
//
// Batch processing is total: a missing file, an unsupported format, or an
// adapter failure is logged and skipped, never fatal. One bad file never
// aborts the run, and zero successful sources yields a well-formed empty
// dataset rather than an error.
package normalizer

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/arloai/reportgen/internal/adapter"
	"github.com/arloai/reportgen/internal/model"
)

// Normalizer folds ordered source files into one canonical dataset.
type Normalizer struct {
	// registry resolves the adapter for each source path.
	registry *adapter.Registry

	// logger is used for per-source warnings and progress logging.
	logger *slog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets a custom logger for the normalizer.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// New creates a Normalizer over the given adapter registry.
func New(registry *adapter.Registry, opts ...Option) *Normalizer {
	n := &Normalizer{registry: registry}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = slog.Default()
	}
	return n
}

// ProcessSources iterates sources in caller-supplied order and merges each
// adapted fragment into a fresh dataset. The dataset is append-only during
// the pass: a failed source contributes nothing and does not affect prior
// state.
//
// Design decision: Context is checked between sources, not during a single
// adapter read. Adapter reads are local synchronous file I/O with no
// partial-result contract, so cancellation takes effect at the next source
// boundary, mirroring how the rest of the engine treats per-item work.
func (n *Normalizer) ProcessSources(ctx context.Context, sources []string) *model.Dataset {
	dataset := model.NewDataset()

	n.logger.Info("processing sources", "count", len(sources))

	seen := make(map[string]string)
	for _, source := range sources {
		select {
		case <-ctx.Done():
			n.logger.Warn("normalization cancelled", "reason", ctx.Err(), "source", source)
			return dataset
		default:
		}

		if _, err := os.Stat(source); err != nil {
			n.logger.Warn("source file not found, skipping", "source", source)
			continue
		}

		a, err := n.registry.ForPath(source)
		if err != nil {
			n.logger.Warn("no adapter for source, skipping", "source", source, "error", err)
			continue
		}

		if fp, err := fingerprint(source); err == nil {
			if prior, dup := seen[fp]; dup {
				n.logger.Warn("source content duplicates an earlier source",
					"source", source,
					"duplicate_of", prior,
				)
			} else {
				seen[fp] = source
			}
		}

		frag, err := a.Adapt(source)
		if err != nil {
			n.logger.Error("failed to adapt source, skipping", "source", source, "error", err)
			continue
		}

		dataset.Merge(frag)
		dataset.Sources = append(dataset.Sources, source)
		n.logger.Debug("processed source", "source", source, "adapter", a.Name())
	}

	return dataset
}

// fingerprint streams the file through BLAKE2b-256 and returns the hex
// digest. Used only for duplicate-source warnings; failures are ignored
// by the caller.
func fingerprint(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided source path is intentional
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck // Read-only file

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
