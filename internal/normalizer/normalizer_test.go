package normalizer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/arloai/reportgen/internal/adapter"
)

// quietLogger returns a logger that discards output, keeping expected
// per-source warnings out of test logs.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeSource writes content under dir and returns the full path.
func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
	return path
}

// TestProcessSources tests the ordered fold over source files.
func TestProcessSources(t *testing.T) {
	t.Parallel()

	t.Run("merges fragments from multiple sources", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		first := writeSource(t, dir, "alpha.csv", "Impressions,Clicks\n100,5\n200,10\n")
		second := writeSource(t, dir, "beta.csv", "Spend\n12.5\n20.0\n")

		n := New(adapter.NewRegistry(), WithLogger(quietLogger()))
		d := n.ProcessSources(context.Background(), []string{first, second})

		if len(d.Metrics) != 2 {
			t.Errorf("expected metrics from both sources, got %v", d.Metrics)
		}
		if len(d.Sources) != 2 || d.Sources[0] != first || d.Sources[1] != second {
			t.Errorf("expected ordered source tracking, got %v", d.Sources)
		}
	})

	t.Run("missing file is skipped without error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		present := writeSource(t, dir, "present.csv", "Clicks\n1\n2\n")
		absent := filepath.Join(dir, "absent.csv")

		n := New(adapter.NewRegistry(), WithLogger(quietLogger()))
		d := n.ProcessSources(context.Background(), []string{absent, present})

		if len(d.Sources) != 1 || d.Sources[0] != present {
			t.Errorf("expected only the present source, got %v", d.Sources)
		}
	})

	t.Run("unsupported format is skipped", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		unsupported := writeSource(t, dir, "notes.docx", "free text")
		supported := writeSource(t, dir, "data.csv", "Clicks\n1\n")

		n := New(adapter.NewRegistry(), WithLogger(quietLogger()))
		d := n.ProcessSources(context.Background(), []string{unsupported, supported})

		if len(d.Sources) != 1 {
			t.Errorf("expected one consumed source, got %v", d.Sources)
		}
	})

	t.Run("adapter failure contributes nothing and batch continues", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		corrupt := writeSource(t, dir, "corrupt.xlsx", "not a workbook")
		good := writeSource(t, dir, "good.csv", "Clicks\n3\n4\n")

		n := New(adapter.NewRegistry(), WithLogger(quietLogger()))
		d := n.ProcessSources(context.Background(), []string{corrupt, good})

		if len(d.Sources) != 1 || d.Sources[0] != good {
			t.Errorf("expected only the good source, got %v", d.Sources)
		}
		if _, ok := d.Metrics["good"]; !ok {
			t.Errorf("expected metrics from the good source, got %v", d.Metrics)
		}
	})

	t.Run("zero sources yields a well formed empty dataset", func(t *testing.T) {
		t.Parallel()

		n := New(adapter.NewRegistry(), WithLogger(quietLogger()))
		d := n.ProcessSources(context.Background(), nil)

		if d == nil {
			t.Fatal("expected non-nil dataset")
		}
		if d.Metrics == nil || d.TimeSeries == nil || d.Dimensions == nil || d.Metadata == nil {
			t.Error("expected all sections initialized")
		}
		if !d.IsEmpty() {
			t.Error("expected empty dataset")
		}
	})

	t.Run("later source wins a metadata collision", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		first := writeSource(t, dir, "one.pdf", "%PDF-1.4 first")
		second := writeSource(t, dir, "two.pdf", "%PDF-1.4 second")

		n := New(adapter.NewRegistry(), WithLogger(quietLogger()))
		d := n.ProcessSources(context.Background(), []string{first, second})

		if d.Metadata["source_file"] != second {
			t.Errorf("expected later source_file to win, got %v", d.Metadata["source_file"])
		}
	})

	t.Run("cancelled context stops at the next source boundary", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := writeSource(t, dir, "data.csv", "Clicks\n1\n")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		n := New(adapter.NewRegistry(), WithLogger(quietLogger()))
		d := n.ProcessSources(ctx, []string{src})

		if len(d.Sources) != 0 {
			t.Errorf("expected no sources consumed after cancellation, got %v", d.Sources)
		}
	})
}
