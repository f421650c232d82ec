package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/arloai/reportgen/internal/adapter"
	"github.com/arloai/reportgen/internal/composer"
	"github.com/arloai/reportgen/internal/normalizer"
	"github.com/arloai/reportgen/internal/widget"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(t *testing.T) *Engine {
	t.Helper()

	logger := quietLogger()
	reg := adapter.NewRegistry(adapter.WithLogger(logger))
	n := normalizer.New(reg, normalizer.WithLogger(logger))
	widgets := widget.NewDefaultRegistry(widget.WithLogger(logger))
	c := composer.New(widgets, composer.WithLogger(logger))
	return New(n, c, WithLogger(logger))
}

// writePerformanceCSV writes a daily performance file usable by the
// KPI and chart widgets.
func writePerformanceCSV(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "performance.csv")
	content := strings.Join([]string{
		"Date,Impressions,Clicks,CTR,Spend",
		"2026-03-01,900,18,2.0,90",
		"2026-03-02,1000,20,2.0,100",
		"2026-03-03,1100,22,2.0,110",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateFormat(t *testing.T) {
	t.Parallel()

	for _, format := range Formats() {
		if err := ValidateFormat(format); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", format, err)
		}
	}

	err := ValidateFormat("docx")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ValidateFormat(%q) = %v, want ErrUnknownFormat", "docx", err)
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	source := writePerformanceCSV(t)

	got, err := e.Generate(context.Background(), Request{
		Category: composer.CategoryMidCampaign,
		Sources:  []string{source},
		Format:   FormatMarkdown,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := []string{"topline_kpi_grid", "ctr_over_time", "imps_clicks_over_time", "daily_spend_chart"}
	if !slices.Equal(got.Widgets, want) {
		t.Errorf("Generate() widgets = %v, want %v", got.Widgets, want)
	}
	if !slices.Equal(got.Sources, []string{source}) {
		t.Errorf("Generate() sources = %v, want %v", got.Sources, []string{source})
	}
	if !strings.Contains(got.Body, "Topline KPIs") {
		t.Error("Generate() body is missing the KPI section")
	}
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	e := newEngine(t)

	_, err := e.Generate(context.Background(), Request{
		Category: composer.CategoryFinal,
		Sources:  []string{"whatever.csv"},
		Format:   "docx",
	})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Generate() error = %v, want ErrUnknownFormat", err)
	}
}

func TestGenerateToleratesMissingSources(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	source := writePerformanceCSV(t)

	got, err := e.Generate(context.Background(), Request{
		Category: composer.CategoryOther,
		Sources:  []string{"no_such_file.csv", source},
		Format:   FormatJSON,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !slices.Equal(got.Sources, []string{source}) {
		t.Errorf("Generate() sources = %v, want the readable source only", got.Sources)
	}
	if !slices.Equal(got.Widgets, []string{"topline_kpi_grid"}) {
		t.Errorf("Generate() widgets = %v, want baseline", got.Widgets)
	}
}

func TestGenerateAllSourcesFailing(t *testing.T) {
	t.Parallel()

	e := newEngine(t)

	got, err := e.Generate(context.Background(), Request{
		Category: composer.CategoryFinal,
		Sources:  []string{"missing_a.csv", "missing_b.xlsx"},
		Format:   FormatHTML,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v, want graceful degradation", err)
	}
	if len(got.Widgets) != 0 {
		t.Errorf("Generate() widgets = %v, want none from empty data", got.Widgets)
	}
	if got.Body != "" {
		t.Errorf("Generate() body = %q, want empty", got.Body)
	}
}
