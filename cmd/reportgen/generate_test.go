package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/arloai/reportgen/internal/config"
)

// writeTestCSV writes a daily performance file with a time axis and
// numeric columns.
func writeTestCSV(t *testing.T) string {
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

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildGenerateConfig(t *testing.T) {
	t.Parallel()

	cmd := NewGenerateCmd()
	if err := cmd.Flags().Parse([]string{
		"--category", "final",
		"--format", "html",
		"--output", "report.html",
		"--template", "branded",
		"--no-history",
		"a.csv", "b.xlsx",
	}); err != nil {
		t.Fatal(err)
	}

	cfg, err := buildGenerateConfig(cmd, cmd.Flags().Args())
	if err != nil {
		t.Fatalf("buildGenerateConfig() error = %v", err)
	}

	if cfg.Category != "final" {
		t.Errorf("Category = %q", cfg.Category)
	}
	if cfg.Format != "html" {
		t.Errorf("Format = %q", cfg.Format)
	}
	if cfg.Output != "report.html" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.Template != "branded" {
		t.Errorf("Template = %q", cfg.Template)
	}
	if !cfg.NoHistory {
		t.Error("NoHistory = false")
	}
	if !slices.Equal(cfg.Sources, []string{"a.csv", "b.xlsx"}) {
		t.Errorf("Sources = %v", cfg.Sources)
	}
	if cfg.Widgets != nil {
		t.Errorf("Widgets = %v, want nil when the flag is unset", cfg.Widgets)
	}
}

func TestBuildGenerateConfigExplicitWidgets(t *testing.T) {
	t.Parallel()

	cmd := NewGenerateCmd()
	if err := cmd.Flags().Parse([]string{"-w", "topline_kpi_grid", "-w", "daily_spend_chart", "a.csv"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := buildGenerateConfig(cmd, cmd.Flags().Args())
	if err != nil {
		t.Fatalf("buildGenerateConfig() error = %v", err)
	}
	want := []string{"topline_kpi_grid", "daily_spend_chart"}
	if !slices.Equal(cfg.Widgets, want) {
		t.Errorf("Widgets = %v, want %v", cfg.Widgets, want)
	}
}

func TestBuildGenerateConfigMissingExplicitConfigFile(t *testing.T) {
	t.Parallel()

	cmd := NewGenerateCmd()
	if err := cmd.Flags().Parse([]string{"-c", filepath.Join(t.TempDir(), "absent.yml"), "a.csv"}); err != nil {
		t.Fatal(err)
	}

	if _, err := buildGenerateConfig(cmd, cmd.Flags().Args()); err == nil {
		t.Error("buildGenerateConfig() error = nil, want missing-config error")
	}
}

func TestGenerateNoSources(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "generate", "--no-history")
	if !errors.Is(err, config.ErrNoSources) {
		t.Errorf("Execute() error = %v, want ErrNoSources", err)
	}
}

func TestGenerateUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "generate", "--no-history", "-f", "docx", "a.csv")
	if !errors.Is(err, config.ErrInvalidFormat) {
		t.Errorf("Execute() error = %v, want ErrInvalidFormat", err)
	}
}

func TestGeneratePDFRequiresOutput(t *testing.T) {
	t.Parallel()

	src := writeTestCSV(t)
	_, err := execute(t, "generate", "--no-history", "-f", "pdf", src)
	if err == nil || !strings.Contains(err.Error(), "--output") {
		t.Errorf("Execute() error = %v, want pdf-requires-output error", err)
	}
}

func TestGenerateMarkdownToStdout(t *testing.T) {
	t.Parallel()

	src := writeTestCSV(t)
	out, err := execute(t, "generate", "--no-history", "--category", "mid_campaign", src)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{
		"# Campaign Performance Report",
		"Category: mid_campaign",
		"Topline KPIs",
		"xychart-beta",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generate output is missing %q", want)
		}
	}
}

func TestGenerateHTMLToFile(t *testing.T) {
	t.Parallel()

	src := writeTestCSV(t)
	outPath := filepath.Join(t.TempDir(), "nested", "report.html")

	if _, err := execute(t, "generate", "--no-history", "-f", "html", "-o", outPath, src); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(outPath) //nolint:gosec
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "<!DOCTYPE html>") {
		t.Error("output file is not an HTML page")
	}
	if !strings.Contains(got, "Topline KPIs") {
		t.Error("output file is missing the report body")
	}
}

func TestGenerateMissingTemplateKeepsExistingOutput(t *testing.T) {
	t.Parallel()

	src := writeTestCSV(t)
	outPath := filepath.Join(t.TempDir(), "report.html")
	previous := "<html>last week's report</html>\n"
	if err := os.WriteFile(outPath, []byte(previous), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "generate", "--no-history", "-f", "html",
		"-o", outPath, "--template", "no_such_template", src)
	if err == nil {
		t.Fatal("expected an error for a missing template")
	}
	if !strings.Contains(err.Error(), "no_such_template") {
		t.Errorf("error does not name the missing template: %v", err)
	}

	data, err := os.ReadFile(outPath) //nolint:gosec
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if string(data) != previous {
		t.Errorf("failed run clobbered the existing report: %q", string(data))
	}
}

func TestGenerateJSONExplicitWidgetSubset(t *testing.T) {
	t.Parallel()

	src := writeTestCSV(t)
	out, err := execute(t, "generate", "--no-history", "-f", "json",
		"-w", "topline_kpi_grid", "-w", "no_such_widget", src)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(out, `"widgets": [`) || !strings.Contains(out, `"topline_kpi_grid"`) {
		t.Errorf("json output is missing the rendered widget list: %q", out)
	}
	if strings.Contains(out, "no_such_widget") {
		t.Error("json output contains a widget that should have been skipped")
	}
}

func TestGenerateConfigFileCategoryOverride(t *testing.T) {
	t.Parallel()

	src := writeTestCSV(t)
	cfgPath := filepath.Join(t.TempDir(), "reportgen.yml")
	cfgContent := "categories:\n  initial:\n    - daily_spend_chart\n"
	if err := os.WriteFile(cfgPath, []byte(cfgContent), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "generate", "--no-history", "--category", "initial", "-c", cfgPath, src)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(out, "Daily Spend") {
		t.Error("output is missing the overridden widget")
	}
	if strings.Contains(out, "Topline KPIs") {
		t.Error("output contains a default widget the override should have removed")
	}
}
