package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func validConfig() *Config {
	c := NewConfig()
	c.Category = "final"
	c.Sources = []string{"performance.csv"}
	return c
}

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	if c.Format != DefaultFormat {
		t.Errorf("NewConfig() Format = %q, want %q", c.Format, DefaultFormat)
	}
	if c.Template != DefaultTemplate {
		t.Errorf("NewConfig() Template = %q, want %q", c.Template, DefaultTemplate)
	}
	if c.PDFBackend != DefaultPDFBackend {
		t.Errorf("NewConfig() PDFBackend = %q, want %q", c.PDFBackend, DefaultPDFBackend)
	}
	if c.HistoryLimit != DefaultHistoryLimit {
		t.Errorf("NewConfig() HistoryLimit = %d, want %d", c.HistoryLimit, DefaultHistoryLimit)
	}
	if c.DBDir == "" {
		t.Error("NewConfig() DBDir is empty")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid default",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "no sources",
			mutate:  func(c *Config) { c.Sources = nil },
			wantErr: ErrNoSources,
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Format = "docx" },
			wantErr: ErrInvalidFormat,
		},
		{
			name: "bad pdf backend",
			mutate: func(c *Config) {
				c.Format = "pdf"
				c.PDFBackend = "ghostscript"
			},
			wantErr: ErrInvalidPDFBackend,
		},
		{
			name: "backend ignored for non-pdf format",
			mutate: func(c *Config) {
				c.Format = "html"
				c.PDFBackend = "ghostscript"
			},
			wantErr: nil,
		},
		{
			name:    "negative history limit",
			mutate:  func(c *Config) { c.HistoryLimit = -1 },
			wantErr: ErrInvalidHistoryLimit,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validConfig()
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	content := `
template_dir: /opt/brand/templates
categories:
  final:
    - topline_kpi_grid
    - creative_comparison
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cf, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cf.TemplateDir != "/opt/brand/templates" {
		t.Errorf("TemplateDir = %q", cf.TemplateDir)
	}
	want := []string{"topline_kpi_grid", "creative_comparison"}
	if !slices.Equal(cf.Categories["final"], want) {
		t.Errorf("Categories[final] = %v, want %v", cf.Categories["final"], want)
	}
}

func TestLoadConfigFileNotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfigFile() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigFileInvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte("categories: [not: a: map"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfigFile(path); err == nil {
		t.Error("LoadConfigFile() error = nil, want parse error")
	}
}

func TestFindConfigFileExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yml")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	if got := FindConfigFile(path); got != path {
		t.Errorf("FindConfigFile(%q) = %q", path, got)
	}
	if got := FindConfigFile(filepath.Join(t.TempDir(), "absent.yml")); got != "" {
		t.Errorf("FindConfigFile() = %q, want empty for missing explicit path", got)
	}
}

func TestCategoryWidgets(t *testing.T) {
	t.Parallel()

	c := validConfig()
	if got := c.CategoryWidgets(); got != nil {
		t.Errorf("CategoryWidgets() = %v, want nil without config file", got)
	}

	c.Overrides = &File{Categories: map[string][]string{"initial": {"daily_spend_chart"}}}
	got := c.CategoryWidgets()
	if !slices.Equal(got["initial"], []string{"daily_spend_chart"}) {
		t.Errorf("CategoryWidgets() = %v", got)
	}
}

func TestResolvedTemplateDir(t *testing.T) {
	t.Parallel()

	c := validConfig()
	if got := c.ResolvedTemplateDir(); got != c.TemplateDir {
		t.Errorf("ResolvedTemplateDir() = %q, want default %q", got, c.TemplateDir)
	}

	c.Overrides = &File{TemplateDir: "/opt/brand/templates"}
	if got := c.ResolvedTemplateDir(); got != "/opt/brand/templates" {
		t.Errorf("ResolvedTemplateDir() = %q, want the config file value", got)
	}
}
