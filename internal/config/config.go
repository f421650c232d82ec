package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "reportgen"

	// DefaultFormat is the output format used when none is requested.
	// Markdown is the native markup of the widget renderers, so it is
	// the cheapest and most faithful default.
	DefaultFormat = "markdown"

	// DefaultPDFBackend is the PDF backend used when none is requested.
	// Chromium renders the same HTML the html format produces, so the
	// two formats stay visually consistent.
	DefaultPDFBackend = "chromium"

	// DefaultHistoryLimit is the number of past generations the history
	// command lists by default.
	DefaultHistoryLimit = 20

	// DefaultTemplate is the page template name used when none is
	// requested. It resolves to the embedded template rather than a
	// file on disk.
	DefaultTemplate = "default"
)

// Config holds all configuration options for a reportgen run.
// This struct is populated from defaults, the optional config file, and
// CLI flags, then passed through the application via dependency
// injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., GenerateConfig, ExportConfig) for simplicity. The number of
// options is manageable, and nesting would add complexity without
// significant benefit.
type Config struct {
	// Category is the report category: "initial", "mid_campaign",
	// "final", or any other string for the baseline report.
	Category string

	// Sources are the input file paths in fold order. Order matters:
	// later sources overwrite colliding keys during merging.
	Sources []string

	// Widgets optionally overrides the category's default widget list.
	// Nil means use the defaults.
	Widgets []string

	// Format is the output format family: html, markdown, json, or pdf.
	Format string

	// Output is the output file path. When empty, the report is written
	// to stdout (except pdf, which requires a file path).
	Output string

	// Template is the page template name for the html and pdf formats.
	// "default" resolves to the embedded template; any other name is
	// looked up in TemplateDir.
	Template string

	// TemplateDir is the directory searched for non-default page
	// templates. Defaults to the XDG config directory.
	TemplateDir string

	// PDFBackend selects how the pdf format is printed: "chromium"
	// (headless browser) or "wkhtmltopdf" (external binary).
	PDFBackend string

	// ConfigFilePath is the path to the configuration file. If empty,
	// the tool searches for .reportgen in the current directory and
	// then in the user's home directory.
	ConfigFilePath string

	// Overrides holds the settings loaded from the config file.
	// Populated by LoadConfigFile; nil when no config file was found.
	Overrides *File

	// NoHistory disables recording the generation in the history
	// database.
	NoHistory bool

	// HistoryLimit is the number of past generations the history
	// command lists. Zero lists everything.
	HistoryLimit int

	// DBDir is the directory holding the history database. Defaults to
	// the XDG data directory.
	DBDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only info and above are logged.
	Verbose bool
}

// NewConfig creates a new Config with default values.
// Users override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (format, backend,
// directories). This also serves as documentation of what the defaults
// are.
func NewConfig() *Config {
	return &Config{
		Format:       DefaultFormat,
		Template:     DefaultTemplate,
		TemplateDir:  XDGConfigDir(),
		PDFBackend:   DefaultPDFBackend,
		HistoryLimit: DefaultHistoryLimit,
		DBDir:        XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for reportgen.
// On Linux: ~/.local/share/reportgen
// On macOS: ~/Library/Application Support/reportgen
// On Windows: %LOCALAPPDATA%\reportgen
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for reportgen.
// On Linux: ~/.config/reportgen
// On macOS: ~/Library/Application Support/reportgen
// On Windows: %APPDATA%\reportgen
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific sentinel error describing what is invalid.
//
// Design decision: We validate once after CLI parsing, before any file
// is read, and return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSources
	}

	switch c.Format {
	case "html", "markdown", "json", "pdf":
	default:
		return ErrInvalidFormat
	}

	if c.Format == "pdf" {
		switch c.PDFBackend {
		case "chromium", "wkhtmltopdf":
		default:
			return ErrInvalidPDFBackend
		}
	}

	if c.HistoryLimit < 0 {
		return ErrInvalidHistoryLimit
	}

	return nil
}

// CategoryWidgets returns the config-file widget-list overrides, or nil
// when no config file was loaded.
func (c *Config) CategoryWidgets() map[string][]string {
	if c.Overrides == nil {
		return nil
	}
	return c.Overrides.Categories
}

// ResolvedTemplateDir returns the template directory, preferring the
// config file's setting over the default.
func (c *Config) ResolvedTemplateDir() string {
	if c.Overrides != nil && c.Overrides.TemplateDir != "" {
		return c.Overrides.TemplateDir
	}
	return c.TemplateDir
}
