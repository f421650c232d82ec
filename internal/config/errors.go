package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoSources is returned when no source files are specified for
	// report generation.
	ErrNoSources = errors.New("no source files specified: provide at least one input file")

	// ErrInvalidFormat is returned when the output format is not one of
	// the supported families (html, markdown, json, pdf).
	ErrInvalidFormat = errors.New("invalid output format: must be html, markdown, json, or pdf")

	// ErrInvalidPDFBackend is returned when the PDF backend is not one
	// of the implemented backends (chromium, wkhtmltopdf).
	ErrInvalidPDFBackend = errors.New("invalid pdf backend: must be chromium or wkhtmltopdf")

	// ErrInvalidHistoryLimit is returned when the history listing limit
	// is negative. Use 0 to list everything.
	ErrInvalidHistoryLimit = errors.New("invalid history limit: must be non-negative")
)

// ErrConfigNotFound is returned when the configuration file does not
// exist at the resolved path.
var ErrConfigNotFound = errors.New("configuration file not found")
