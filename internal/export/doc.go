// Package export renders deliverables to output format families:
// Markdown, JSON, HTML, and PDF.
//
// Each exporter is constructed over an io.Writer destination and writes
// exactly one deliverable per call. Exporters for different sinks can
// run concurrently via All.
package export
