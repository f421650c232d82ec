package model

import "time"

// Deliverable is the output of one report composition. It is constructed
// once by the composer and treated as read-only afterwards: exporters
// consume it, nothing mutates it.
//
// Design decision: We expose plain exported fields rather than hiding them
// behind accessors. Immutability is a contract, not an enforcement: every
// consumer in this module only reads, and exported fields keep the type
// trivially serializable for the JSON exporter and the history store.
type Deliverable struct {
	// Body is the assembled report body: the rendered widget fragments
	// joined in request order. Markup is GitHub-flavored Markdown; the
	// HTML and PDF exporters convert it downstream.
	Body string `json:"body"`

	// Category is the report category the deliverable was composed for.
	Category string `json:"category"`

	// Sources lists the source identifiers consumed by the underlying
	// dataset, in encounter order.
	Sources []string `json:"sources"`

	// Widgets lists the names of the widgets that actually rendered,
	// in request order. This may be a strict subset of what was
	// requested: unknown and capability-ineligible widgets are dropped.
	Widgets []string `json:"widgets"`

	// Sections maps each rendered widget name to its markup fragment.
	Sections map[string]string `json:"sections"`

	// Meta holds report-level metadata generated independently of
	// widget output.
	Meta ReportMeta `json:"metadata"`
}

// ReportMeta is report-level metadata attached to every deliverable.
type ReportMeta struct {
	// GeneratedAt is the composition timestamp.
	GeneratedAt time.Time `json:"generated_at"`

	// Category duplicates the deliverable category so the metadata
	// block is self-contained when serialized on its own.
	Category string `json:"category"`

	// Sources lists the consumed source identifiers.
	Sources []string `json:"sources"`

	// EngineVersion identifies the engine release that produced the
	// report.
	EngineVersion string `json:"engine_version"`
}
