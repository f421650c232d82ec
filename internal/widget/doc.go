// Package widget provides the reusable visual components a report is
// composed from, and the capability registry that catalogs them.
//
// A widget is a named, stateless capability unit with two pure operations:
// a capability predicate deciding whether the widget can render against a
// canonical dataset, and a render operation producing a markup fragment.
// Fragments are GitHub-flavored Markdown (tables, alerts, and mermaid
// charts); exporters convert the assembled body downstream.
//
// Design decision: Widgets implement one flat interface with independent
// variants rather than sharing an overridable base. The data contract is
// fixed (dataset in, markup string out), so there is nothing for a
// hierarchy to vary, and flat variants keep each widget independently
// testable.
package widget
