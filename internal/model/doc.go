// Package model defines the core data structures used throughout the
// reporting engine.
//
// This package contains the following main types:
//   - Dataset: The canonical four-section schema all sources normalize into
//   - Series: An ordered time axis with parallel row records
//   - Summary: Descriptive statistics for one numeric column
//   - Deliverable: The immutable output of one report composition
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (adapter, normalizer, widget, composer,
// export) need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// the structured-record source adapter.
package model
