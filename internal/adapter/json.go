package adapter

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arloai/reportgen/internal/model"
)

// JSONAdapter reads structured-record documents: pre-shaped data whose
// recognized top-level keys (metrics, time_series, dimensions, metadata)
// pass through to the fragment verbatim. Unrecognized top-level keys are
// ignored.
type JSONAdapter struct{}

// NewJSONAdapter creates a JSONAdapter.
func NewJSONAdapter() *JSONAdapter {
	return &JSONAdapter{}
}

// Name implements Adapter.Name.
func (a *JSONAdapter) Name() string {
	return "json"
}

// jsonDocument is the recognized wire shape of a structured-record source.
// Series timestamps are RFC 3339 strings.
type jsonDocument struct {
	Metrics    map[string]model.MetricGroup `json:"metrics"`
	TimeSeries map[string]model.Series      `json:"time_series"`
	Dimensions map[string]map[string]int    `json:"dimensions"`
	Metadata   map[string]any               `json:"metadata"`
}

// Adapt reads the document at path and passes its recognized sections
// through to the fragment. Supplied metadata keys are folded in alongside
// the adapter's own source identity keys.
func (a *JSONAdapter) Adapt(path string) (*model.Fragment, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided source path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read json source: %w", err)
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse json source: %w", err)
	}

	frag := model.NewDataset()
	for k, v := range doc.Metrics {
		frag.Metrics[k] = v
	}
	for k, v := range doc.TimeSeries {
		frag.TimeSeries[k] = v
	}
	for k, v := range doc.Dimensions {
		frag.Dimensions[k] = v
	}
	for k, v := range doc.Metadata {
		frag.Metadata[k] = v
	}

	frag.Metadata["source_file"] = path
	frag.Metadata["source_type"] = a.Name()
	return frag, nil
}
