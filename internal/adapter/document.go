package adapter

import (
	"fmt"
	"os"

	"github.com/arloai/reportgen/internal/model"
)

// DocumentAdapter is the placeholder for rich-document extraction (.pdf).
// Free-text extraction is not implemented; the adapter still returns a
// well-formed empty fragment with a metadata note so that batch merging
// stays total for source lists that include document exports.
type DocumentAdapter struct{}

// NewDocumentAdapter creates a DocumentAdapter.
func NewDocumentAdapter() *DocumentAdapter {
	return &DocumentAdapter{}
}

// Name implements Adapter.Name.
func (a *DocumentAdapter) Name() string {
	return "pdf"
}

// Adapt verifies the document exists and returns an empty fragment noting
// that extraction is unimplemented.
func (a *DocumentAdapter) Adapt(path string) (*model.Fragment, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat document source: %w", err)
	}

	frag := model.NewDataset()
	frag.Metadata["source_file"] = path
	frag.Metadata["source_type"] = a.Name()
	frag.Metadata["note"] = "PDF extraction not yet implemented"
	return frag, nil
}
