package adapter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/arloai/reportgen/internal/model"
)

// ExcelAdapter reads OOXML spreadsheet workbooks (.xlsx).
//
// Each sheet is processed independently as if it were its own source,
// keyed by its sheet name, and the per-sheet fragments are merged with
// the same rule top-level sources use. The sheet-name list is recorded
// in the fragment metadata.
type ExcelAdapter struct{}

// NewExcelAdapter creates an ExcelAdapter.
func NewExcelAdapter() *ExcelAdapter {
	return &ExcelAdapter{}
}

// Name implements Adapter.Name.
func (a *ExcelAdapter) Name() string {
	return "excel"
}

// Adapt reads the workbook at path and normalizes every sheet into one
// canonical fragment.
func (a *ExcelAdapter) Adapt(path string) (*model.Fragment, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer book.Close() //nolint:errcheck // Read-only workbook

	sheets := book.GetSheetList()

	frag := model.NewDataset()
	for _, sheet := range sheets {
		rows, err := book.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}

		frame := &Frame{Columns: rows[0], Rows: rows[1:]}
		frag.Merge(frame.Normalize(sheet))
	}

	frag.Metadata["source_file"] = path
	frag.Metadata["source_type"] = a.Name()
	frag.Metadata["sheets"] = sheets
	return frag, nil
}
