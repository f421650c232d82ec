package adapter

import (
	"fmt"

	"github.com/shakinm/xlsReader/xls"

	"github.com/arloai/reportgen/internal/model"
)

// LegacyExcelAdapter reads legacy binary workbooks (.xls).
//
// Pre-2007 Excel files are OLE compound documents carrying BIFF record
// streams, a format excelize does not open, so the old extension gets
// its own reader. Sheet handling matches ExcelAdapter: each sheet is
// normalized independently under its sheet name and the fragments are
// merged.
type LegacyExcelAdapter struct{}

// NewLegacyExcelAdapter creates a LegacyExcelAdapter.
func NewLegacyExcelAdapter() *LegacyExcelAdapter {
	return &LegacyExcelAdapter{}
}

// Name implements Adapter.Name.
func (a *LegacyExcelAdapter) Name() string {
	return "excel-legacy"
}

// Adapt reads the BIFF workbook at path and normalizes every sheet into
// one canonical fragment.
func (a *LegacyExcelAdapter) Adapt(path string) (*model.Fragment, error) {
	book, err := xls.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	frag := model.NewDataset()
	sheets := make([]string, 0, book.GetNumberSheets())
	for i := 0; i < book.GetNumberSheets(); i++ {
		sheet, err := book.GetSheet(i)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %d: %w", i, err)
		}
		sheets = append(sheets, sheet.GetName())

		rows := make([][]string, 0, sheet.GetNumberRows())
		for j := 0; j <= sheet.GetNumberRows(); j++ {
			row, err := sheet.GetRow(j)
			if err != nil {
				continue
			}
			cols := row.GetCols()
			cells := make([]string, len(cols))
			for k, cell := range cols {
				cells[k] = cell.GetString()
			}
			rows = append(rows, cells)
		}
		if len(rows) == 0 {
			continue
		}

		frame := &Frame{Columns: rows[0], Rows: rows[1:]}
		frag.Merge(frame.Normalize(sheet.GetName()))
	}

	frag.Metadata["source_file"] = path
	frag.Metadata["source_type"] = a.Name()
	frag.Metadata["sheets"] = sheets
	return frag, nil
}
