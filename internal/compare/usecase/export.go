package usecase

import (
	"fmt"

	"github.com/Rehnamol/boqmerge/internal/compare/entity"
	"github.com/xuri/excelize/v2"
)

const (
	exportFilename    = "Merged_BOQ.xlsx"
	exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportSheet       = "Sheet1"
)

// exportWorkbook serializes the merged table as a single-sheet workbook:
// header row plus data rows, no styling.
func exportWorkbook(table *entity.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, table.NumCols())
	for i, name := range table.ColumnNames() {
		header[i] = name
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for row := 0; row < table.NumRows(); row++ {
		cells := make([]any, table.NumCols())
		for col := range cells {
			cells[col] = table.Cell(col, row).Export()
		}

		ref, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return nil, fmt.Errorf("cell reference: %w", err)
		}
		if err := f.SetSheetRow(exportSheet, ref, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}
