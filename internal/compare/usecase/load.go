package usecase

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Rehnamol/boqmerge/internal/compare/entity"
	"github.com/xuri/excelize/v2"
)

var errNoSheets = errors.New("workbook has no sheets")

// loadTable reads one uploaded file into a table.
//
// The extension picks the format: ".csv" is parsed as comma-delimited text
// with a header row, anything else is handed to excelize and read from the
// workbook's first sheet. Errors never abort the run; the caller records them
// and drops the file.
func loadTable(file entity.UploadedFile) (*entity.Table, error) {
	if strings.EqualFold(filepath.Ext(file.Name), ".csv") {
		return loadCSV(file.Data)
	}
	return loadWorkbook(file.Data)
}

func loadCSV(data []byte) (*entity.Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	return tableFromRecords(records), nil
}

func loadWorkbook(data []byte) (*entity.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	return tableFromRecords(records), nil
}

// tableFromRecords builds a table from a header row plus data rows.
//
// Ragged input is tolerated the way a spreadsheet shows it: short rows read
// as missing cells, rows wider than the header extend the table with
// blank-labeled columns (made unique later by the dedup pass).
func tableFromRecords(records [][]string) *entity.Table {
	if len(records) == 0 {
		return entity.NewTable()
	}

	header := records[0]
	data := records[1:]

	width := len(header)
	for _, row := range data {
		if len(row) > width {
			width = len(row)
		}
	}

	table := entity.NewTable()
	for col := 0; col < width; col++ {
		name := ""
		if col < len(header) {
			name = strings.TrimSpace(header[col])
		}

		cells := make([]entity.Value, len(data))
		for row := range data {
			if col < len(data[row]) {
				cells[row] = entity.ParseValue(data[row][col])
			} else {
				cells[row] = entity.Missing()
			}
		}
		table.AddColumn(name, cells)
	}

	return table
}
