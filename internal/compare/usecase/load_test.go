package usecase

import (
	"reflect"
	"testing"

	"github.com/Rehnamol/boqmerge/internal/compare/entity"
	"github.com/xuri/excelize/v2"
)

func workbookFile(t *testing.T, name string, rows [][]any) entity.UploadedFile {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell reference: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", ref, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}

	return entity.UploadedFile{Name: name, Data: buf.Bytes()}
}

func TestLoadTableCSV(t *testing.T) {
	t.Parallel()

	file := csvFile("boq.csv",
		"ITEM, DESCRIPTION, RATE",
		"1, Excavation, 10.5",
		"2, Concrete,",
	)

	table, err := loadTable(file)
	if err != nil {
		t.Fatalf("loadTable() err = %v", err)
	}

	if got := table.ColumnNames(); !reflect.DeepEqual(got, []string{"ITEM", "DESCRIPTION", "RATE"}) {
		t.Fatalf("columns = %v", got)
	}
	if table.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2", table.NumRows())
	}

	if v := table.Cell(2, 0); v.Kind != entity.KindNumber || v.String() != "10.5" {
		t.Fatalf("cell(2,0) = %+v", v)
	}
	if v := table.Cell(1, 0); v.Kind != entity.KindText {
		t.Fatalf("cell(1,0) = %+v", v)
	}
	if !table.Cell(2, 1).IsMissing() {
		t.Fatal("expected blank cell to be missing")
	}
}

func TestLoadTableCSVRaggedRows(t *testing.T) {
	t.Parallel()

	file := csvFile("ragged.csv",
		"A,B",
		"1",
		"2,3,4",
	)

	table, err := loadTable(file)
	if err != nil {
		t.Fatalf("loadTable() err = %v", err)
	}

	// The wide row extends the grid with a blank-labeled column.
	if got := table.ColumnNames(); !reflect.DeepEqual(got, []string{"A", "B", ""}) {
		t.Fatalf("columns = %v", got)
	}
	if !table.Cell(1, 0).IsMissing() {
		t.Fatal("short row should read as missing")
	}
	if v := table.Cell(2, 1); v.String() != "4" {
		t.Fatalf("cell(2,1) = %q", v.String())
	}
}

func TestLoadTableWorkbook(t *testing.T) {
	t.Parallel()

	file := workbookFile(t, "boq.xlsx", [][]any{
		{"ITEM", "DESCRIPTION", "RATE"},
		{1, "Excavation", 10.5},
		{2, "Concrete", 20},
	})

	table, err := loadTable(file)
	if err != nil {
		t.Fatalf("loadTable() err = %v", err)
	}

	if got := table.ColumnNames(); !reflect.DeepEqual(got, []string{"ITEM", "DESCRIPTION", "RATE"}) {
		t.Fatalf("columns = %v", got)
	}
	if table.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2", table.NumRows())
	}
	if v := table.Cell(2, 0); v.Kind != entity.KindNumber {
		t.Fatalf("rate cell not numeric: %+v", v)
	}
}

func TestLoadTableMalformedWorkbook(t *testing.T) {
	t.Parallel()

	_, err := loadTable(entity.UploadedFile{Name: "junk.xlsx", Data: []byte("not a zip")})
	if err == nil {
		t.Fatal("expected error for malformed workbook")
	}
}

func TestLoadTableUnknownExtensionUsesWorkbookReader(t *testing.T) {
	t.Parallel()

	file := workbookFile(t, "boq.data", [][]any{
		{"ITEM"},
		{1},
	})

	table, err := loadTable(file)
	if err != nil {
		t.Fatalf("loadTable() err = %v", err)
	}
	if table.NumRows() != 1 {
		t.Fatalf("rows = %d, want 1", table.NumRows())
	}
}
