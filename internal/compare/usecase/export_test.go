package usecase

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/Rehnamol/boqmerge/internal/compare/entity"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestExportWorkbookRoundTrip(t *testing.T) {
	t.Parallel()

	table := entity.NewTable()
	table.AddColumn("ITEM", []entity.Value{
		entity.NumberValue(decimal.NewFromInt(1)),
		entity.NumberValue(decimal.NewFromInt(2)),
	})
	table.AddColumn("DESCRIPTION", []entity.Value{
		entity.TextValue("Excavation"),
		entity.Missing(),
	})

	data, err := exportWorkbook(table)
	if err != nil {
		t.Fatalf("exportWorkbook() err = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3 (header + 2)", len(rows))
	}
	if !reflect.DeepEqual(rows[0], []string{"ITEM", "DESCRIPTION"}) {
		t.Fatalf("header = %v", rows[0])
	}
	if !reflect.DeepEqual(rows[1], []string{"1", "Excavation"}) {
		t.Fatalf("row 1 = %v", rows[1])
	}
	if len(rows[2]) > 0 && rows[2][0] != "2" {
		t.Fatalf("row 2 = %v", rows[2])
	}
}
