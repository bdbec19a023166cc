package entity

// Column is a named, positionally indexed sequence of cells.
type Column struct {
	Name  string
	Cells []Value
}

// Table is an ordered sequence of columns with rows aligned by position.
//
// Column labels are not required to be unique while a merge is in flight; the
// deduplication pass makes them unique before the table is presented.
type Table struct {
	cols []Column
	rows int
}

// NewTable returns an empty table (zero rows, zero columns).
func NewTable() *Table {
	return &Table{}
}

// AddColumn appends a column. The table's row count grows to fit the longest
// column; shorter columns read as missing beyond their length.
func (t *Table) AddColumn(name string, cells []Value) {
	t.cols = append(t.cols, Column{Name: name, Cells: cells})
	if len(cells) > t.rows {
		t.rows = len(cells)
	}
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return t.rows
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// IsEmpty reports whether the table has no rows or no columns.
func (t *Table) IsEmpty() bool {
	return t.rows == 0 || len(t.cols) == 0
}

// ColumnNames returns the labels in column order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the first column with the given label,
// or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.cols {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a column with the given label exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// RenameColumn relabels the column at position i.
func (t *Table) RenameColumn(i int, name string) {
	if i >= 0 && i < len(t.cols) {
		t.cols[i].Name = name
	}
}

// Cell returns the value at column col, row row. Out-of-range positions read
// as missing, which lets ragged source data behave like a spreadsheet grid.
func (t *Table) Cell(col, row int) Value {
	if col < 0 || col >= len(t.cols) {
		return Missing()
	}
	cells := t.cols[col].Cells
	if row < 0 || row >= len(cells) {
		return Missing()
	}
	return cells[row]
}

// Row materializes row i as a slice of cells across all columns.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.cols))
	for c := range t.cols {
		row[c] = t.Cell(c, i)
	}
	return row
}
