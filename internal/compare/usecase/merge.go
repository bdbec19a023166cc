package usecase

import (
	"fmt"
	"strings"

	"github.com/Rehnamol/boqmerge/internal/compare/entity"
)

// rejectedFile records one input that could not be read.
type rejectedFile struct {
	Name   string
	Reason string
}

// mergeOutcome is everything a comparison run produces, before deduplication.
type mergeOutcome struct {
	Table    *entity.Table
	Warnings []string
	Loaded   int
	Rejected []rejectedFile
}

type loadedFrame struct {
	position int // 1-based upload position, drives the contractor label
	table    *entity.Table
}

// mergeFiles is the pure core of a comparison run: load and normalize each
// file in upload order, then left-fold the survivors with an outer join on
// whichever requested key columns both sides share.
//
// A file that fails to parse contributes nothing but still consumes its
// contractor position, so the tagging of later files does not shift.
func mergeFiles(files []entity.UploadedFile, mode entity.MatchMode) mergeOutcome {
	out := mergeOutcome{Table: entity.NewTable()}

	var frames []loadedFrame
	for i, file := range files {
		position := i + 1

		table, err := loadTable(file)
		if err != nil {
			out.Warnings = append(out.Warnings, fmt.Sprintf("Could not read %s: %v", file.Name, err))
			out.Rejected = append(out.Rejected, rejectedFile{Name: file.Name, Reason: err.Error()})
			continue
		}
		if table.IsEmpty() {
			continue
		}

		normalizeColumns(table, position)
		frames = append(frames, loadedFrame{position: position, table: table})
	}

	out.Loaded = len(frames)
	if len(frames) == 0 {
		out.Warnings = append(out.Warnings, "No valid files to merge!")
		return out
	}

	combined := frames[0].table
	for _, frame := range frames[1:] {
		keys := sharedKeys(mode, combined, frame.table)
		if len(keys) > 0 {
			combined = outerJoin(combined, frame.table, keys)
			continue
		}

		// No shared key column: the original tool silently stacked the
		// columns side by side, which misaligns rows across BOQ items.
		// The fallback is kept but no longer silent.
		combined = concatColumns(combined, frame.table)
		out.Warnings = append(out.Warnings, fmt.Sprintf(
			"No shared key columns with %s; its columns were appended without row alignment",
			contractorName(frame.position),
		))
	}

	out.Table = combined
	return out
}

// sharedKeys resolves the key set for one fold step: the mode's requested
// keys, filtered to those present on both sides. Recomputed at every step.
func sharedKeys(mode entity.MatchMode, left, right *entity.Table) []string {
	var keys []string
	for _, key := range mode.Keys() {
		if left.HasColumn(key) && right.HasColumn(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

const keyTupleSep = "\x1f"

func rowKey(table *entity.Table, keyIdx []int, row int) string {
	parts := make([]string, len(keyIdx))
	for i, col := range keyIdx {
		parts[i] = table.Cell(col, row).Key()
	}
	return strings.Join(parts, keyTupleSep)
}

// outerJoin aligns two tables on the given key columns, keeping rows present
// on either side. Rows with equal key tuples match many-to-many; unmatched
// cells become missing. Key columns appear once, on the left of the result.
//
// Output order follows the left table (each left row expanded by its matches
// in right order), then right-only rows in right order.
func outerJoin(left, right *entity.Table, keys []string) *entity.Table {
	leftKeyIdx := make([]int, len(keys))
	rightKeyIdx := make([]int, len(keys))
	for i, key := range keys {
		leftKeyIdx[i] = left.ColumnIndex(key)
		rightKeyIdx[i] = right.ColumnIndex(key)
	}

	isRightKey := make(map[int]bool, len(keys))
	for _, idx := range rightKeyIdx {
		isRightKey[idx] = true
	}

	rightByKey := make(map[string][]int, right.NumRows())
	for row := 0; row < right.NumRows(); row++ {
		k := rowKey(right, rightKeyIdx, row)
		rightByKey[k] = append(rightByKey[k], row)
	}

	matched := make([]bool, right.NumRows())

	// (leftRow, rightRow) pairs in output order; -1 marks the missing side.
	type rowPair struct{ left, right int }
	var pairs []rowPair

	for row := 0; row < left.NumRows(); row++ {
		k := rowKey(left, leftKeyIdx, row)
		if rows, ok := rightByKey[k]; ok {
			for _, rrow := range rows {
				pairs = append(pairs, rowPair{left: row, right: rrow})
				matched[rrow] = true
			}
			continue
		}
		pairs = append(pairs, rowPair{left: row, right: -1})
	}

	for row := 0; row < right.NumRows(); row++ {
		if !matched[row] {
			pairs = append(pairs, rowPair{left: -1, right: row})
		}
	}

	result := entity.NewTable()

	for col, name := range left.ColumnNames() {
		keyPos := -1
		for i, idx := range leftKeyIdx {
			if idx == col {
				keyPos = i
				break
			}
		}

		cells := make([]entity.Value, len(pairs))
		for i, p := range pairs {
			switch {
			case p.left >= 0:
				cells[i] = left.Cell(col, p.left)
			case keyPos >= 0:
				// Right-only row: key values come from the right side.
				cells[i] = right.Cell(rightKeyIdx[keyPos], p.right)
			default:
				cells[i] = entity.Missing()
			}
		}
		result.AddColumn(name, cells)
	}

	for col, name := range right.ColumnNames() {
		if isRightKey[col] {
			continue
		}

		cells := make([]entity.Value, len(pairs))
		for i, p := range pairs {
			if p.right >= 0 {
				cells[i] = right.Cell(col, p.right)
			} else {
				cells[i] = entity.Missing()
			}
		}
		result.AddColumn(name, cells)
	}

	return result
}

// concatColumns appends the right table's columns onto the left without any
// row alignment. The accumulator's row count is preserved: shorter right
// columns read as missing, extra right rows are dropped.
func concatColumns(left, right *entity.Table) *entity.Table {
	rows := left.NumRows()

	result := entity.NewTable()
	for col, name := range left.ColumnNames() {
		cells := make([]entity.Value, rows)
		for row := 0; row < rows; row++ {
			cells[row] = left.Cell(col, row)
		}
		result.AddColumn(name, cells)
	}

	for col, name := range right.ColumnNames() {
		cells := make([]entity.Value, rows)
		for row := 0; row < rows; row++ {
			cells[row] = right.Cell(col, row)
		}
		result.AddColumn(name, cells)
	}

	return result
}
