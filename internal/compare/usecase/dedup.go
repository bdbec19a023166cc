package usecase

import (
	"fmt"

	"github.com/Rehnamol/boqmerge/internal/compare/entity"
)

// makeColumnsUnique renames repeated column labels in place.
//
// Scanning left to right, the first occurrence of a label keeps it; the n-th
// repeat becomes "label_n". Counters are per label and never reset, so three
// X columns come out as X, X_1, X_2. Runs exactly once, after all merges.
func makeColumnsUnique(table *entity.Table) {
	seen := make(map[string]int)
	for i, name := range table.ColumnNames() {
		count, dup := seen[name]
		if !dup {
			seen[name] = 0
			continue
		}

		seen[name] = count + 1
		table.RenameColumn(i, fmt.Sprintf("%s_%d", name, count+1))
	}
}
