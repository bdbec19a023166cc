package usecase

import (
	"fmt"
	"strings"

	"github.com/Rehnamol/boqmerge/internal/compare/entity"
)

const (
	rateColumn   = "RATE"
	amountColumn = "AMOUNT"
)

func contractorName(position int) string {
	return fmt.Sprintf("Contractor_%d", position)
}

// normalizeColumns canonicalizes the priced columns of one contractor's table.
//
// If no column is exactly RATE, the first column whose label contains "rate"
// case-insensitively is renamed to RATE; at most one column is renamed even
// when several candidates exist. RATE and AMOUNT (exact label only) are then
// tagged with the contractor's position so they stay distinguishable after the
// merge. Every other column, keys included, is left untouched.
//
// This is a one-shot pass over a freshly loaded table; re-applying it to an
// already tagged table is not a supported use.
func normalizeColumns(table *entity.Table, position int) {
	if !table.HasColumn(rateColumn) {
		for i, name := range table.ColumnNames() {
			if strings.Contains(strings.ToLower(name), "rate") {
				table.RenameColumn(i, rateColumn)
				break
			}
		}
	}

	if i := table.ColumnIndex(rateColumn); i >= 0 {
		table.RenameColumn(i, contractorName(position)+"_"+rateColumn)
	}

	if i := table.ColumnIndex(amountColumn); i >= 0 {
		table.RenameColumn(i, contractorName(position)+"_"+amountColumn)
	}
}
