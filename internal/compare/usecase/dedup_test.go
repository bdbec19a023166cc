package usecase

import (
	"reflect"
	"testing"
)

func TestMakeColumnsUnique(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		columns []string
		want    []string
	}{
		{
			name:    "no duplicates untouched",
			columns: []string{"ITEM", "DESCRIPTION", "RATE"},
			want:    []string{"ITEM", "DESCRIPTION", "RATE"},
		},
		{
			name:    "triple repeat",
			columns: []string{"X", "X", "X"},
			want:    []string{"X", "X_1", "X_2"},
		},
		{
			name:    "interleaved labels",
			columns: []string{"A", "B", "A", "B", "A"},
			want:    []string{"A", "B", "A_1", "B_1", "A_2"},
		},
		{
			name:    "blank headers",
			columns: []string{"", "", "ITEM"},
			want:    []string{"", "_1", "ITEM"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			table := tableWithColumns(tc.columns...)
			makeColumnsUnique(table)

			if got := table.ColumnNames(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("columns = %v, want %v", got, tc.want)
			}
		})
	}
}
