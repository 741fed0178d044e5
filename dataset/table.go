package dataset

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Table is a header plus rows of raw string cells. Every row has exactly
// one cell per column and missing values are empty strings.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		Columns: columns,
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, fitRow(row, len(columns)))
	}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, ok := t.index[c]; !ok {
			t.index[c] = i
		}
	}
}

// Index returns the position of the column or -1.
func (t *Table) Index(column string) int {
	if t.index == nil {
		t.reindex()
	}
	if i, ok := t.index[column]; ok {
		return i
	}
	return -1
}

func (t *Table) Has(column string) bool {
	return t.Index(column) >= 0
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Value returns the cell of the named column, or "" when the column doesn't exist.
func (t *Table) Value(row int, column string) string {
	i := t.Index(column)
	if i < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][i]
}

// UniqueValues returns the number of distinct non-blank values in the column.
func (t *Table) UniqueValues(column string) int {
	i := t.Index(column)
	if i < 0 {
		return 0
	}

	set := mapset.NewThreadUnsafeSet[string]()
	for _, row := range t.Rows {
		if v := row[i]; !IsBlank(v) {
			set.Add(v)
		}
	}
	return set.Cardinality()
}

func IsBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}

func fitRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	fitted := make([]string, width)
	copy(fitted, row)
	return fitted
}
