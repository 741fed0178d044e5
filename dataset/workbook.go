package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tealeg/xlsx/v3"

	errs "github.com/thbteam/patient-dashboard/errors"
)

const DateFormat = "02/01/2006"

var ErrEmptyWorkbook = fmt.Errorf("%w: workbook has no data", errs.UnprocessableEntity)

// ReadWorkbook decodes the first worksheet of an xlsx workbook. The first row is the header.
func ReadWorkbook(data []byte) (*Table, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open workbook: %w", errs.UnprocessableEntity, err)
	}
	if len(file.Sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	sh := file.Sheets[0]
	defer sh.Close()

	if sh.MaxRow == 0 || sh.MaxCol == 0 {
		return nil, ErrEmptyWorkbook
	}

	cells := make([][]string, 0, sh.MaxRow)
	for r := 0; r < sh.MaxRow; r++ {
		row := make([]string, sh.MaxCol)
		for c := 0; c < sh.MaxCol; c++ {
			cell, err := sh.Cell(r, c)
			if err != nil {
				return nil, fmt.Errorf("%w: unable to read cell %d:%d: %w", errs.UnprocessableEntity, r, c, err)
			}
			row[c] = cellValue(cell, file.Date1904)
		}
		cells = append(cells, row)
	}

	columns := headerNames(cells[0])
	if len(columns) == 0 {
		return nil, ErrEmptyWorkbook
	}

	rows := make([][]string, 0, len(cells)-1)
	for _, row := range cells[1:] {
		if isBlankRow(row) {
			continue
		}
		rows = append(rows, row)
	}

	return NewTable(columns, rows), nil
}

func cellValue(cell *xlsx.Cell, date1904 bool) string {
	if cell == nil {
		return ""
	}
	if cell.IsTime() {
		if t, err := cell.GetTime(date1904); err == nil {
			return t.Format(DateFormat)
		}
	}
	if cell.Type() == xlsx.CellTypeBool {
		if cell.Bool() {
			return "True"
		}
		return "False"
	}
	// Numbers keep their stored value, not the display format.
	return strings.TrimSpace(cell.Value)
}

// headerNames names blank headers after their position and suffixes
// repeated names with an occurrence counter, so every column is addressable.
func headerNames(header []string) []string {
	last := len(header)
	for last > 0 && IsBlank(header[last-1]) {
		last--
	}

	columns := make([]string, 0, last)
	seen := make(map[string]int)
	for i, name := range header[:last] {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		columns = append(columns, name)
	}
	return columns
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if !IsBlank(v) {
			return false
		}
	}
	return true
}

// IsEmptyWorkbook reports whether err was caused by a workbook without data.
func IsEmptyWorkbook(err error) bool {
	return errors.Is(err, ErrEmptyWorkbook)
}
