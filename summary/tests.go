package summary

import (
	"strconv"

	"github.com/thbteam/patient-dashboard/dataset"
)

// TestResults returns the patient columns and the test columns with at least one value.
func TestResults(ds *dataset.Dataset, records []*dataset.Record) ResultTable {
	columns := make([]string, 0, len(ds.Groups.PatientInfo)+len(ds.Groups.Tests))
	columns = append(columns, ds.Groups.PatientInfo...)
	for _, test := range ds.Groups.Tests {
		i := ds.Index(test)
		for _, r := range records {
			if !dataset.IsBlank(ds.Rows[r.Row][i]) {
				columns = append(columns, test)
				break
			}
		}
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, 0, len(columns))
		for _, c := range columns {
			row = append(row, displayValue(ds, r, c))
		}
		rows = append(rows, row)
	}

	return ResultTable{Columns: columns, Rows: rows}
}

func displayValue(ds *dataset.Dataset, r *dataset.Record, column string) string {
	switch column {
	case ds.Layout.Columns.EntryDate:
		if r.EntryDate == nil {
			return ""
		}
		return r.EntryDate.Format(dataset.DateFormat)
	case ds.Layout.Columns.YearOfBirth:
		if r.YearOfBirth == nil {
			return ""
		}
		return strconv.Itoa(*r.YearOfBirth)
	default:
		return ds.Rows[r.Row][ds.Index(column)]
	}
}

type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m *mean) value() float64 {
	return m.sum / float64(m.count)
}

// TestAverages averages each numeric test per patient first and then across patients,
// so patients with many visits don't dominate. Tests without numeric values are omitted.
func TestAverages(ds *dataset.Dataset, records []*dataset.Record) []TestAverage {
	averages := make([]TestAverage, 0, len(ds.Groups.Tests))
	for _, test := range ds.Groups.Tests {
		i := ds.Index(test)

		order := make([]string, 0)
		patients := make(map[string]*mean)
		for _, r := range records {
			v, ok := dataset.ParseNumber(ds.Rows[r.Row][i])
			if !ok {
				continue
			}
			m, exists := patients[r.PatientId]
			if !exists {
				m = &mean{}
				patients[r.PatientId] = m
				order = append(order, r.PatientId)
			}
			m.add(v)
		}
		if len(order) == 0 {
			continue
		}

		overall := &mean{}
		for _, id := range order {
			overall.add(patients[id].value())
		}
		averages = append(averages, TestAverage{
			Test:    test,
			Average: round(overall.value(), averageDecimals),
		})
	}
	return averages
}
