package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mohae/deepcopy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	errs "github.com/thbteam/patient-dashboard/errors"
)

const (
	MinYearOfBirth = 1886
	MaxYearOfBirth = 2100

	entryDateLayout = "2/1/2006"
)

var ErrMissingColumn = fmt.Errorf("%w: required column is missing", errs.UnprocessableEntity)

// Record holds the typed values of a table row. Nil pointers are missing values.
type Record struct {
	Row         int
	PatientId   string
	Gender      string
	EntryDate   *time.Time
	EntryYear   *int
	YearOfBirth *int
	HeightCm    *float64
}

// Dataset is a cleaned table together with its column groups and typed records.
type Dataset struct {
	*Table

	Layout  Layout
	Groups  Groups
	Records []Record

	RawPatients     int
	CleanedPatients int
}

// Clean coerces the well known columns of a copy of the table. The raw table is not modified.
func Clean(raw *Table, layout Layout) (*Dataset, error) {
	if !raw.Has(layout.Columns.PatientId) {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, layout.Columns.PatientId)
	}

	table := NewTable(
		deepcopy.Copy(raw.Columns).([]string),
		deepcopy.Copy(raw.Rows).([][]string),
	)

	ds := &Dataset{
		Table:       table,
		Layout:      layout,
		Groups:      Classify(table, layout),
		Records:     make([]Record, 0, table.Len()),
		RawPatients: raw.UniqueValues(layout.Columns.PatientId),
	}

	title := cases.Title(language.English)
	cols := layout.Columns
	for i := range table.Rows {
		record := Record{
			Row:         i,
			PatientId:   strings.TrimSpace(table.Value(i, cols.PatientId)),
			Gender:      normalizeGender(title, table.Value(i, cols.Gender)),
			YearOfBirth: ParseYearOfBirth(table.Value(i, cols.YearOfBirth)),
			HeightCm:    ParseNumberPtr(table.Value(i, cols.Height)),
		}
		if date := ParseEntryDate(table.Value(i, cols.EntryDate)); date != nil {
			record.EntryDate = date
			year := date.Year()
			record.EntryYear = &year
		}
		ds.Records = append(ds.Records, record)
	}

	ds.CleanedPatients = UniquePatients(ds.All())
	return ds, nil
}

// ParseEntryDate parses day first dates, e.g. 21/12/2020 or 1/2/2021.
func ParseEntryDate(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	t, err := time.Parse(entryDateLayout, v)
	if err != nil {
		return nil
	}
	return &t
}

// ParseYearOfBirth returns nil for non numeric years and years outside of the accepted range.
func ParseYearOfBirth(v string) *int {
	n, ok := ParseNumber(v)
	if !ok || n < MinYearOfBirth || n > MaxYearOfBirth {
		return nil
	}
	year := int(math.Floor(n))
	return &year
}

// ParseNumber parses a finite decimal number.
func ParseNumber(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func ParseNumberPtr(v string) *float64 {
	if n, ok := ParseNumber(v); ok {
		return &n
	}
	return nil
}

// NormalizeGender title cases the value, e.g. MALE becomes Male.
func NormalizeGender(v string) string {
	return normalizeGender(cases.Title(language.English), v)
}

func normalizeGender(title cases.Caser, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	return title.String(strings.ToLower(v))
}

// All returns pointers to every record of the dataset, in row order.
func (d *Dataset) All() []*Record {
	all := make([]*Record, len(d.Records))
	for i := range d.Records {
		all[i] = &d.Records[i]
	}
	return all
}

// UniquePatients counts the distinct non blank patient ids.
func UniquePatients(records []*Record) int {
	set := mapset.NewThreadUnsafeSet[string]()
	for _, r := range records {
		if r.PatientId != "" {
			set.Add(r.PatientId)
		}
	}
	return set.Cardinality()
}
