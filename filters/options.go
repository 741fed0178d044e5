package filters

import (
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/thbteam/patient-dashboard/dataset"
)

const (
	DefaultVisitYearMin = 2000
	DefaultVisitYearMax = 2025
)

// Options are the choices offered by the sidebar.
type Options struct {
	Genders     []string `json:"genders"`
	Diagnoses   []string `json:"diagnoses"`
	Medications []string `json:"medications"`
	BirthYears  Range    `json:"birthYears"`
	VisitYears  Range    `json:"visitYears"`
}

func NewOptions(ds *dataset.Dataset) Options {
	options := Options{
		Genders:     []string{All, Male, Female},
		Diagnoses:   distinctValues(ds.Table, ds.Groups.Diagnoses, Unknown),
		Medications: distinctValues(ds.Table, ds.Groups.MedicationNames(), ""),
		VisitYears:  Range{Min: DefaultVisitYearMin, Max: DefaultVisitYearMax},
	}

	birthYears := make([]int, 0, len(ds.Records))
	visitYears := make([]int, 0, len(ds.Records))
	for _, r := range ds.Records {
		if r.YearOfBirth != nil {
			birthYears = append(birthYears, *r.YearOfBirth)
		}
		if r.EntryYear != nil {
			visitYears = append(visitYears, *r.EntryYear)
		}
	}
	if r, ok := bounds(birthYears); ok {
		options.BirthYears = r
	}
	if r, ok := bounds(visitYears); ok {
		options.VisitYears = r
	}

	return options
}

// distinctValues collects the distinct values of the columns in code point order, prefixed with All.
// Blank cells are reported as blank, or skipped when blank is empty.
func distinctValues(t *dataset.Table, columns []string, blank string) []string {
	set := mapset.NewThreadUnsafeSet[string]()
	for _, c := range columns {
		i := t.Index(c)
		if i < 0 {
			continue
		}
		for _, row := range t.Rows {
			v := row[i]
			if dataset.IsBlank(v) {
				if blank == "" {
					continue
				}
				v = blank
			}
			if strings.EqualFold(v, "nan") {
				continue
			}
			set.Add(v)
		}
	}

	values := set.ToSlice()
	slices.Sort(values)
	return append([]string{All}, values...)
}

func bounds(values []int) (Range, bool) {
	if len(values) == 0 {
		return Range{}, false
	}
	r := Range{Min: values[0], Max: values[0]}
	for _, v := range values[1:] {
		r.Min = min(r.Min, v)
		r.Max = max(r.Max, v)
	}
	return r, true
}
