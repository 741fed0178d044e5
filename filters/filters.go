package filters

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/thbteam/patient-dashboard/dataset"
	errs "github.com/thbteam/patient-dashboard/errors"
)

const (
	All     = "All"
	Male    = "Male"
	Female  = "Female"
	Unknown = "Unknown"
)

// Range is an inclusive year range.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Criteria are the sidebar selections. Empty values and "All" select everything.
type Criteria struct {
	Gender     string `json:"gender,omitempty"`
	Diagnosis  string `json:"diagnosis,omitempty"`
	Medication string `json:"medication,omitempty"`
	BirthYears *Range `json:"birthYears,omitempty"`
	VisitYears *Range `json:"visitYears,omitempty"`
}

type criteriaParams struct {
	Gender       string `mapstructure:"gender"`
	Diagnosis    string `mapstructure:"diagnosis"`
	Medication   string `mapstructure:"medication"`
	BirthYearMin *int   `mapstructure:"birthYearMin"`
	BirthYearMax *int   `mapstructure:"birthYearMax"`
	VisitYearMin *int   `mapstructure:"visitYearMin"`
	VisitYearMax *int   `mapstructure:"visitYearMax"`
}

// DecodeCriteria decodes form, query or flag values. Numbers may be passed as strings.
// A range needs both of its bounds; a single bound is completed from the bounds of the options.
func DecodeCriteria(values map[string]interface{}, options Options) (Criteria, error) {
	params := criteriaParams{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &params,
		DecodeHook:       formValueHook,
	})
	if err != nil {
		return Criteria{}, err
	}
	if err := decoder.Decode(values); err != nil {
		return Criteria{}, fmt.Errorf("%w: %w", errs.BadRequest, err)
	}

	criteria := Criteria{
		Gender:     params.Gender,
		Diagnosis:  params.Diagnosis,
		Medication: params.Medication,
	}
	if criteria.BirthYears, err = yearRange("birth", params.BirthYearMin, params.BirthYearMax, options.BirthYears); err != nil {
		return Criteria{}, err
	}
	if criteria.VisitYears, err = yearRange("visit", params.VisitYearMin, params.VisitYearMax, options.VisitYears); err != nil {
		return Criteria{}, err
	}
	return criteria, nil
}

// formValueHook unwraps the slices of url.Values and treats blank optional values as absent.
func formValueHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if values, ok := data.([]string); ok && to.Kind() != reflect.Slice {
		if len(values) == 0 {
			data = ""
		} else {
			data = values[0]
		}
	}
	if s, ok := data.(string); ok && to.Kind() == reflect.Ptr && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return data, nil
}

func yearRange(name string, lo, hi *int, bounds Range) (*Range, error) {
	if lo == nil && hi == nil {
		return nil, nil
	}
	r := bounds
	if lo != nil {
		r.Min = *lo
	}
	if hi != nil {
		r.Max = *hi
	}
	if r.Min > r.Max {
		return nil, fmt.Errorf("%w: %s year range start %d is after its end %d", errs.BadRequest, name, r.Min, r.Max)
	}
	return &r, nil
}

// Apply returns the records matching all criteria, in dataset order.
// Records with a missing year always pass the year ranges.
func Apply(ds *dataset.Dataset, criteria Criteria) []*dataset.Record {
	diagnoses := indexes(ds.Table, ds.Groups.Diagnoses)
	medications := indexes(ds.Table, ds.Groups.MedicationNames())

	result := make([]*dataset.Record, 0, len(ds.Records))
	for _, r := range ds.All() {
		if selected(criteria.Gender) && r.Gender != criteria.Gender {
			continue
		}
		if selected(criteria.Diagnosis) && !matchesDiagnosis(ds.Rows[r.Row], diagnoses, criteria.Diagnosis) {
			continue
		}
		if selected(criteria.Medication) && !containsValue(ds.Rows[r.Row], medications, criteria.Medication) {
			continue
		}
		if criteria.BirthYears != nil && r.YearOfBirth != nil && !criteria.BirthYears.Contains(*r.YearOfBirth) {
			continue
		}
		if criteria.VisitYears != nil && r.EntryYear != nil && !criteria.VisitYears.Contains(*r.EntryYear) {
			continue
		}
		result = append(result, r)
	}
	return result
}

func selected(v string) bool {
	return v != "" && v != All
}

// matchesDiagnosis compares diagnosis cells literally. Unknown also matches blank cells,
// which the options list under Unknown.
func matchesDiagnosis(row []string, columns []int, diagnosis string) bool {
	if containsValue(row, columns, diagnosis) {
		return true
	}
	return diagnosis == Unknown && slices.ContainsFunc(columns, func(i int) bool { return dataset.IsBlank(row[i]) })
}

func containsValue(row []string, columns []int, value string) bool {
	return slices.ContainsFunc(columns, func(i int) bool { return row[i] == value })
}

func indexes(t *dataset.Table, columns []string) []int {
	result := make([]int, 0, len(columns))
	for _, c := range columns {
		if i := t.Index(c); i >= 0 {
			result = append(result, i)
		}
	}
	return result
}
