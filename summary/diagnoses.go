package summary

import (
	"cmp"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/thbteam/patient-dashboard/dataset"
)

// Diagnoses counts the unique non blank patient ids per diagnosis across all diagnosis
// columns, most common first.
func Diagnoses(ds *dataset.Dataset, records []*dataset.Record) []DiagnosisCount {
	patients := make(map[string]mapset.Set[string])
	for _, r := range records {
		row := ds.Rows[r.Row]
		for _, c := range ds.Groups.Diagnoses {
			diagnosis := row[ds.Index(c)]
			if dataset.IsBlank(diagnosis) {
				continue
			}
			if _, ok := patients[diagnosis]; !ok {
				patients[diagnosis] = mapset.NewThreadUnsafeSet[string]()
			}
			if r.PatientId != "" {
				patients[diagnosis].Add(r.PatientId)
			}
		}
	}

	counts := make([]DiagnosisCount, 0, len(patients))
	for diagnosis, set := range patients {
		counts = append(counts, DiagnosisCount{Diagnosis: diagnosis, Patients: set.Cardinality()})
	}
	slices.SortFunc(counts, func(a, b DiagnosisCount) int {
		if c := cmp.Compare(b.Patients, a.Patients); c != 0 {
			return c
		}
		return strings.Compare(a.Diagnosis, b.Diagnosis)
	})
	return counts
}
