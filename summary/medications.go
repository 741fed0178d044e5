package summary

import (
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/thbteam/patient-dashboard/dataset"
)

type medicationGroup struct {
	patients    mapset.Set[string]
	frequencies map[string]int
	duration    mean
}

// Medications reshapes the medication slots of every record into one entry per
// prescribed medication and aggregates them by medication name. The frequency
// and duration of a slot belong to the medication named in the same slot.
func Medications(ds *dataset.Dataset, records []*dataset.Record) []MedicationStat {
	groups := make(map[string]*medicationGroup)
	for _, r := range records {
		row := ds.Rows[r.Row]
		for _, slot := range ds.Groups.Medications {
			name := row[ds.Index(slot.Name)]
			if dataset.IsBlank(name) {
				continue
			}

			g, ok := groups[name]
			if !ok {
				g = &medicationGroup{
					patients:    mapset.NewThreadUnsafeSet[string](),
					frequencies: make(map[string]int),
				}
				groups[name] = g
			}
			if r.PatientId != "" {
				g.patients.Add(r.PatientId)
			}

			if slot.Frequency != "" {
				if f := row[ds.Index(slot.Frequency)]; !dataset.IsBlank(f) {
					g.frequencies[f]++
				}
			}
			if slot.Duration != "" {
				if d, ok := dataset.ParseNumber(row[ds.Index(slot.Duration)]); ok {
					g.duration.add(d)
				}
			}
		}
	}

	stats := make([]MedicationStat, 0, len(groups))
	for name, g := range groups {
		stat := MedicationStat{
			Medication:          name,
			Patients:            g.patients.Cardinality(),
			MostCommonFrequency: mostCommon(g.frequencies),
		}
		if g.duration.count > 0 {
			avg := g.duration.value()
			stat.AverageDuration = &avg
		}
		stats = append(stats, stat)
	}
	slices.SortFunc(stats, func(a, b MedicationStat) int {
		return strings.Compare(a.Medication, b.Medication)
	})
	return stats
}

// mostCommon returns the most frequent value. Ties resolve to the smallest value.
func mostCommon(counts map[string]int) *string {
	var result *string
	best := 0
	for v, n := range counts {
		if n > best || (n == best && result != nil && v < *result) {
			value := v
			result = &value
			best = n
		}
	}
	return result
}
