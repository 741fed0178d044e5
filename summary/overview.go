package summary

import (
	"github.com/thbteam/patient-dashboard/dataset"
	"github.com/thbteam/patient-dashboard/filters"
)

// NewOverview counts unique patients. The average age is derived from the
// mean year of birth and truncated to whole years.
func NewOverview(records []*dataset.Record, referenceYear int) Overview {
	overview := Overview{
		Total:   dataset.UniquePatients(records),
		Males:   dataset.UniquePatients(withGender(records, filters.Male)),
		Females: dataset.UniquePatients(withGender(records, filters.Female)),
	}

	sum, count := 0, 0
	for _, r := range records {
		if r.YearOfBirth != nil {
			sum += *r.YearOfBirth
			count++
		}
	}
	if count > 0 {
		age := int(float64(referenceYear) - float64(sum)/float64(count))
		overview.AverageAge = &age
	}

	return overview
}

func withGender(records []*dataset.Record, gender string) []*dataset.Record {
	result := make([]*dataset.Record, 0, len(records))
	for _, r := range records {
		if r.Gender == gender {
			result = append(result, r)
		}
	}
	return result
}
