package test

import (
	. "github.com/onsi/gomega"

	"github.com/thbteam/patient-dashboard/dataset"
)

// NewDataset cleans the visits laid out with Header(tests...) using the default layout.
func NewDataset(tests []string, visits ...Visit) *dataset.Dataset {
	header := Header(tests...)
	ds, err := dataset.Clean(dataset.NewTable(header, Rows(header, visits...)), dataset.DefaultLayout())
	Expect(err).ToNot(HaveOccurred())
	return ds
}

func PatientIds(records []*dataset.Record) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.PatientId)
	}
	return ids
}
