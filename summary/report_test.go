package summary_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	datasetTest "github.com/thbteam/patient-dashboard/dataset/test"
	"github.com/thbteam/patient-dashboard/filters"
	"github.com/thbteam/patient-dashboard/summary"
)

var _ = Describe("Report", func() {
	var sheets map[string][][]string

	BeforeEach(func() {
		ds := datasetTest.NewDataset(tests, visits()...)
		criteria := filters.Criteria{
			Diagnosis:  "Asthma",
			BirthYears: &filters.Range{Min: 1940, Max: 1990},
		}
		analysis := summary.Analyze(ds, criteria, referenceYear)

		created := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
		f, err := summary.NewReport(analysis, created).Generate()
		Expect(err).ToNot(HaveOccurred())

		slices, err := f.ToSlice()
		Expect(err).ToNot(HaveOccurred())
		Expect(f.Sheets).To(HaveLen(5))

		sheets = make(map[string][][]string)
		for i, sh := range f.Sheets {
			sheets[sh.Name] = slices[i]
		}
	})

	It("generates one sheet per section", func() {
		Expect(sheets).To(HaveKey(summary.ReportSheetNameOverview))
		Expect(sheets).To(HaveKey(summary.ReportSheetNameTestResults))
		Expect(sheets).To(HaveKey(summary.ReportSheetNameTestAverages))
		Expect(sheets).To(HaveKey(summary.ReportSheetNameMedications))
		Expect(sheets).To(HaveKey(summary.ReportSheetNameDiagnoses))
	})

	It("lists the overview and the selected filters", func() {
		overview := sheets[summary.ReportSheetNameOverview]
		Expect(overview[0][0]).To(Equal("Patient Population Overview"))
		Expect(findRow(overview, "Report Generated")).To(Equal([]string{"Report Generated", "2025-03-01T10:00:00Z"}))
		Expect(findRow(overview, "Total")).To(Equal([]string{"Total", "3"}))
		Expect(findRow(overview, "Gender")).To(Equal([]string{"Gender", "All"}))
		Expect(findRow(overview, "Diagnosis")).To(Equal([]string{"Diagnosis", "Asthma"}))
		Expect(findRow(overview, "Birth Year")).To(Equal([]string{"Birth Year", "1940 - 1990"}))
		Expect(findRow(overview, "Visit Year")).To(Equal([]string{"Visit Year", "All"}))
	})

	It("writes the test results with a header", func() {
		results := sheets[summary.ReportSheetNameTestResults]
		Expect(results[0]).To(Equal([]string{"entrydate", "Patient ID", "Gender", "Year of Birth", "Hemoglobin", "Glucose", "Comment"}))
		Expect(results).To(HaveLen(4))
	})

	It("writes the medication and diagnosis counts", func() {
		medications := sheets[summary.ReportSheetNameMedications]
		Expect(medications[0]).To(Equal([]string{"Medication", "Patients Count", "Most Common Frequency", "Average Duration"}))
		Expect(medications[1][:3]).To(Equal([]string{"Lisinopril", "2", "Once daily"}))

		diagnoses := sheets[summary.ReportSheetNameDiagnoses]
		Expect(diagnoses[0]).To(Equal([]string{"Diagnosis", "Patients Count"}))
		Expect(diagnoses[1]).To(Equal([]string{"Asthma", "3"}))
	})

	It("leaves the frequency blank when a medication has none", func() {
		analysis := &summary.Analysis{Medications: []summary.MedicationStat{{Medication: "Salbutamol", Patients: 1}}}
		f, err := summary.NewReport(analysis, time.Now()).Generate()
		Expect(err).ToNot(HaveOccurred())

		sh, ok := f.Sheet[summary.ReportSheetNameMedications]
		Expect(ok).To(BeTrue())
		cell, err := sh.Cell(1, 2)
		Expect(err).ToNot(HaveOccurred())
		Expect(cell.Value).To(BeEmpty())

		name, err := sh.Cell(1, 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(name.Value).To(Equal("Salbutamol"))
	})
})

func findRow(sheet [][]string, label string) []string {
	for _, row := range sheet {
		if len(row) > 0 && row[0] == label {
			return row
		}
	}
	return nil
}
