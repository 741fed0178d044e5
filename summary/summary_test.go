package summary_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/thbteam/patient-dashboard/dataset"
	datasetTest "github.com/thbteam/patient-dashboard/dataset/test"
	"github.com/thbteam/patient-dashboard/filters"
	"github.com/thbteam/patient-dashboard/pointer"
	"github.com/thbteam/patient-dashboard/summary"
)

const referenceYear = 2025

var tests = []string{"Hemoglobin", "Glucose", "Comment", "Empty"}

type med = datasetTest.Medication

func visits() []datasetTest.Visit {
	return []datasetTest.Visit{
		{PatientId: "P1", Gender: "Male", YearOfBirth: "1950", EntryDate: "01/03/2019",
			Diagnoses:   []string{"Hypertension", "Asthma"},
			Medications: []med{{Name: "Lisinopril", Frequency: "Once daily", Duration: "10"}, {Name: "Metformin", Frequency: "Twice daily", Duration: "30"}},
			Tests:       map[string]string{"Hemoglobin": "12", "Glucose": "100", "Comment": "fasting"}},
		{PatientId: "P1", Gender: "Male", YearOfBirth: "1950", EntryDate: "10/10/2023",
			Diagnoses:   []string{"Hypertension"},
			Medications: []med{{Name: "Lisinopril", Frequency: "Twice daily", Duration: "20"}},
			Tests:       map[string]string{"Hemoglobin": "14"}},
		{PatientId: "P2", Gender: "Female", YearOfBirth: "1980", EntryDate: "15/06/2021",
			Diagnoses:   []string{"Asthma"},
			Medications: []med{{Name: "Lisinopril", Frequency: "Twice daily", Duration: "two weeks"}},
			Tests:       map[string]string{"Hemoglobin": "10", "Glucose": "abc"}},
		{PatientId: "P3", Gender: "Female",
			Diagnoses:   []string{"Anemia"},
			Medications: []med{{Name: "Salbutamol"}}},
		{PatientId: "P4", Gender: "male", YearOfBirth: "1971", EntryDate: "02/02/2022",
			Diagnoses: []string{"Asthma"}},
	}
}

var _ = Describe("Summary", func() {
	var ds *dataset.Dataset
	var records []*dataset.Record

	BeforeEach(func() {
		ds = datasetTest.NewDataset(tests, visits()...)
		records = ds.All()
	})

	Describe("NewOverview", func() {
		It("counts unique patients by gender", func() {
			overview := summary.NewOverview(records, referenceYear)
			Expect(overview.Total).To(Equal(4))
			Expect(overview.Males).To(Equal(2))
			Expect(overview.Females).To(Equal(2))
		})

		It("truncates the average age", func() {
			overview := summary.NewOverview(records, referenceYear)
			Expect(overview.AverageAge).To(Equal(pointer.FromAny(62)))
		})

		It("has no average age without years of birth", func() {
			overview := summary.NewOverview(records[3:4], referenceYear)
			Expect(overview.AverageAge).To(BeNil())
			Expect(overview.Cards()).To(Equal([]summary.Card{
				{Label: "Total", Value: "1"},
				{Label: "Average Age", Value: "N/A"},
				{Label: "Males", Value: "0"},
				{Label: "Females", Value: "1"},
			}))
		})
	})

	Describe("TestResults", func() {
		It("includes the patient columns and the tests with values", func() {
			table := summary.TestResults(ds, records)
			Expect(table.Columns).To(Equal([]string{"entrydate", "Patient ID", "Gender", "Year of Birth", "Hemoglobin", "Glucose", "Comment"}))
			Expect(table.Rows).To(HaveLen(5))
			Expect(table.Rows[0]).To(Equal([]string{"01/03/2019", "P1", "Male", "1950", "12", "100", "fasting"}))
			Expect(table.Rows[3]).To(Equal([]string{"", "P3", "Female", "", "", "", ""}))
		})

		It("drops the tests without values in the filtered records", func() {
			table := summary.TestResults(ds, records[3:])
			Expect(table.Columns).To(Equal([]string{"entrydate", "Patient ID", "Gender", "Year of Birth"}))
		})
	})

	Describe("TestAverages", func() {
		It("averages the per patient means of numeric tests", func() {
			Expect(summary.TestAverages(ds, records)).To(Equal([]summary.TestAverage{
				{Test: "Hemoglobin", Average: 11.5},
				{Test: "Glucose", Average: 100},
			}))
		})

		It("rounds to two decimals", func() {
			ds := datasetTest.NewDataset([]string{"Potassium"},
				datasetTest.Visit{PatientId: "A", Tests: map[string]string{"Potassium": "1"}},
				datasetTest.Visit{PatientId: "B", Tests: map[string]string{"Potassium": "1"}},
				datasetTest.Visit{PatientId: "C", Tests: map[string]string{"Potassium": "2"}},
			)
			Expect(summary.TestAverages(ds, ds.All())).To(Equal([]summary.TestAverage{{Test: "Potassium", Average: 1.33}}))
		})
	})

	Describe("Medications", func() {
		It("aggregates the medications by name", func() {
			Expect(summary.Medications(ds, records)).To(Equal([]summary.MedicationStat{
				{Medication: "Lisinopril", Patients: 2, MostCommonFrequency: pointer.FromAny("Twice daily"), AverageDuration: pointer.FromAny(15.0)},
				{Medication: "Metformin", Patients: 1, MostCommonFrequency: pointer.FromAny("Twice daily"), AverageDuration: pointer.FromAny(30.0)},
				{Medication: "Salbutamol", Patients: 1},
			}))
		})

		It("resolves frequency ties to the smallest value", func() {
			Expect(summary.Medications(ds, records[:2])[0].MostCommonFrequency).To(Equal(pointer.FromAny("Once daily")))
		})

		It("returns nothing without medications", func() {
			Expect(summary.Medications(ds, records[4:])).To(BeEmpty())
		})
	})

	Describe("Patient counts", func() {
		It("ignores rows without a patient id everywhere", func() {
			anonymous := datasetTest.Visit{Gender: "Female", YearOfBirth: "1990",
				Diagnoses:   []string{"Asthma"},
				Medications: []med{{Name: "Lisinopril", Frequency: "Twice daily"}}}
			ds = datasetTest.NewDataset(tests, append(visits(), anonymous)...)
			records = ds.All()

			analysis := summary.Analyze(ds, filters.Criteria{}, referenceYear)
			Expect(analysis.Overview.Total).To(Equal(4))
			Expect(analysis.Diagnoses[0]).To(Equal(summary.DiagnosisCount{Diagnosis: "Asthma", Patients: 3}))
			Expect(analysis.Medications[0].Medication).To(Equal("Lisinopril"))
			Expect(analysis.Medications[0].Patients).To(Equal(2))
		})
	})

	Describe("Diagnoses", func() {
		It("counts unique patients per diagnosis", func() {
			Expect(summary.Diagnoses(ds, records)).To(Equal([]summary.DiagnosisCount{
				{Diagnosis: "Asthma", Patients: 3},
				{Diagnosis: "Anemia", Patients: 1},
				{Diagnosis: "Hypertension", Patients: 1},
			}))
		})
	})

	Describe("Top", func() {
		It("keeps the highest counts in a stable order", func() {
			top := summary.Top(summary.Medications(ds, records), 2, func(m summary.MedicationStat) int { return m.Patients })
			Expect(top).To(HaveLen(2))
			Expect(top[0].Medication).To(Equal("Lisinopril"))
			Expect(top[1].Medication).To(Equal("Metformin"))
		})

		It("returns all items when there are fewer than requested", func() {
			Expect(summary.Top([]int{1, 3, 2}, 10, func(v int) int { return v })).To(Equal([]int{3, 2, 1}))
		})
	})

	Describe("Analyze", func() {
		It("aggregates the filtered records", func() {
			analysis := summary.Analyze(ds, filters.Criteria{Gender: filters.Female}, referenceYear)
			Expect(analysis.Overview).To(Equal(summary.Overview{Total: 2, AverageAge: pointer.FromAny(45), Males: 0, Females: 2}))
			Expect(analysis.TestResults.Rows).To(HaveLen(2))
			Expect(analysis.TopDiagnoses).To(Equal([]summary.DiagnosisCount{
				{Diagnosis: "Anemia", Patients: 1},
				{Diagnosis: "Asthma", Patients: 1},
			}))
			Expect(analysis.TopMedications).To(HaveLen(2))
		})

		It("limits the rankings to ten entries", func() {
			visits := make([]datasetTest.Visit, 0, 12)
			for i := 0; i < 12; i++ {
				visits = append(visits, datasetTest.Visit{
					PatientId: string(rune('A' + i)),
					Diagnoses: []string{string(rune('a' + i))},
				})
			}
			analysis := summary.Analyze(datasetTest.NewDataset(nil, visits...), filters.Criteria{}, referenceYear)
			Expect(analysis.Diagnoses).To(HaveLen(12))
			Expect(analysis.TopDiagnoses).To(HaveLen(summary.TopCount))
		})
	})
})
