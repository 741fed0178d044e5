package summary

import (
	"fmt"
	"math"

	"github.com/fatih/structs"

	"github.com/thbteam/patient-dashboard/dataset"
	"github.com/thbteam/patient-dashboard/filters"
)

const (
	TopCount        = 10
	NotAvailable    = "N/A"
	averageDecimals = 2
)

// Analysis holds every aggregate shown for a filtered view of the dataset.
type Analysis struct {
	Criteria       filters.Criteria `json:"criteria"`
	Overview       Overview         `json:"overview"`
	TestResults    ResultTable      `json:"testResults"`
	TestAverages   []TestAverage    `json:"testAverages"`
	Medications    []MedicationStat `json:"medications"`
	TopMedications []MedicationStat `json:"topMedications"`
	Diagnoses      []DiagnosisCount `json:"diagnoses"`
	TopDiagnoses   []DiagnosisCount `json:"topDiagnoses"`
}

type Overview struct {
	Total      int  `json:"total" label:"Total"`
	AverageAge *int `json:"averageAge" label:"Average Age"`
	Males      int  `json:"males" label:"Males"`
	Females    int  `json:"females" label:"Females"`
}

type Card struct {
	Label string
	Value string
}

// Cards returns the overview as labelled values, missing values are N/A.
func (o Overview) Cards() []Card {
	fields := structs.Fields(o)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		value := NotAvailable
		switch v := f.Value().(type) {
		case int:
			value = fmt.Sprint(v)
		case *int:
			if v != nil {
				value = fmt.Sprint(*v)
			}
		}
		cards = append(cards, Card{Label: f.Tag("label"), Value: value})
	}
	return cards
}

// ResultTable is a display ready table of cells.
type ResultTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type TestAverage struct {
	Test    string  `json:"test"`
	Average float64 `json:"average"`
}

type MedicationStat struct {
	Medication          string   `json:"medication"`
	Patients            int      `json:"patients"`
	MostCommonFrequency *string  `json:"mostCommonFrequency"`
	AverageDuration     *float64 `json:"averageDuration"`
}

type DiagnosisCount struct {
	Diagnosis string `json:"diagnosis"`
	Patients  int    `json:"patients"`
}

// Analyze filters the dataset and aggregates the matching records.
func Analyze(ds *dataset.Dataset, criteria filters.Criteria, referenceYear int) *Analysis {
	records := filters.Apply(ds, criteria)
	medications := Medications(ds, records)
	diagnoses := Diagnoses(ds, records)

	return &Analysis{
		Criteria:       criteria,
		Overview:       NewOverview(records, referenceYear),
		TestResults:    TestResults(ds, records),
		TestAverages:   TestAverages(ds, records),
		Medications:    medications,
		TopMedications: Top(medications, TopCount, func(m MedicationStat) int { return m.Patients }),
		Diagnoses:      diagnoses,
		TopDiagnoses:   Top(diagnoses, TopCount, func(d DiagnosisCount) int { return d.Patients }),
	}
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
