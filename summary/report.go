package summary

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/thbteam/patient-dashboard/filters"
	"github.com/thbteam/patient-dashboard/pointer"
)

const (
	ReportSheetNameOverview     = "Overview"
	ReportSheetNameTestResults  = "Test Results"
	ReportSheetNameTestAverages = "Average Test Results"
	ReportSheetNameMedications  = "Medications"
	ReportSheetNameDiagnoses    = "Diagnoses"
)

type Report struct {
	analysis    *Analysis
	createdTime time.Time
}

func NewReport(analysis *Analysis, createdTime time.Time) Report {
	return Report{analysis: analysis, createdTime: createdTime}
}

func (r Report) Generate() (*xlsx.File, error) {
	report := xlsx.NewFile()

	components := []struct {
		name string
		fn   func(sh *xlsx.Sheet)
	}{
		{ReportSheetNameOverview, r.addOverview},
		{ReportSheetNameTestResults, r.addTestResults},
		{ReportSheetNameTestAverages, r.addTestAverages},
		{ReportSheetNameMedications, r.addMedications},
		{ReportSheetNameDiagnoses, r.addDiagnoses},
	}
	for _, c := range components {
		sh, err := report.AddSheet(c.name)
		if err != nil {
			return nil, err
		}
		c.fn(sh)
	}

	return report, nil
}

func (r Report) addOverview(sh *xlsx.Sheet) {
	sh.AddRow().AddCell().SetValue("Patient Population Overview")
	sh.AddRow()

	currentRow := sh.AddRow()
	currentRow.AddCell().SetValue("Report Generated")
	currentRow.AddCell().SetValue(r.createdTime.Format(time.RFC3339))
	sh.AddRow()

	for _, card := range r.analysis.Overview.Cards() {
		currentRow = sh.AddRow()
		currentRow.AddCell().SetValue(card.Label)
		currentRow.AddCell().SetValue(card.Value)
	}
	sh.AddRow()

	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Filters ---")
	currentRow.AddCell().SetValue("Selected ---")
	criteria := r.analysis.Criteria
	addFilterRow(sh, "Gender", orAll(criteria.Gender))
	addFilterRow(sh, "Diagnosis", orAll(criteria.Diagnosis))
	addFilterRow(sh, "Medication", orAll(criteria.Medication))
	addFilterRow(sh, "Birth Year", formatRange(criteria.BirthYears))
	addFilterRow(sh, "Visit Year", formatRange(criteria.VisitYears))
}

func (r Report) addTestResults(sh *xlsx.Sheet) {
	addHeader(sh, r.analysis.TestResults.Columns...)
	for _, row := range r.analysis.TestResults.Rows {
		currentRow := sh.AddRow()
		for _, v := range row {
			currentRow.AddCell().SetValue(v)
		}
	}
}

func (r Report) addTestAverages(sh *xlsx.Sheet) {
	addHeader(sh, "Test Name", "Average Value")
	for _, a := range r.analysis.TestAverages {
		currentRow := sh.AddRow()
		currentRow.AddCell().SetValue(a.Test)
		currentRow.AddCell().SetFloat(a.Average)
	}
}

func (r Report) addMedications(sh *xlsx.Sheet) {
	addHeader(sh, "Medication", "Patients Count", "Most Common Frequency", "Average Duration")
	for _, m := range r.analysis.Medications {
		currentRow := sh.AddRow()
		currentRow.AddCell().SetValue(m.Medication)
		currentRow.AddCell().SetInt(m.Patients)
		currentRow.AddCell().SetString(pointer.ToString(m.MostCommonFrequency))
		if m.AverageDuration != nil {
			currentRow.AddCell().SetFloat(*m.AverageDuration)
		}
	}
}

func (r Report) addDiagnoses(sh *xlsx.Sheet) {
	addHeader(sh, "Diagnosis", "Patients Count")
	for _, d := range r.analysis.Diagnoses {
		currentRow := sh.AddRow()
		currentRow.AddCell().SetValue(d.Diagnosis)
		currentRow.AddCell().SetInt(d.Patients)
	}
}

func addHeader(sh *xlsx.Sheet, columns ...string) {
	currentRow := sh.AddRow()
	for _, c := range columns {
		currentRow.AddCell().SetValue(c)
	}
}

func addFilterRow(sh *xlsx.Sheet, name, value string) {
	currentRow := sh.AddRow()
	currentRow.AddCell().SetValue(name)
	currentRow.AddCell().SetValue(value)
}

func orAll(v string) string {
	if v == "" {
		return filters.All
	}
	return v
}

func formatRange(r *filters.Range) string {
	if r == nil {
		return filters.All
	}
	return fmt.Sprintf("%d - %d", r.Min, r.Max)
}
