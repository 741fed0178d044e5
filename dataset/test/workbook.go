package test

import (
	"bytes"
	"fmt"

	"github.com/tealeg/xlsx/v3"

	"github.com/thbteam/patient-dashboard/test"
)

const (
	DiagnosisColumns  = 3
	MedicationColumns = 3
	TestsFrom         = 65
)

var (
	Genders     = []string{"Male", "Female"}
	Diagnoses   = []string{"Hypertension", "Type 2 Diabetes", "Asthma", "Hypothyroidism", "Anemia"}
	Medications = []string{"Metformin", "Lisinopril", "Salbutamol", "Levothyroxine", "Ferrous Sulfate"}
	Frequencies = []string{"Once daily", "Twice daily", "As needed"}
)

type Medication struct {
	Name      string
	Frequency string
	Comment   string
	Duration  string
}

// Visit is a single workbook row in terms of the default layout.
type Visit struct {
	EntryDate   string
	PatientId   string
	Gender      string
	YearOfBirth string
	Height      string
	Diagnoses   []string
	Medications []Medication
	Tests       map[string]string
}

// Header returns a header in the default layout with the test columns starting at TestsFrom.
func Header(tests ...string) []string {
	header := []string{"entrydate", "Patient ID", "Gender", "Year of Birth", "Height_cm"}
	for i := 1; i <= DiagnosisColumns; i++ {
		header = append(header, fmt.Sprintf("Diagnosis%d", i))
	}
	for i := 1; i <= MedicationColumns; i++ {
		header = append(header,
			fmt.Sprintf("Medication%d_Name", i),
			fmt.Sprintf("Medication%d_Frequency", i),
			fmt.Sprintf("Medication%d_Comment", i),
			fmt.Sprintf("Medication%d_Duration", i),
		)
	}
	for i := len(header); i < TestsFrom; i++ {
		header = append(header, fmt.Sprintf("Notes%d", i))
	}
	return append(header, tests...)
}

func (v Visit) Row(header []string) []string {
	values := map[string]string{
		"entrydate":     v.EntryDate,
		"Patient ID":    v.PatientId,
		"Gender":        v.Gender,
		"Year of Birth": v.YearOfBirth,
		"Height_cm":     v.Height,
	}
	for i, d := range v.Diagnoses {
		values[fmt.Sprintf("Diagnosis%d", i+1)] = d
	}
	for i, m := range v.Medications {
		values[fmt.Sprintf("Medication%d_Name", i+1)] = m.Name
		values[fmt.Sprintf("Medication%d_Frequency", i+1)] = m.Frequency
		values[fmt.Sprintf("Medication%d_Comment", i+1)] = m.Comment
		values[fmt.Sprintf("Medication%d_Duration", i+1)] = m.Duration
	}
	for k, t := range v.Tests {
		values[k] = t
	}

	row := make([]string, len(header))
	for i, c := range header {
		row[i] = values[c]
	}
	return row
}

func Rows(header []string, visits ...Visit) [][]string {
	rows := make([][]string, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, v.Row(header))
	}
	return rows
}

// RandomVisit returns a visit of a random patient with valid demographics.
func RandomVisit(tests ...string) Visit {
	v := Visit{
		EntryDate:   fmt.Sprintf("%02d/%02d/%d", test.Faker.IntBetween(1, 28), test.Faker.IntBetween(1, 12), test.Faker.IntBetween(2015, 2024)),
		PatientId:   fmt.Sprintf("P%05d", test.Faker.IntBetween(1, 99999)),
		Gender:      test.Faker.RandomStringElement(Genders),
		YearOfBirth: fmt.Sprint(test.Faker.IntBetween(1930, 2010)),
		Height:      fmt.Sprint(test.Faker.IntBetween(140, 200)),
		Diagnoses:   []string{test.Faker.RandomStringElement(Diagnoses)},
		Medications: []Medication{{
			Name:      test.Faker.RandomStringElement(Medications),
			Frequency: test.Faker.RandomStringElement(Frequencies),
			Duration:  fmt.Sprint(test.Faker.IntBetween(1, 30)),
		}},
		Tests: make(map[string]string),
	}
	for _, t := range tests {
		v.Tests[t] = fmt.Sprintf("%.1f", 1+test.Rand.Float64()*199)
	}
	return v
}

// Workbook encodes the header and rows as the first sheet of an xlsx workbook.
func Workbook(header []string, rows [][]string) ([]byte, error) {
	file := xlsx.NewFile()
	sh, err := file.AddSheet("Patients")
	if err != nil {
		return nil, err
	}

	r := sh.AddRow()
	for _, h := range header {
		r.AddCell().SetString(h)
	}
	for _, row := range rows {
		r = sh.AddRow()
		for _, v := range row {
			r.AddCell().SetString(v)
		}
	}

	buf := &bytes.Buffer{}
	if err := file.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
