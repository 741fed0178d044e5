package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout describes how the columns of the patient workbook are named and grouped.
type Layout struct {
	Columns     ColumnNames   `yaml:"columns"`
	PatientInfo []string      `yaml:"patientInfo"`
	Tests       PositionRange `yaml:"tests"`
	Diagnoses   NumberedGroup `yaml:"diagnoses"`
	Medications NumberedGroup `yaml:"medications"`
}

type ColumnNames struct {
	EntryDate   string `yaml:"entryDate"`
	PatientId   string `yaml:"patientId"`
	Gender      string `yaml:"gender"`
	YearOfBirth string `yaml:"yearOfBirth"`
	Height      string `yaml:"height"`
}

// PositionRange selects the columns in [From, To). A non positive To selects up to the last column.
type PositionRange struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// NumberedGroup matches the columns Prefix1 ... PrefixCount.
type NumberedGroup struct {
	Prefix string `yaml:"prefix"`
	Count  int    `yaml:"count"`
}

func DefaultLayout() Layout {
	return Layout{
		Columns: ColumnNames{
			EntryDate:   "entrydate",
			PatientId:   "Patient ID",
			Gender:      "Gender",
			YearOfBirth: "Year of Birth",
			Height:      "Height_cm",
		},
		PatientInfo: []string{"entrydate", "Patient ID", "Gender", "Year of Birth"},
		Tests:       PositionRange{From: 65, To: 213},
		Diagnoses:   NumberedGroup{Prefix: "Diagnosis", Count: 9},
		Medications: NumberedGroup{Prefix: "Medication", Count: 15},
	}
}

// LoadLayout reads a yaml layout file on top of the default layout.
// Keys missing from the file keep their default values.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()
	if path == "" {
		return layout, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return layout, fmt.Errorf("unable to read layout file: %w", err)
	}
	return ParseLayout(data)
}

func ParseLayout(data []byte) (Layout, error) {
	layout := DefaultLayout()
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return layout, fmt.Errorf("unable to parse layout: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return layout, err
	}
	return layout, nil
}

func (l Layout) Validate() error {
	if l.Columns.PatientId == "" {
		return fmt.Errorf("layout: patient id column is required")
	}
	if l.Tests.From < 0 {
		return fmt.Errorf("layout: tests range start must not be negative")
	}
	if l.Tests.To > 0 && l.Tests.To < l.Tests.From {
		return fmt.Errorf("layout: tests range end must not precede its start")
	}
	if l.Diagnoses.Count < 0 || l.Medications.Count < 0 {
		return fmt.Errorf("layout: group counts must not be negative")
	}
	return nil
}
