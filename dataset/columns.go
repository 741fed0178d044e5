package dataset

import "fmt"

const (
	MedicationNameSuffix      = "_Name"
	MedicationFrequencySuffix = "_Frequency"
	MedicationCommentSuffix   = "_Comment"
	MedicationDurationSuffix  = "_Duration"
)

// Groups partitions the workbook columns by meaning.
type Groups struct {
	PatientInfo []string
	Tests       []string
	Diagnoses   []string
	Medications []MedicationSlot
}

// MedicationSlot holds the columns of the n-th medication of a visit.
// Frequency, Comment and Duration are empty when the workbook lacks them.
type MedicationSlot struct {
	Index     int
	Name      string
	Frequency string
	Comment   string
	Duration  string
}

func (g Groups) MedicationNames() []string {
	names := make([]string, 0, len(g.Medications))
	for _, m := range g.Medications {
		names = append(names, m.Name)
	}
	return names
}

// Classify discovers the column groups of the layout. Only existing columns are returned.
func Classify(t *Table, layout Layout) Groups {
	groups := Groups{
		PatientInfo: make([]string, 0, len(layout.PatientInfo)),
		Tests:       make([]string, 0),
		Diagnoses:   make([]string, 0, layout.Diagnoses.Count),
		Medications: make([]MedicationSlot, 0, layout.Medications.Count),
	}

	for _, c := range layout.PatientInfo {
		if t.Has(c) {
			groups.PatientInfo = append(groups.PatientInfo, c)
		}
	}

	from := min(layout.Tests.From, len(t.Columns))
	to := len(t.Columns)
	if layout.Tests.To > 0 {
		to = min(layout.Tests.To, len(t.Columns))
	}
	if from < to {
		groups.Tests = append(groups.Tests, t.Columns[from:to]...)
	}

	for i := 1; i <= layout.Diagnoses.Count; i++ {
		if c := fmt.Sprintf("%s%d", layout.Diagnoses.Prefix, i); t.Has(c) {
			groups.Diagnoses = append(groups.Diagnoses, c)
		}
	}

	for i := 1; i <= layout.Medications.Count; i++ {
		prefix := fmt.Sprintf("%s%d", layout.Medications.Prefix, i)
		name := prefix + MedicationNameSuffix
		if !t.Has(name) {
			continue
		}
		groups.Medications = append(groups.Medications, MedicationSlot{
			Index:     i,
			Name:      name,
			Frequency: existing(t, prefix+MedicationFrequencySuffix),
			Comment:   existing(t, prefix+MedicationCommentSuffix),
			Duration:  existing(t, prefix+MedicationDurationSuffix),
		})
	}

	return groups
}

func existing(t *Table, column string) string {
	if t.Has(column) {
		return column
	}
	return ""
}
