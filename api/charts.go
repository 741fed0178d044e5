package api

import (
	"fmt"
	"math"
	"slices"

	"github.com/thbteam/patient-dashboard/summary"
)

const (
	chartWidth      = 720
	chartLabelWidth = 220
	chartValueWidth = 48
	barHeight       = 22
	barGap          = 8
)

var (
	bluesLight = [3]float64{0xc6, 0xdb, 0xef}
	bluesDark  = [3]float64{0x08, 0x30, 0x6b}
)

// BarChart is a horizontal bar chart laid out for inline SVG rendering.
type BarChart struct {
	Title      string
	ValueLabel string
	Width      int
	Height     int
	LabelWidth int
	Bars       []Bar
}

type Bar struct {
	Label string
	Value int
	Y     int
	Width int
	Fill  string
}

// NewBarChart scales the bars to the largest value. Darker bars have higher values.
func NewBarChart(title, valueLabel string, labels []string, values []int) *BarChart {
	chart := &BarChart{
		Title:      title,
		ValueLabel: valueLabel,
		Width:      chartWidth,
		Height:     len(labels) * (barHeight + barGap),
		LabelWidth: chartLabelWidth,
		Bars:       make([]Bar, 0, len(labels)),
	}
	if len(values) == 0 {
		return chart
	}

	maxValue := slices.Max(values)
	plotWidth := chartWidth - chartLabelWidth - chartValueWidth
	for i, label := range labels {
		bar := Bar{
			Label: label,
			Value: values[i],
			Y:     i * (barHeight + barGap),
			Fill:  blues(values[i], maxValue),
		}
		if maxValue > 0 {
			bar.Width = values[i] * plotWidth / maxValue
		}
		chart.Bars = append(chart.Bars, bar)
	}
	return chart
}

func MedicationsChart(medications []summary.MedicationStat) *BarChart {
	labels := make([]string, 0, len(medications))
	values := make([]int, 0, len(medications))
	for _, m := range medications {
		labels = append(labels, m.Medication)
		values = append(values, m.Patients)
	}
	return NewBarChart("Top Medications by Patient Count", "Number of Patients", labels, values)
}

func DiagnosesChart(diagnoses []summary.DiagnosisCount) *BarChart {
	labels := make([]string, 0, len(diagnoses))
	values := make([]int, 0, len(diagnoses))
	for _, d := range diagnoses {
		labels = append(labels, d.Diagnosis)
		values = append(values, d.Patients)
	}
	return NewBarChart("Top Diagnoses by Patient Count", "Number of Patients", labels, values)
}

// blues interpolates the sequential blue scale, maxValue maps to the darkest color.
func blues(value, maxValue int) string {
	t := 1.0
	if maxValue > 0 {
		t = float64(value) / float64(maxValue)
	}

	var rgb [3]int
	for i := range rgb {
		rgb[i] = int(math.Round(bluesLight[i] + t*(bluesDark[i]-bluesLight[i])))
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
