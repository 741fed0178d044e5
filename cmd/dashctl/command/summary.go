package command

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thbteam/patient-dashboard/dataset"
	"github.com/thbteam/patient-dashboard/pointer"
	"github.com/thbteam/patient-dashboard/summary"
)

var summaryParams = &datasetParams{}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize a patients workbook",
	Long:  "The summary command prints the patient overview and the most common diagnoses and medications of a workbook",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(printSummary) },
}

func init() {
	summaryParams.addFlags(summaryCmd)
	rootCmd.AddCommand(summaryCmd)
}

func printSummary(layout dataset.Layout, summaries summary.Service, logger *zap.SugaredLogger) error {
	ds, criteria, err := summaryParams.load(context.TODO(), layout, logger)
	if err != nil {
		return err
	}
	analysis := summaries.Analyze(ds, criteria)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Patient Population Overview")
	for _, card := range analysis.Overview.Cards() {
		fmt.Fprintf(w, "%s\t%s\n", card.Label, card.Value)
	}

	fmt.Fprintln(w, "\nTop Diagnoses by Patient Count")
	for _, d := range analysis.TopDiagnoses {
		fmt.Fprintf(w, "%s\t%d\n", d.Diagnosis, d.Patients)
	}

	fmt.Fprintln(w, "\nTop Medications by Patient Count")
	for _, m := range analysis.TopMedications {
		frequency := pointer.ToValue(m.MostCommonFrequency, summary.NotAvailable)
		fmt.Fprintf(w, "%s\t%d\t%s\n", m.Medication, m.Patients, frequency)
	}

	fmt.Fprintln(w, "\nAverage Test Results")
	for _, a := range analysis.TestAverages {
		fmt.Fprintf(w, "%s\t%.2f\n", a.Test, a.Average)
	}

	return w.Flush()
}
