package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thbteam/patient-dashboard/dataset"
	"github.com/thbteam/patient-dashboard/summary"
)

var exportParams = struct {
	*datasetParams
	Output string
}{
	datasetParams: &datasetParams{},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the analysis of a patients workbook",
	Long:  "The export command writes the filtered analysis of a workbook as an xlsx report",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(exportReport) },
}

func init() {
	exportParams.addFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportParams.Output, "output", "o", "patient-analysis.xlsx", "Path of the report")
	rootCmd.AddCommand(exportCmd)
}

func exportReport(layout dataset.Layout, summaries summary.Service, logger *zap.SugaredLogger) error {
	ds, criteria, err := exportParams.load(context.TODO(), layout, logger)
	if err != nil {
		return err
	}

	report, err := summaries.Report(summaries.Analyze(ds, criteria))
	if err != nil {
		return err
	}
	if err := report.Save(exportParams.Output); err != nil {
		return fmt.Errorf("unable to save report: %w", err)
	}

	fmt.Printf("Saved report to %s\n", exportParams.Output)
	return nil
}
