package command

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thbteam/patient-dashboard/dataset"
	"github.com/thbteam/patient-dashboard/filters"
)

var optionsParams = &datasetParams{}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the filter options of a patients workbook",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(printOptions) },
}

func init() {
	optionsCmd.Flags().StringVarP(&optionsParams.Input, "input", "i", "", "Path or http(s) link of the patients workbook")
	_ = optionsCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(optionsCmd)
}

func printOptions(layout dataset.Layout, logger *zap.SugaredLogger) error {
	ds, _, err := optionsParams.load(context.TODO(), layout, logger)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(filters.NewOptions(ds))
}
