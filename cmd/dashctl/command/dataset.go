package command

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thbteam/patient-dashboard/dataset"
	"github.com/thbteam/patient-dashboard/filters"
	"github.com/thbteam/patient-dashboard/source"
)

const downloadTimeout = time.Minute

// datasetParams select the workbook and the filters applied to it
type datasetParams struct {
	Input string

	Gender       string
	Diagnosis    string
	Medication   string
	BirthYearMin string
	BirthYearMax string
	VisitYearMin string
	VisitYearMax string
}

func (p *datasetParams) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.Input, "input", "i", "", "Path or http(s) link of the patients workbook")
	cmd.Flags().StringVar(&p.Gender, "gender", "", "Gender filter (All, Male or Female)")
	cmd.Flags().StringVar(&p.Diagnosis, "diagnosis", "", "Diagnosis filter, Unknown selects visits with a blank diagnosis")
	cmd.Flags().StringVar(&p.Medication, "medication", "", "Medication filter")
	cmd.Flags().StringVar(&p.BirthYearMin, "birth-year-min", "", "First year of birth")
	cmd.Flags().StringVar(&p.BirthYearMax, "birth-year-max", "", "Last year of birth")
	cmd.Flags().StringVar(&p.VisitYearMin, "visit-year-min", "", "First visit year")
	cmd.Flags().StringVar(&p.VisitYearMax, "visit-year-max", "", "Last visit year")
	_ = cmd.MarkFlagRequired("input")
}

func (p *datasetParams) values() map[string]interface{} {
	return map[string]interface{}{
		"gender":       p.Gender,
		"diagnosis":    p.Diagnosis,
		"medication":   p.Medication,
		"birthYearMin": p.BirthYearMin,
		"birthYearMax": p.BirthYearMax,
		"visitYearMin": p.VisitYearMin,
		"visitYearMax": p.VisitYearMax,
	}
}

// load reads and cleans the workbook and decodes the filters against its options
func (p *datasetParams) load(ctx context.Context, layout dataset.Layout, logger *zap.SugaredLogger) (*dataset.Dataset, filters.Criteria, error) {
	data, err := readInput(ctx, p.Input, logger)
	if err != nil {
		return nil, filters.Criteria{}, err
	}

	raw, err := dataset.ReadWorkbook(data)
	if err != nil {
		return nil, filters.Criteria{}, err
	}
	ds, err := dataset.Clean(raw, layout)
	if err != nil {
		return nil, filters.Criteria{}, err
	}

	criteria, err := filters.DecodeCriteria(p.values(), filters.NewOptions(ds))
	if err != nil {
		return nil, filters.Criteria{}, err
	}
	return ds, criteria, nil
}

func readInput(ctx context.Context, input string, logger *zap.SugaredLogger) ([]byte, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		fetcher := source.NewFetcher(&http.Client{Timeout: downloadTimeout}, logger)
		return fetcher.Fetch(ctx, input)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("unable to read workbook: %w", err)
	}
	return data, nil
}
