package summary

import (
	"time"

	"github.com/tealeg/xlsx/v3"
	"go.uber.org/zap"

	"github.com/thbteam/patient-dashboard/config"
	"github.com/thbteam/patient-dashboard/dataset"
	"github.com/thbteam/patient-dashboard/filters"
)

type Service interface {
	Analyze(ds *dataset.Dataset, criteria filters.Criteria) *Analysis
	Report(analysis *Analysis) (*xlsx.File, error)
}

type service struct {
	referenceYear func() int
	logger        *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(cfg *config.Config, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		referenceYear: cfg.GetReferenceYear,
		logger:        logger,
	}, nil
}

func (s *service) Analyze(ds *dataset.Dataset, criteria filters.Criteria) *Analysis {
	analysis := Analyze(ds, criteria, s.referenceYear())
	s.logger.Debugw("analyzed patient dataset",
		"criteria", criteria,
		"patients", analysis.Overview.Total,
		"medications", len(analysis.Medications),
		"diagnoses", len(analysis.Diagnoses),
	)
	return analysis
}

func (s *service) Report(analysis *Analysis) (*xlsx.File, error) {
	return NewReport(analysis, time.Now()).Generate()
}
