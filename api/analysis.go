package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thbteam/patient-dashboard/filters"
	"github.com/thbteam/patient-dashboard/summary"
)

const (
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportDateFormat = "2006-01-02"
)

// (GET /v1/options)
func (h *Handler) GetOptions(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, filters.NewOptions(session.Dataset))
}

// (GET /v1/analysis)
func (h *Handler) GetAnalysis(c echo.Context) error {
	analysis, err := h.analyze(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, analysis)
}

// (GET /v1/export)
func (h *Handler) GetExport(c echo.Context) error {
	analysis, err := h.analyze(c)
	if err != nil {
		return err
	}

	report, err := h.summary.Report(analysis)
	if err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	if err := report.Write(buf); err != nil {
		return err
	}

	filename := fmt.Sprintf("patient-analysis-%s.xlsx", time.Now().Format(exportDateFormat))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) analyze(c echo.Context) (*summary.Analysis, error) {
	session, err := h.session(c)
	if err != nil {
		return nil, err
	}

	criteria, err := filters.DecodeCriteria(criteriaValues(c), filters.NewOptions(session.Dataset))
	if err != nil {
		return nil, err
	}

	return h.summary.Analyze(session.Dataset, criteria), nil
}
