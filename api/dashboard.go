package api

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	errs "github.com/thbteam/patient-dashboard/errors"
	"github.com/thbteam/patient-dashboard/filters"
	"github.com/thbteam/patient-dashboard/source"
	"github.com/thbteam/patient-dashboard/summary"
)

const showParam = "show"

type DashboardPage struct {
	Error      string
	LoadedTime time.Time
	Options    filters.Options
	Selection  Selection
	Show       bool

	// Query repeats the filters of the page in links, it is already escaped
	Query template.URL

	Analysis         *summary.Analysis
	Cards            []summary.Card
	MedicationsChart *BarChart
	DiagnosesChart   *BarChart
}

// Selection is the state of the sidebar. Missing criteria select everything.
type Selection struct {
	Gender     string
	Diagnosis  string
	Medication string
	BirthYears filters.Range
	VisitYears filters.Range
}

func NewSelection(criteria filters.Criteria, options filters.Options) Selection {
	selection := Selection{
		Gender:     orAll(criteria.Gender),
		Diagnosis:  orAll(criteria.Diagnosis),
		Medication: orAll(criteria.Medication),
		BirthYears: options.BirthYears,
		VisitYears: options.VisitYears,
	}
	if criteria.BirthYears != nil {
		selection.BirthYears = *criteria.BirthYears
	}
	if criteria.VisitYears != nil {
		selection.VisitYears = *criteria.VisitYears
	}
	return selection
}

func orAll(v string) string {
	if v == "" {
		return filters.All
	}
	return v
}

func (h *Handler) GetDashboard(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return h.renderLoadError(c, err)
	}

	options := filters.NewOptions(session.Dataset)
	page := DashboardPage{
		LoadedTime: session.LoadedTime,
		Options:    options,
		Selection:  NewSelection(filters.Criteria{}, options),
	}

	criteria, err := filters.DecodeCriteria(criteriaValues(c), options)
	if err != nil {
		page.Error = err.Error()
		return c.Render(errs.StatusCode(err), dashboardTemplate, page)
	}
	page.Selection = NewSelection(criteria, options)

	page.Query = template.URL(c.QueryString())
	page.Show = c.QueryParam(showParam) == "1"
	if page.Show {
		analysis := h.summary.Analyze(session.Dataset, criteria)
		page.Analysis = analysis
		page.Cards = analysis.Overview.Cards()
		page.MedicationsChart = MedicationsChart(analysis.TopMedications)
		page.DiagnosesChart = DiagnosesChart(analysis.TopDiagnoses)
	}

	return c.Render(http.StatusOK, dashboardTemplate, page)
}

// renderLoadError shows why the session dataset is unavailable instead of the dashboard.
func (h *Handler) renderLoadError(c echo.Context, err error) error {
	if errors.Is(err, errs.Unauthorized) {
		return err
	}

	message := err.Error()
	var downloadErr *source.DownloadError
	if errors.As(err, &downloadErr) {
		message = fmt.Sprintf("Failed to download file from %s: %s", downloadErr.Url, downloadErr.Err)
	}
	h.logger.Errorw("unable to load patient dataset", "error", err)

	return c.Render(errs.StatusCode(err), dashboardTemplate, DashboardPage{Error: message})
}

func (h *Handler) GetLogo(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return err
	}
	if len(session.Assets.Logo) == 0 {
		return errs.NotFound
	}

	return c.Blob(http.StatusOK, session.Assets.LogoContentType, session.Assets.Logo)
}
