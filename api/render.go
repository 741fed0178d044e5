package api

import (
	"embed"
	"html/template"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/thbteam/patient-dashboard/pointer"
)

const (
	loginTemplate     = "login.html"
	dashboardTemplate = "dashboard.html"
)

//go:embed templates/*.html
var templates embed.FS

type TemplateRenderer struct {
	templates *template.Template
}

var _ echo.Renderer = &TemplateRenderer{}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"formatFloat":    formatFloat,
		"optionalString": pointer.ToString,
		"optionalFloat":  optionalFloat,
		"add":            func(a, b int) int { return a + b },
	}).ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &TemplateRenderer{templates: t}, nil
}

func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
