package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine renders the built-in report templates to HTML using
// Go's html/template with Spanish-aware formatting helpers.
type TemplateEngine struct {
	templates *template.Template
}

// NewTemplateEngine parses the built-in report templates
func NewTemplateEngine() (*TemplateEngine, error) {
	root := template.New("reports").Funcs(reportFuncs())
	for name, body := range reportTemplates {
		if _, err := root.New(name).Parse(body); err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
		}
	}
	return &TemplateEngine{templates: root}, nil
}

// Render executes the named template with the given payload
func (e *TemplateEngine) Render(name string, data any) (string, error) {
	tmpl := e.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("unknown report template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}

func reportFuncs() template.FuncMap {
	titler := cases.Title(language.Spanish)
	return template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return "$" + d.StringFixed(2)
		},
		"percent": func(d decimal.Decimal) string {
			return d.StringFixed(2) + "%"
		},
		"date": func(d valueobject.Date) string {
			t, err := d.Time()
			if err != nil {
				return d.String()
			}
			return t.Format("02/01/2006")
		},
		"datetime": func(t time.Time) string {
			return t.Format("02/01/2006 15:04")
		},
		"title": func(s string) string {
			return titler.String(s)
		},
	}
}
