// Package web renders the HTML timeline and the event detail panel.
package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
)

var funcMap = template.FuncMap{
	"fmtTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("02.01.2006 15:04")
	},
	"fmtDate": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("02.01.2006")
	},
	"fmtMillis": func(ms int64) string { return fmtMillis(ms) },
	"pct": func(v float64) string {
		return fmt.Sprintf("%.2f%%", v)
	},
	"offset": func(v float64) string {
		return fmt.Sprintf("%.4f", v)
	},
	"rowHeightPx": func() int { return rowHeight },
	"mul":         func(a, b int) int { return a * b },
	"add":         func(a, b int) int { return a + b },
}

// fmtMillis formats a millisecond magnitude as days and hours.
func fmtMillis(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	days := int64(d / (24 * time.Hour))
	hours := int64((d % (24 * time.Hour)) / time.Hour)
	switch {
	case days > 0 && hours > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case days > 0:
		return fmt.Sprintf("%dd", days)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", int64(d/time.Minute))
	}
}

// Renderer implements echo.Renderer over the page templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the page templates.
func NewRenderer() *Renderer {
	t := template.Must(template.New("timeline").Funcs(funcMap).Parse(timelineTemplateStr))
	template.Must(t.New("event").Parse(eventTemplateStr))
	return &Renderer{templates: t}
}

// Render renders the named template.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
