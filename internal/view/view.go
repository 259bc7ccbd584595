package view

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Date layouts used across the pages
const (
	TableDateLayout   = "Jan 02, 2006 15:04"
	LongDateLayout    = "Monday, January 2, 2006"
	TimeLayout        = "3:04 PM"
	CreatedDateLayout = "January 02, 2006 at 3:04 PM"
)

// Templates parses every page template with the view helpers
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// MustTemplates is Templates for program start-up
func MustTemplates() *template.Template {
	tmpl, err := Templates()
	if err != nil {
		panic(err)
	}
	return tmpl
}

// FuncMap returns the helpers available to templates
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatDate":    FormatDate,
		"formatLong":    formatWith(LongDateLayout),
		"formatTime":    formatWith(TimeLayout),
		"formatCreated": formatWith(CreatedDateLayout),
		"join":          strings.Join,
	}
}

// FormatDate renders t for tables; zero times render empty
func FormatDate(t time.Time) string {
	return formatWith(TableDateLayout)(t)
}

func formatWith(layout string) func(time.Time) string {
	return func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(layout)
	}
}
