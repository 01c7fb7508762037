package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"strbrowser/internal/views"

	"github.com/gin-gonic/gin"
)

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	// Render to a buffer first so a template error never leaves a half-written response
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("[Render] Template error for %s: %v (data %T)", templateName, err, data)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	if strings.HasSuffix(templateName, ".html") && !strings.Contains(buf.String(), "</html>") {
		s.logger.Warn("[Render] Template %s appears truncated - missing </html> tag", templateName)
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Error("[Render] Error writing template response: %v", err)
	}
}

func newFuncMap() template.FuncMap {
	return template.FuncMap{
		"add64": func(a, b float64) float64 { return a + b },
		"mul":   func(a, b float64) float64 { return a * b },
		"div": func(a, b float64) float64 {
			if b == 0 {
				return 0
			}
			return a / b
		},
		// px formats an SVG coordinate
		"px": func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		},
		"num": num,
		"filterValue": func(filters map[string]string, col string) string {
			return filters[col]
		},
		"isNumeric": func(col string) bool {
			return col == views.GridCount || col == views.GridLength
		},
		"gridColumns": func() []string { return views.GridColumns },
		"exportHref":  exportHref,
	}
}

// exportHref links a download of the grid with its current filters and sort
func exportHref(format string, q views.GridQuery) template.URL {
	v := url.Values{}
	for col, f := range q.Filters {
		v.Set(col, f)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if len(v) == 0 {
		return template.URL("/export." + format)
	}
	return template.URL("/export." + format + "?" + v.Encode())
}
