package handler

import (
	"embed"
	"html/template"
	"strconv"
)

//go:embed templates/*.html
var templatesFS embed.FS

// LoadTemplates parses the embedded dashboard templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"num": formatNumber,
	}).ParseFS(templatesFS, "templates/*.html")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
