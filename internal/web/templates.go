package web

import (
	"embed"
	"fmt"
	"html/template"
)

// templateFS is embedded so the binary serves its UI with no on-disk assets.
//
//go:embed templates/*.tmpl
var templateFS embed.FS

// funcMap holds the formatting helpers the templates use.
var funcMap = template.FuncMap{
	// pct renders a [0,1] fraction as a percentage.
	"pct": func(f float64) string {
		return fmt.Sprintf("%.1f%%", f*100)
	},
	"rating": func(f float64) string {
		return fmt.Sprintf("%.2f / 5.0", f)
	},
	"add1": func(i int) int {
		return i + 1
	},
}

// Templates parses the embedded template set.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl")
}
