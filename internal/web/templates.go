package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
	"datetime": func(t time.Time) string {
		return t.Format("Jan 2, 2006 15:04")
	},
	"percent": func(p float64) string {
		return fmt.Sprintf("%.1f%%", p)
	},
}

// templates maps page name to its parsed template set (layout + page).
type templates map[string]*template.Template

func parseTemplates() templates {
	pages := []string{
		"upload", "result", "documents", "confirm_delete",
		"compare", "report", "error",
	}
	parsed := make(templates, len(pages))
	for _, page := range pages {
		parsed[page] = template.Must(template.New("layout.gohtml").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.gohtml", "templates/"+page+".gohtml"))
	}
	return parsed
}

func (t templates) render(w http.ResponseWriter, page string, data any) {
	t.renderStatus(w, http.StatusOK, page, data)
}

func (t templates) renderStatus(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := t[page]
	if !ok {
		slog.Error("unknown template", "page", page)
		http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("render template", "page", page, "error", err)
	}
}
