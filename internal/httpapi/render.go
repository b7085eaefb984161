package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"usermgmt/portal-service/internal/models"
	"usermgmt/portal-service/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("pages").Funcs(template.FuncMap{
	"date": formatDate,
}).ParseFS(templateFS, "templates/*.html"))

type layout struct {
	Title           string
	CurrentPage     string
	IsAuthenticated bool
	User            *models.User
	RefreshTo       string
	RefreshAfter    int
}

type pageData struct {
	Layout layout
	Page   interface{}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "open"
	}
	return t.Format("2006-01-02")
}

// render executes a page template into a buffer first so a template error
// never leaves a half-written 200 behind.
func render(w http.ResponseWriter, r *http.Request, status int, name string, l layout, page interface{}) {
	if sc, ok := session.FromContext(r.Context()); ok {
		sc.Resolve(r.Context())
		if user, ok := sc.User(); ok {
			l.IsAuthenticated = true
			l.User = user
		}
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, pageData{Layout: l, Page: page}); err != nil {
		log.Printf("render error template=%s err=%v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorPage struct {
	Message string
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render(w, r, status, "error", layout{Title: http.StatusText(status)}, errorPage{Message: message})
}

func renderNotFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, "not_found", layout{Title: "Not found"}, nil)
}
