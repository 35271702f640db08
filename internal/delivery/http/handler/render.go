package handler

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Render writes a full HTML page. Pages are named templates sharing the
// admin layout partials.
func Render(w http.ResponseWriter, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, page, data); err != nil {
		log.Printf("Error rendering %s: %v", page, err)
	}
}

// Root sends the bare domain into the admin area; the guard bounces
// unauthenticated visitors on to the login page from there.
func Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
}
