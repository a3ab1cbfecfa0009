package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"goblog/auth"
)

//go:embed templates
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
}

// render executes the named page template inside the base layout and writes
// the result. The page is rendered into a buffer first, so a template error
// produces a clean 500 instead of a half-written response. The current user
// and the CSRF field are added to every context.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["User"] = auth.GetUser(r.Context())
	data["CSRFField"] = csrf.TemplateField(r)

	ts, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS,
		"templates/base.html", "templates/partials.html", "templates/"+name)
	if err != nil {
		s.serverError(w, err)
		return
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		s.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
