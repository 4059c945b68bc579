package http

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/fwojciec/seogen"
	"github.com/go-chi/chi/v5"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.SEO.TitleTag}}</title>
<meta name="description" content="{{.SEO.MetaDescription}}">
<meta name="keywords" content="{{.Keywords}}">
<link rel="canonical" href="{{.URL}}">
<script type="application/ld+json">{{.Schema}}</script>
</head>
<body>
<main>
<article>
<h1>{{.Content.Title}}</h1>
<p class="description">{{.Content.Description}}</p>
<div class="content">
{{- range .Paragraphs}}
<p>{{.}}</p>
{{- end}}
</div>
{{- with .Content.Location}}
<section class="location">
<h2>Location Information</h2>
<p>{{.}}</p>
</section>
{{- end}}
</article>
</main>
</body>
</html>
`))

var messageTemplate = template.Must(template.New("message").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<main>
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
</main>
</body>
</html>
`))

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Upload CSV</title>
</head>
<body>
<main>
<h1>Upload CSV</h1>
<form method="post" action="/api/upload" enctype="multipart/form-data">
<input type="file" name="file" accept=".csv">
<button type="submit">Upload</button>
</form>
{{- if .}}
<ul class="pages">
{{- range .}}
<li><a href="/{{.}}">{{.}}</a></li>
{{- end}}
</ul>
{{- end}}
</main>
</body>
</html>
`))

// pageView is the template data for a generated page.
type pageView struct {
	*seogen.PageBundle
	Keywords   string
	Schema     template.JS
	Paragraphs []string
}

func newPageView(page *seogen.PageBundle) (*pageView, error) {
	// json.Marshal escapes <, > and &, so the document cannot close the
	// surrounding script element.
	schema, err := json.Marshal(page.StructuredData)
	if err != nil {
		return nil, err
	}
	return &pageView{
		PageBundle: page,
		Keywords:   strings.Join(page.SEO.Keywords, ", "),
		Schema:     template.JS(schema),
		Paragraphs: page.Content.Paragraphs(),
	}, nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := s.Pages.ResolvePage(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	view, err := newPageView(page)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.renderHTML(w, r, http.StatusOK, pageTemplate, view)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderHTML(w, r, http.StatusOK, homeTemplate, s.Index.Index().Slugs())
}

// renderError renders a failed page request as HTML.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := seogen.ErrorCode(err)
	status := ErrorStatusCode(code)
	if status == http.StatusInternalServerError {
		s.Logger.Error("page render failed", "path", r.URL.Path, "code", code, "err", err)
	}
	s.renderHTML(w, r, status, messageTemplate, struct{ Title, Message string }{
		Title:   http.StatusText(status),
		Message: seogen.ErrorMessage(err),
	})
}

// renderHTML executes tmpl into a buffer so a template failure can still
// produce a clean error response.
func (s *Server) renderHTML(w http.ResponseWriter, r *http.Request, status int, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.Logger.Error("template failed", "path", r.URL.Path, "template", tmpl.Name(), "err", err)
		http.Error(w, "Internal error.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
