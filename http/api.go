package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/seogen"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// UploadResponse is the JSON body of a successful upload.
type UploadResponse struct {
	Message    string             `json:"message"`
	Table      *seogen.Table      `json:"table"`
	Rows       int                `json:"rows"`
	Pages      int                `json:"pages"`
	Collisions []seogen.Collision `json:"collisions"`
	Unchanged  bool               `json:"unchanged"`
}

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	slugs := s.Index.Index().Slugs()
	if slugs == nil {
		slugs = []string{}
	}
	render.JSON(w, r, slugs)
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	page, err := s.Pages.ResolvePage(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeCacheable(w, r, "application/json", page)
}

func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	page, err := s.Pages.ResolvePage(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeCacheable(w, r, "application/ld+json", page.StructuredData)
}

// writeCacheable writes v as JSON tagged with a content hash ETag, and
// answers a matching If-None-Match with 304.
func (s *Server) writeCacheable(w http.ResponseWriter, r *http.Request, contentType string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	w.Header().Set("ETag", etag)
	if etagMatch(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentType+"; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// etagMatch reports whether an If-None-Match header lists etag.
func etagMatch(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == etag || candidate == "*" {
			return true
		}
	}
	return false
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, ErrorResponse{Message: "Method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.UploadLimit)

	name := r.URL.Query().Get("name")
	body := r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if isTooLarge(err) {
			writeTooLarge(w, r)
			return
		}
		if err != nil {
			s.writeError(w, r, seogen.Errorf(seogen.EINVALID, "file field required"))
			return
		}
		defer file.Close()
		body = file
		if name == "" {
			name = header.Filename
		}
	}
	if name == "" {
		name = "upload.csv"
	}

	result, err := s.Ingester.Ingest(r.Context(), name, body)
	if isTooLarge(err) {
		writeTooLarge(w, r)
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	collisions := result.Collisions
	if collisions == nil {
		collisions = []seogen.Collision{}
	}
	render.JSON(w, r, UploadResponse{
		Message:    "File uploaded and processed successfully!",
		Table:      result.Table,
		Rows:       result.Table.Rows,
		Pages:      result.Pages,
		Collisions: collisions,
		Unchanged:  result.Unchanged,
	})
}

// isTooLarge reports whether err came from reading past the upload limit.
func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}

func writeTooLarge(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusRequestEntityTooLarge)
	render.JSON(w, r, ErrorResponse{Message: "File too large"})
}
