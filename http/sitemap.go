package http

import (
	"bytes"
	"net/http"
	"time"

	"github.com/fwojciec/seogen/etree"
)

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	var lastmod time.Time
	if s.Tables != nil {
		if table, err := s.Tables.FindLatestTable(r.Context()); err == nil {
			lastmod = table.ImportedAt
		}
	}

	var buf bytes.Buffer
	if err := etree.EncodeSitemap(&buf, s.BaseURL, s.Index.Index().Slugs(), lastmod); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(buf.Bytes())
}
