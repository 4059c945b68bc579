// Package etree encodes and parses XML sitemaps.
package etree

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/seogen"
)

// Namespace is the sitemaps.org schema namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq matches the daily regeneration of cached pages.
const ChangeFreq = "daily"

// EncodeSitemap writes a urlset listing every slug under baseURL in order.
// A zero lastmod omits the lastmod element.
func EncodeSitemap(w io.Writer, baseURL string, slugs []string, lastmod time.Time) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", Namespace)

	for _, slug := range slugs {
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(seogen.PageURL(baseURL, slug))
		if !lastmod.IsZero() {
			u.CreateElement("lastmod").SetText(lastmod.UTC().Format("2006-01-02"))
		}
		u.CreateElement("changefreq").SetText(ChangeFreq)
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	return nil
}

// ParseSitemap returns the loc of every url in a urlset document.
// Returns EMALFORMED if the document is not a urlset.
func ParseSitemap(r io.Reader) ([]string, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, seogen.Errorf(seogen.EMALFORMED, "parsing sitemap XML: %s", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "urlset" {
		return nil, seogen.Errorf(seogen.EMALFORMED, "sitemap root must be urlset")
	}

	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.Text()); text != "" {
			urls = append(urls, text)
		}
	}
	return urls, nil
}
