package etree_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/seogen"
	"github.com/fwojciec/seogen/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSitemap(t *testing.T) {
	t.Parallel()

	t.Run("lists page urls in order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		lastmod := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

		err := etree.EncodeSitemap(&buf, "https://yourdomain.com/", []string{"ocean-view-suite", "python-tips"}, lastmod)

		require.NoError(t, err)
		out := buf.String()
		assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
		assert.Contains(t, out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
		assert.Contains(t, out, "<lastmod>2026-03-01</lastmod>")
		assert.Contains(t, out, "<changefreq>daily</changefreq>")

		urls, err := etree.ParseSitemap(&buf)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://yourdomain.com/ocean-view-suite",
			"https://yourdomain.com/python-tips",
		}, urls)
	})

	t.Run("omits lastmod when unknown", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, etree.EncodeSitemap(&buf, "https://yourdomain.com", []string{"a"}, time.Time{}))

		assert.NotContains(t, buf.String(), "lastmod")
	})

	t.Run("writes empty urlset without pages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, etree.EncodeSitemap(&buf, "https://yourdomain.com", nil, time.Time{}))

		urls, err := etree.ParseSitemap(&buf)
		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("escapes special characters", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, etree.EncodeSitemap(&buf, "https://yourdomain.com/?a=1&b=2", []string{"x"}, time.Time{}))

		assert.Contains(t, buf.String(), "&amp;")
	})
}

func TestParseSitemap(t *testing.T) {
	t.Parallel()

	t.Run("skips urls without loc", func(t *testing.T) {
		t.Parallel()

		input := `<urlset><url><loc> https://a.com/x </loc></url><url></url></urlset>`

		urls, err := etree.ParseSitemap(strings.NewReader(input))

		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.com/x"}, urls)
	})

	t.Run("rejects other roots", func(t *testing.T) {
		t.Parallel()

		_, err := etree.ParseSitemap(strings.NewReader(`<sitemapindex></sitemapindex>`))

		assert.Equal(t, seogen.EMALFORMED, seogen.ErrorCode(err))
	})

	t.Run("rejects invalid xml", func(t *testing.T) {
		t.Parallel()

		_, err := etree.ParseSitemap(strings.NewReader(`<urlset><<`))

		assert.Equal(t, seogen.EMALFORMED, seogen.ErrorCode(err))
	})
}
