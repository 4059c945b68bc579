package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/seogen"
	seohttp "github.com/fwojciec/seogen/http"
	"github.com/fwojciec/seogen/mock"
	"github.com/stretchr/testify/assert"
)

func TestClientLimiter_Allow(t *testing.T) {
	t.Parallel()

	t.Run("allows burst then rejects", func(t *testing.T) {
		t.Parallel()

		l := seohttp.NewClientLimiter(time.Hour, 2)

		assert.True(t, l.Allow("10.0.0.1"))
		assert.True(t, l.Allow("10.0.0.1"))
		assert.False(t, l.Allow("10.0.0.1"))
	})

	t.Run("tracks clients separately", func(t *testing.T) {
		t.Parallel()

		l := seohttp.NewClientLimiter(time.Hour, 1)

		assert.True(t, l.Allow("10.0.0.1"))
		assert.True(t, l.Allow("10.0.0.2"))
		assert.False(t, l.Allow("10.0.0.1"))
	})

	t.Run("drops clients whose bucket has refilled", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		l := seohttp.NewClientLimiter(time.Minute, 2)
		l.Now = func() time.Time { return now }

		assert.True(t, l.Allow("10.0.0.1"))
		assert.True(t, l.Allow("10.0.0.1"))

		// One token back: the client is still limited and must be kept.
		now = now.Add(time.Minute)
		assert.True(t, l.Allow("10.0.0.2"))
		assert.Equal(t, 2, l.Len())
		assert.True(t, l.Allow("10.0.0.1"))
		assert.False(t, l.Allow("10.0.0.1"))

		// Both buckets full again.
		now = now.Add(3 * time.Minute)
		assert.True(t, l.Allow("10.0.0.3"))
		assert.Equal(t, 1, l.Len())
	})
}

func TestServer_UploadRateLimit(t *testing.T) {
	t.Parallel()

	srv := newServer(t, &mock.Ingester{
		IngestFn: func(_ context.Context, name string, _ io.Reader) (*seogen.IngestResult, error) {
			return &seogen.IngestResult{Table: &seogen.Table{Name: name}}, nil
		},
	})
	srv.Uploads = seohttp.NewClientLimiter(time.Minute, 1)

	upload := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("title,description,content\n"))
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, upload().Code)
	rec := upload()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// Reads of the upload route are never limited.
	assert.Equal(t, http.StatusMethodNotAllowed, get(t, srv, "/api/upload").Code)
}
