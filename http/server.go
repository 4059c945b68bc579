// Package http serves generated pages, their JSON bundles and the upload
// endpoint over HTTP.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/seogen"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// MaxUploadSize bounds the size of an uploaded table.
const MaxUploadSize = 32 << 20

// ShutdownTimeout bounds how long in-flight requests may finish after the
// serving context is canceled.
const ShutdownTimeout = 10 * time.Second

// Server routes requests to the page resolver and ingester.
type Server struct {
	Pages    seogen.PageResolver
	Index    seogen.IndexPublisher
	Ingester seogen.Ingester

	// Tables supplies the sitemap lastmod date. Optional.
	Tables seogen.TableService

	// Uploads limits how often one client may upload. Optional.
	Uploads *ClientLimiter

	// UploadLimit bounds the request body of an upload in bytes.
	UploadLimit int64

	BaseURL string
	Logger  *slog.Logger

	router chi.Router
}

// NewServer returns a server with its routes mounted.
func NewServer(pages seogen.PageResolver, index seogen.IndexPublisher, ingester seogen.Ingester, baseURL string, logger *slog.Logger) *Server {
	s := &Server{
		Pages:       pages,
		Index:       index,
		Ingester:    ingester,
		UploadLimit: MaxUploadSize,
		BaseURL:     baseURL,
		Logger:      logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleHome)
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Route("/api", func(r chi.Router) {
		r.With(s.limitUploads).HandleFunc("/upload", s.handleUpload)
		r.Get("/pages", s.handleListPages)
		r.Get("/pages/{slug}", s.handleGetPage)
		r.Get("/pages/{slug}/schema.json", s.handleGetSchema)
	})
	r.Get("/{slug}", s.handlePage)

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	s.Logger.Info("listening", "addr", ln.Addr().String())
	return s.Serve(ctx, ln)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func(begin time.Time) {
			s.Logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
				"duration", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) limitUploads(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Uploads == nil || r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}
		s.Uploads.Middleware(next).ServeHTTP(w, r)
	})
}

// ErrorStatusCode maps an application error code to an HTTP status.
func ErrorStatusCode(code string) int {
	switch code {
	case seogen.ENOTFOUND:
		return http.StatusNotFound
	case seogen.EMALFORMED, seogen.EINVALID:
		return http.StatusBadRequest
	case seogen.ECONFLICT:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the JSON body of a failed API request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// writeError responds with the error's status and a JSON message.
// Internal details are logged, never returned.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := seogen.ErrorCode(err)
	status := ErrorStatusCode(code)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "path", r.URL.Path, "code", code, "err", err)
	}
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Message: seogen.ErrorMessage(err)})
}
