// Package sandbox runs an in-process stand-in for the Docfold service. It
// mirrors the full endpoint surface with realistic routing, auth and wire
// shapes, backed by a local bbolt file, so applications and tests can run
// against it without network access or an API key for the hosted service.
//
// Rendering is canned: PDF outputs are minimal generated documents, barcodes
// are real, and image outputs are placeholder encodes. The sandbox is a test
// double, not a rendering engine.
package sandbox

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config configures a sandbox server.
type Config struct {
	// APIKey is the key clients must present verbatim in the Authorization
	// header. Empty accepts any request.
	APIKey string
	// DataPath is the bbolt database file. Empty uses a fresh temporary
	// file.
	DataPath string
	// ListenAddr is the address for ListenAndServe, e.g. "127.0.0.1:8745".
	ListenAddr string
	// Version is the API version path segment. Empty means "v1".
	Version string
	// Logger receives request logs. Nil discards them.
	Logger *slog.Logger
}

// Server is an in-process Docfold service fake.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	store      *store
	cfg        Config
	logger     *slog.Logger
}

// New creates a sandbox server and opens its database.
func New(cfg Config) (*Server, error) {
	if cfg.Version == "" {
		cfg.Version = "v1"
	}
	if cfg.DataPath == "" {
		f, err := os.CreateTemp("", "docfold-sandbox-*.db")
		if err != nil {
			return nil, err
		}
		cfg.DataPath = f.Name()
		f.Close()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	st, err := newStore(cfg.DataPath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router: chi.NewRouter(),
		store:  st,
		cfg:    cfg,
		logger: logger,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Recoverer)

	s.router.Route("/"+s.cfg.Version, func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/token", s.handleToken)

		r.Post("/render/barcode", s.handleBarcode)
		r.Post("/render/img", s.handleRenderImage)
		r.Post("/render/{format}", s.handleRenderContent)
		r.Post("/render/{format}/batch", s.handleRenderContentBatch)
		r.Post("/render/{format}/{id}", s.handleRender)
		r.Post("/render/{format}/batch/{id}", s.handleRenderBatch)
		r.Get("/img/{id}", s.handleGetImage)

		r.Post("/pdf/url", s.handleRenderURL)
		r.Post("/pdf/split", s.handleSplit)
		r.Post("/pdf/split-zip", s.handleSplitZip)
		r.Post("/pdf/merge", s.handleMerge)
		r.Post("/pdf/metadata", s.handleMetadata)
		r.Post("/pdf/compress", s.handleCompress)
		r.Post("/pdf/encrypt", s.handleEncrypt)
		r.Post("/pdf/image/{format}", s.handlePDFToImage)

		r.Get("/template", s.handleListTemplates)
		r.Post("/template", s.handleCreateTemplate)
		r.Get("/template/{id}", s.handleGetTemplate)
		r.Delete("/template/{id}", s.handleDeleteTemplate)
		r.Get("/template/file/{id}", s.handleGetTemplateFile)
		r.Post("/template/css/{id}", s.handleAddStyle)
		r.Delete("/template/css/{id}", s.handleDeleteStyle)
		r.Get("/template/css/file/{id}", s.handleGetStyleFile)
		r.Post("/template/img/{id}", s.handleAddImage)
		r.Delete("/template/img/{id}", s.handleDeleteImage)
		r.Get("/template/img/file/{id}", s.handleGetImageFile)
	})
}

// Handler returns the server's HTTP handler, for mounting on an httptest
// server or an existing mux.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server on the configured address.
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting sandbox server", "addr", s.cfg.ListenAddr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down sandbox server")
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Close closes the underlying database.
func (s *Server) Close() error {
	return s.store.Close()
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"bytes", ww.BytesWritten(),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// authMiddleware checks the API key. Docfold clients send the key in the
// Authorization header verbatim, without a scheme prefix.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.APIKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Authorization") != s.cfg.APIKey {
			s.logger.Warn("unauthorized request",
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
			)
			s.sendError(w, http.StatusUnauthorized, "invalid api key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
