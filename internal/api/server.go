// Package api exposes resolved AUR metadata over a small JSON REST API.
//
// The server fronts a metadata client: package records, dependency sets,
// update summaries and search results are served read-only. It is meant
// for deployments where several tools on a network share one resolver
// (and one cache) instead of each hitting the AUR directly.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/aurtools/aurinfo/pkg/aur"
	"github.com/aurtools/aurinfo/pkg/srcinfo"
)

// Metadata is the resolver surface the server consumes. *aur.Client
// satisfies it.
type Metadata interface {
	SrcInfo(ctx context.Context, name string) srcinfo.Record
	RequiredDeps(ctx context.Context, name string) ([]string, error)
	Search(ctx context.Context, term string) ([]aur.Package, error)
	UpdateData(ctx context.Context, name, latestVersion string, rec srcinfo.Record) aur.UpdateData
	Index(ctx context.Context) []string
	Arch() srcinfo.Arch
	ClearCache(ctx context.Context) error
}

// Server is the HTTP API server.
type Server struct {
	meta   Metadata
	logger *log.Logger
	router chi.Router
}

// NewServer creates a Server around the given metadata resolver.
func NewServer(meta Metadata, logger *log.Logger) *Server {
	s := &Server{meta: meta, logger: logger}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/packages/{name}", s.handlePackage)
		r.Get("/packages/{name}/depends", s.handleDepends)
		r.Get("/packages/{name}/update-data", s.handleUpdateData)
		r.Get("/search", s.handleSearch)
		r.Get("/index", s.handleIndex)
		r.Delete("/cache", s.handleCacheClear)
	})
	return r
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("api server listening", "addr", addr)
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
