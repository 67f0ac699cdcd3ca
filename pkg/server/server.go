// Package server exposes a graph over a read-only HTTP API.
//
// # Routes
//
//	GET /healthz                         liveness
//	GET /graph                           serialized graph
//	GET /graph/inspect                   order, size and options
//	GET /nodes                           node keys in insertion order
//	GET /nodes/{key}                     one serialized node
//	GET /nodes/{key}/degree              every degree variant
//	GET /nodes/{key}/neighbors           neighbor keys, see below
//	GET /nodes/{key}/edges               edge keys, see below
//	GET /edges/{key}                     one serialized edge
//	GET /render.svg                      node-link diagram
//	GET /events                          websocket stream of graph events
//
// The neighbors and edges routes accept type (mixed, directed, undirected)
// and direction (in, out) query parameters, mapping onto [graph.Selector].
//
// Errors are JSON objects {"code": ..., "message": ...}. NOT_FOUND maps to
// 404, the validation codes to 400, USAGE to 409, NETWORK_ERROR to 502 and
// anything else to 500.
//
// /events exists only when the server was built [WithEvents].
//
// Handlers read the graph under a read lock; [Server.Replace] swaps in a new
// graph under the write lock.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphkit/pkg/cache"
	"github.com/matzehuels/graphkit/pkg/graph"
)

// DefaultRenderTTL is how long rendered diagrams stay cached.
const DefaultRenderTTL = time.Hour

// Server serves one graph.
type Server struct {
	mu sync.RWMutex
	g  *graph.Graph

	name       string
	logger     *log.Logger
	cache      cache.Cache
	keyer      cache.Keyer
	renderTTL  time.Duration
	corsOrigin string
	events     EventSource
	started    time.Time

	router chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithCache caches rendered diagrams in c.
func WithCache(c cache.Cache) Option { return func(s *Server) { s.cache = c } }

// WithKeyer overrides how cache keys are built.
func WithKeyer(k cache.Keyer) Option { return func(s *Server) { s.keyer = k } }

// WithRenderTTL sets the lifetime of cached diagrams.
func WithRenderTTL(d time.Duration) Option { return func(s *Server) { s.renderTTL = d } }

// WithCORSOrigin enables CORS for origin ("*" for any).
func WithCORSOrigin(origin string) Option { return func(s *Server) { s.corsOrigin = origin } }

// WithName sets the graph name reported by /graph/inspect. It defaults to
// the graph's "name" attribute.
func WithName(name string) Option { return func(s *Server) { s.name = name } }

// New returns a server for g.
func New(g *graph.Graph, opts ...Option) *Server {
	s := &Server{
		g:         g,
		logger:    log.Default(),
		cache:     cache.NewNullCache(),
		keyer:     cache.NewDefaultKeyer(),
		renderTTL: DefaultRenderTTL,
		started:   time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = cache.Instrumented(s.cache, "render")
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.corsOrigin != "" {
		r.Use(cors(s.corsOrigin))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/graph", func(r chi.Router) {
		r.Get("/", s.handleGraph)
		r.Get("/inspect", s.handleInspect)
	})
	r.Route("/nodes", func(r chi.Router) {
		r.Get("/", s.handleNodes)
		r.Route("/{key}", func(r chi.Router) {
			r.Get("/", s.handleNode)
			r.Get("/degree", s.handleDegree)
			r.Get("/neighbors", s.handleNeighbors)
			r.Get("/edges", s.handleNodeEdges)
		})
	})
	r.Get("/edges/{key}", s.handleEdge)
	r.Get("/render.svg", s.handleRender)
	if s.events != nil {
		r.Get("/events", s.handleEvents)
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Replace swaps the served graph.
func (s *Server) Replace(g *graph.Graph) {
	s.mu.Lock()
	s.g = g
	s.mu.Unlock()
}

// Graph returns the served graph. Callers that mutate it must hold no
// reference across a [Server.Replace].
func (s *Server) Graph() *graph.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.g
}

// read runs fn under the read lock.
func (s *Server) read(fn func(g *graph.Graph)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.g)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
