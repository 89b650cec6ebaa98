// Package server exposes the datasource registry over HTTP.
//
// Routes (all under /api/v1):
//
//	GET    /engines                                   list registered engines + connection args
//	GET    /datasources                               list datasources (secrets redacted)
//	POST   /datasources                               register a datasource
//	GET    /datasources/{name}                        one datasource (secrets redacted)
//	DELETE /datasources/{name}                        disconnect and remove
//	GET    /datasources/{name}/status                 check connection
//	POST   /datasources/{name}/query                  run a native query
//	GET    /datasources/{name}/tables                 list tables
//	GET    /datasources/{name}/tables/{table}/columns describe a table
//	GET    /datasources/{name}/buckets                list storage buckets (supabase)
//	GET    /datasources/{name}/buckets/{bucket}/objects  list storage objects
package server

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fedra-io/fedra/internal/errs"
	"github.com/fedra-io/fedra/internal/handler"
)

// Datasource is one registered datasource as held by the server.
type Datasource struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Engine  string          `json:"engine"`
	Params  handler.Params  `json:"parameters"`
	Handler handler.Handler `json:"-"`
}

// Server routes HTTP requests to handlers built from a Registry.
type Server struct {
	log zerolog.Logger
	reg *handler.Registry

	mu      sync.RWMutex
	sources map[string]*Datasource

	router chi.Router
}

// New builds a Server over the given registry.
func New(log zerolog.Logger, reg *handler.Registry) *Server {
	s := &Server{
		log:     log,
		reg:     reg,
		sources: make(map[string]*Datasource),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/engines", s.handleListEngines)

		r.Route("/datasources", func(r chi.Router) {
			r.Get("/", s.handleListDatasources)
			r.Post("/", s.handleCreateDatasource)

			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", s.handleGetDatasource)
				r.Delete("/", s.handleDeleteDatasource)
				r.Get("/status", s.handleStatus)
				r.Post("/query", s.handleQuery)
				r.Get("/tables", s.handleTables)
				r.Get("/tables/{table}/columns", s.handleColumns)
				r.Get("/buckets", s.handleBuckets)
				r.Get("/buckets/{bucket}/objects", s.handleObjects)
			})
		})
	})
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

// Register builds a handler for the datasource and stores it. Used by the
// POST route and by the daemon for boot-time blocks from the config file.
func (s *Server) Register(name, engine string, params handler.Params) (*Datasource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sources[name]; exists {
		return nil, errs.Newf(errs.ErrKindInvalidConfig, "datasource %q already exists", name)
	}

	h, err := s.reg.New(engine, name, params)
	if err != nil {
		return nil, err
	}

	if la, ok := h.(handler.LoggerAware); ok {
		la.SetLogger(s.log)
	}

	ds := &Datasource{
		ID:      uuid.New(),
		Name:    name,
		Engine:  engine,
		Params:  params,
		Handler: h,
	}
	s.sources[name] = ds

	s.log.Info().Str("datasource", name).Str("engine", engine).Msg("datasource registered")
	return ds, nil
}

// Remove disconnects and forgets a datasource.
func (s *Server) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, ok := s.sources[name]
	if !ok {
		return errs.Newf(errs.ErrKindNotFound, "datasource %q not found", name)
	}
	delete(s.sources, name)

	if err := ds.Handler.Disconnect(); err != nil {
		s.log.Warn().Err(err).Str("datasource", name).Msg("disconnect failed during removal")
	}
	s.log.Info().Str("datasource", name).Msg("datasource removed")
	return nil
}

// lookup returns a registered datasource by name.
func (s *Server) lookup(name string) (*Datasource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.sources[name]
	if !ok {
		return nil, errs.Newf(errs.ErrKindNotFound, "datasource %q not found", name)
	}
	return ds, nil
}

// list returns all registered datasources in map order.
func (s *Server) list() []*Datasource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Datasource, 0, len(s.sources))
	for _, ds := range s.sources {
		out = append(out, ds)
	}
	return out
}

// Shutdown disconnects every datasource.
func (s *Server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, ds := range s.sources {
		if err := ds.Handler.Disconnect(); err != nil {
			s.log.Warn().Err(err).Str("datasource", name).Msg("disconnect failed during shutdown")
		}
	}
	s.sources = make(map[string]*Datasource)
}
