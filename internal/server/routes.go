package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fedra-io/fedra/internal/errs"
	"github.com/fedra-io/fedra/internal/handler"
	"github.com/fedra-io/fedra/internal/storage"
)

// storageProvider is implemented by handlers that expose object storage
// alongside their database (the Supabase handler).
type storageProvider interface {
	HasStorage() bool
	Storage(ctx context.Context) (storage.Store, error)
}

type engineView struct {
	Engine  string                  `json:"engine"`
	Title   string                  `json:"title"`
	Args    []handler.ConnectionArg `json:"connection_args"`
	Example handler.Params          `json:"example,omitempty"`
}

type createRequest struct {
	Name       string         `json:"name"`
	Engine     string         `json:"engine"`
	Parameters handler.Params `json:"parameters"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type errorView struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) handleListEngines(w http.ResponseWriter, r *http.Request) {
	var out []engineView
	for _, name := range s.reg.Engines() {
		d, err := s.reg.Lookup(name)
		if err != nil {
			continue
		}
		out = append(out, engineView{
			Engine:  d.Engine,
			Title:   d.Title,
			Args:    d.Args,
			Example: d.Example,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListDatasources(w http.ResponseWriter, r *http.Request) {
	sources := s.list()
	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })

	out := make([]*Datasource, len(sources))
	for i, ds := range sources {
		out[i] = s.redacted(ds)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateDatasource(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Wrap(errs.ErrKindInvalidConfig, "malformed request body", err))
		return
	}
	if req.Name == "" || req.Engine == "" {
		writeError(w, errs.New(errs.ErrKindInvalidConfig, "name and engine are required"))
		return
	}

	ds, err := s.Register(req.Name, req.Engine, req.Parameters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.redacted(ds))
}

func (s *Server) handleGetDatasource(w http.ResponseWriter, r *http.Request) {
	ds, err := s.lookup(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.redacted(ds))
}

func (s *Server) handleDeleteDatasource(w http.ResponseWriter, r *http.Request) {
	if err := s.Remove(chi.URLParam(r, "name")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ds, err := s.lookup(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ds.Handler.CheckConnection(r.Context()))
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	ds, err := s.lookup(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.Wrap(errs.ErrKindInvalidConfig, "malformed request body", err))
		return
	}
	if req.Query == "" {
		writeError(w, errs.New(errs.ErrKindInvalidConfig, "query is required"))
		return
	}

	resp, err := ds.Handler.NativeQuery(r.Context(), req.Query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	ds, err := s.lookup(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp, err := ds.Handler.GetTables(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	ds, err := s.lookup(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp, err := ds.Handler.GetColumns(r.Context(), chi.URLParam(r, "table"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBuckets(w http.ResponseWriter, r *http.Request) {
	store, err := s.storeFor(r, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	defer store.Close()

	buckets, err := store.ListBuckets(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (s *Server) handleObjects(w http.ResponseWriter, r *http.Request) {
	store, err := s.storeFor(r, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	defer store.Close()

	opts := storage.ListOptions{
		Prefix:    r.URL.Query().Get("prefix"),
		Recursive: r.URL.Query().Get("recursive") == "true",
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			writeError(w, errs.Newf(errs.ErrKindInvalidConfig, "invalid limit %q", limit))
			return
		}
		opts.Limit = n
	}

	objects, err := store.ListObjects(r.Context(), chi.URLParam(r, "bucket"), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, objects)
}

// storeFor resolves the storage client of a datasource, or fails when the
// engine has no storage surface.
func (s *Server) storeFor(r *http.Request, name string) (storage.Store, error) {
	ds, err := s.lookup(name)
	if err != nil {
		return nil, err
	}

	sp, ok := ds.Handler.(storageProvider)
	if !ok || !sp.HasStorage() {
		return nil, errs.Newf(errs.ErrKindInvalidConfig, "datasource %q has no storage surface", name)
	}
	return sp.Storage(r.Context())
}

// redacted returns a copy of ds with secret parameters masked, using the
// engine's connection-arg metadata to decide what is secret.
func (s *Server) redacted(ds *Datasource) *Datasource {
	secrets := map[string]bool{"password": true}
	if d, err := s.reg.Lookup(ds.Engine); err == nil {
		secrets = handler.SecretArgs(d.Args)
	}

	params := make(handler.Params, len(ds.Params))
	for k, v := range ds.Params {
		if secrets[k] {
			params[k] = "********"
		} else {
			params[k] = v
		}
	}

	out := *ds
	out.Params = params
	return &out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error kinds to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	kind := errs.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case errs.ErrKindInvalidConfig, errs.ErrKindQueryFailed:
		status = http.StatusBadRequest
	case errs.ErrKindNotFound:
		status = http.StatusNotFound
	case errs.ErrKindConnectionFailed:
		status = http.StatusBadGateway
	case errs.ErrKindTimeout:
		status = http.StatusGatewayTimeout
	}

	writeJSON(w, status, errorView{Error: err.Error(), Kind: kind.String()})
}
