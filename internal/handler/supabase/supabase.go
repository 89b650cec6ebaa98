// Package supabase implements the Supabase handler.
//
// A Supabase project is a hosted PostgreSQL instance, so this handler is a
// thin adapter: it validates the configuration block and delegates every
// connection and query operation to the native PostgreSQL handler by
// composition. No protocol logic, retries, or failure handling live here —
// the delegate owns all of that.
//
// When the parameter block also carries the project's S3 storage
// credentials, the handler exposes a read-only Supabase Storage client.
package supabase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fedra-io/fedra/internal/handler"
	"github.com/fedra-io/fedra/internal/handler/postgres"
	"github.com/fedra-io/fedra/internal/storage"
	"github.com/fedra-io/fedra/internal/storage/s3"
)

// Engine is the registry identifier for this handler.
const Engine = "supabase"

// Handler is the Supabase implementation of handler.Handler. All database
// operations forward to the composed PostgreSQL handler unchanged.
type Handler struct {
	name       string
	delegate   *postgres.Handler
	storageCfg *s3.Config // nil when no storage credentials were supplied
	log        zerolog.Logger
}

// New builds a Handler for the named datasource from a raw parameter
// block. Validation happens here, before any network activity; the five
// required fields are checked by the shared PostgreSQL config parser,
// since the field names map one-to-one.
func New(name string, params handler.Params) (*Handler, error) {
	cfg, err := ParseConfig(params)
	if err != nil {
		return nil, err
	}

	return &Handler{
		name:       name,
		delegate:   postgres.NewWithConfig(name, cfg.Postgres),
		storageCfg: cfg.Storage,
		log:        zerolog.Nop(),
	}, nil
}

func (h *Handler) Name() string   { return h.name }
func (h *Handler) Engine() string { return Engine }

// SetLogger injects the logger into the adapter and its delegate.
func (h *Handler) SetLogger(log zerolog.Logger) {
	h.log = log.With().Str("engine", Engine).Str("datasource", h.name).Logger()
	h.delegate.SetLogger(log)
}

// Connect establishes the delegate's connection.
func (h *Handler) Connect(ctx context.Context) error {
	return h.delegate.Connect(ctx)
}

// Disconnect releases the delegate's connection.
func (h *Handler) Disconnect() error {
	return h.delegate.Disconnect()
}

// CheckConnection verifies the Supabase database is reachable.
func (h *Handler) CheckConnection(ctx context.Context) handler.StatusResponse {
	return h.delegate.CheckConnection(ctx)
}

// NativeQuery executes a raw SQL statement against the Supabase database.
// Errors propagate verbatim from the delegate.
func (h *Handler) NativeQuery(ctx context.Context, query string) (*handler.Response, error) {
	return h.delegate.NativeQuery(ctx, query)
}

// GetTables lists the user tables in the public schema.
func (h *Handler) GetTables(ctx context.Context) (*handler.Response, error) {
	return h.delegate.GetTables(ctx)
}

// GetColumns describes the columns of one table in the public schema.
func (h *Handler) GetColumns(ctx context.Context, table string) (*handler.Response, error) {
	return h.delegate.GetColumns(ctx, table)
}

// HasStorage reports whether the configuration block carried Supabase
// Storage credentials.
func (h *Handler) HasStorage() bool {
	return h.storageCfg != nil
}

// Storage connects to the project's S3-compatible storage endpoint.
// Returns an invalid_config error when no storage credentials were
// supplied at registration time.
func (h *Handler) Storage(ctx context.Context) (storage.Store, error) {
	if h.storageCfg == nil {
		return nil, errNoStorage()
	}
	store, err := s3.New(ctx, h.storageCfg)
	if err != nil {
		h.log.Error().Err(err).Msg("storage connection failed")
		return nil, err
	}
	return store, nil
}
