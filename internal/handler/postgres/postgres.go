// Package postgres implements the native PostgreSQL handler on pgx/v5.
//
// The handler validates its configuration block at construction, connects
// lazily through pgxpool, and translates server errors into the unified
// errs kinds. It is safe for concurrent use once connected.
package postgres

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/fedra-io/fedra/internal/handler"
)

// Engine is the registry identifier for this handler.
const Engine = "postgres"

// Handler is the PostgreSQL implementation of handler.Handler.
type Handler struct {
	name string
	cfg  *Config
	log  zerolog.Logger

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// New builds a Handler for the named datasource from a raw parameter
// block. The block is validated immediately; no connection is made.
func New(name string, params handler.Params) (*Handler, error) {
	cfg, err := ConfigFromParams(params)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(name, cfg), nil
}

// NewWithConfig builds a Handler from an already-validated Config.
// Delegating engines (Supabase) use this entry point directly.
func NewWithConfig(name string, cfg *Config) *Handler {
	return &Handler{name: name, cfg: cfg, log: zerolog.Nop()}
}

func (h *Handler) Name() string   { return h.name }
func (h *Handler) Engine() string { return Engine }

// SetLogger injects the logger. The password never appears in log fields.
func (h *Handler) SetLogger(log zerolog.Logger) {
	h.log = log.With().
		Str("engine", Engine).
		Str("datasource", h.name).
		Str("host", h.cfg.Host).
		Int("port", h.cfg.Port).
		Str("database", h.cfg.Database).
		Logger()
}

// Connect creates the connection pool and pings it. A no-op when already
// connected.
func (h *Handler) Connect(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.connectLocked(ctx)
}

func (h *Handler) connectLocked(ctx context.Context) error {
	if h.pool != nil {
		return nil
	}

	poolCfg, err := pgxpool.ParseConfig(h.cfg.DSN())
	if err != nil {
		return mapError(err, "invalid connection parameters")
	}
	poolCfg.MaxConns = defaultMaxConns
	poolCfg.MinConns = defaultMinConns
	poolCfg.ConnConfig.ConnectTimeout = defaultConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return mapError(err, "failed to create connection pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		h.log.Error().Err(err).Msg("connection failed")
		return mapError(err, "ping failed")
	}

	h.pool = pool
	h.log.Debug().Msg("connected")
	return nil
}

// Disconnect drains the connection pool. Safe to call when not connected.
func (h *Handler) Disconnect() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pool != nil {
		h.pool.Close()
		h.pool = nil
	}
	return nil
}

// connected reports whether a pool currently exists.
func (h *Handler) connected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pool != nil
}

// CheckConnection verifies reachability with the configured credentials.
// If the handler was not connected before the check, it is returned to
// that state afterwards.
func (h *Handler) CheckConnection(ctx context.Context) handler.StatusResponse {
	wasConnected := h.connected()

	if err := h.Connect(ctx); err != nil {
		return handler.StatusResponse{ErrorMessage: err.Error()}
	}

	if !wasConnected {
		_ = h.Disconnect()
	}
	return handler.StatusResponse{Success: true}
}

// ensure connects on demand so queries work against a fresh handler.
func (h *Handler) ensure(ctx context.Context) (*pgxpool.Pool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.connectLocked(ctx); err != nil {
		return nil, err
	}
	return h.pool, nil
}

// NativeQuery executes a raw SQL statement. Statements that produce no
// result set (DDL, DML without RETURNING) yield an OK response.
func (h *Handler) NativeQuery(ctx context.Context, query string) (*handler.Response, error) {
	pool, err := h.ensure(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, query)
	if err != nil {
		h.log.Error().Err(err).Msg("query failed")
		return nil, mapError(err, "query failed")
	}
	return collectRows(rows)
}

// GetTables lists the user tables in the public schema.
func (h *Handler) GetTables(ctx context.Context) (*handler.Response, error) {
	const q = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_type   = 'BASE TABLE'
		ORDER BY table_name`

	return h.NativeQuery(ctx, q)
}

// GetColumns describes the columns of one table in the public schema.
func (h *Handler) GetColumns(ctx context.Context, table string) (*handler.Response, error) {
	const q = `
		SELECT column_name,
		       data_type,
		       is_nullable
		FROM information_schema.columns
		WHERE table_schema = 'public'
		  AND table_name   = $1
		ORDER BY ordinal_position`

	pool, err := h.ensure(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, q, table)
	if err != nil {
		return nil, mapError(err, "failed to fetch columns")
	}
	return collectRows(rows)
}

// collectRows drains a pgx result set into a handler.Response.
// An empty field list means the statement produced no result set.
func collectRows(rows pgx.Rows) (*handler.Response, error) {
	defer rows.Close()

	descs := rows.FieldDescriptions()
	columns := make([]string, len(descs))
	for i, d := range descs {
		columns[i] = d.Name
	}

	var out [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, mapError(err, "failed to read row")
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error during row iteration")
	}

	if len(columns) == 0 {
		return handler.OKResponse(), nil
	}
	return handler.TableResponse(columns, out), nil
}
