// Package mysql implements the native MySQL handler on database/sql with
// the go-sql-driver. Same contract as the PostgreSQL handler: validate at
// construction, connect lazily, map native errors to unified kinds.
package mysql

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fedra-io/fedra/internal/handler"

	_ "github.com/go-sql-driver/mysql" // register "mysql" driver
)

// Engine is the registry identifier for this handler.
const Engine = "mysql"

const (
	defaultMaxOpenConns = 10
	defaultMaxIdleConns = 2
	defaultPingTimeout  = 5 * time.Second
)

// Handler is the MySQL implementation of handler.Handler.
type Handler struct {
	name string
	cfg  *Config
	log  zerolog.Logger

	mu sync.Mutex
	db *sql.DB
}

// New builds a Handler for the named datasource from a raw parameter
// block. The block is validated immediately; no connection is made.
func New(name string, params handler.Params) (*Handler, error) {
	cfg, err := ConfigFromParams(params)
	if err != nil {
		return nil, err
	}
	return &Handler{name: name, cfg: cfg, log: zerolog.Nop()}, nil
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

// Connect opens the pool and pings it. A no-op when already connected.
func (h *Handler) Connect(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.connectLocked(ctx)
}

func (h *Handler) connectLocked(ctx context.Context) error {
	if h.db != nil {
		return nil
	}

	db, err := sql.Open("mysql", h.cfg.DSN())
	if err != nil {
		return mapError(err, "invalid connection parameters")
	}
	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		h.log.Error().Err(err).Msg("connection failed")
		return mapError(err, "ping failed")
	}

	h.db = db
	h.log.Debug().Msg("connected")
	return nil
}

// Disconnect closes the pool. Safe to call when not connected.
func (h *Handler) Disconnect() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db != nil {
		err := h.db.Close()
		h.db = nil
		if err != nil {
			return mapError(err, "close failed")
		}
	}
	return nil
}

func (h *Handler) connected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.db != nil
}

// CheckConnection verifies reachability with the configured credentials.
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

func (h *Handler) ensure(ctx context.Context) (*sql.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.connectLocked(ctx); err != nil {
		return nil, err
	}
	return h.db, nil
}

// NativeQuery executes a raw SQL statement.
func (h *Handler) NativeQuery(ctx context.Context, query string) (*handler.Response, error) {
	db, err := h.ensure(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		h.log.Error().Err(err).Msg("query failed")
		return nil, mapError(err, "query failed")
	}
	return collectRows(rows)
}

// GetTables lists the user tables in the configured database.
func (h *Handler) GetTables(ctx context.Context) (*handler.Response, error) {
	const q = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_type   = 'BASE TABLE'
		ORDER BY table_name`

	return h.NativeQuery(ctx, q)
}

// GetColumns describes the columns of one table.
func (h *Handler) GetColumns(ctx context.Context, table string) (*handler.Response, error) {
	const q = `
		SELECT column_name,
		       data_type,
		       is_nullable
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name   = ?
		ORDER BY ordinal_position`

	db, err := h.ensure(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, q, table)
	if err != nil {
		return nil, mapError(err, "failed to fetch columns")
	}
	return collectRows(rows)
}

// collectRows drains a database/sql result set into a handler.Response.
func collectRows(rows *sql.Rows) (*handler.Response, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, mapError(err, "failed to read column names")
	}

	var out [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, mapError(err, "failed to scan row")
		}
		// The driver yields []byte for text columns; normalise to string.
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
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
