// Package handler defines the contract every data-source engine implements.
//
// A Handler wraps one named datasource: it validates its connection
// parameters at construction time, connects lazily, and exposes a uniform
// query/introspection surface. All layers above this package talk only to
// the Handler interface — they never import an engine package directly.
package handler

import (
	"context"

	"github.com/rs/zerolog"
)

// Handler is the uniform adapter interface for a single datasource.
//
// Construction (via an engine Factory) validates the parameter block and
// must perform no network I/O; Connect establishes the actual connection.
// NativeQuery and the introspection calls connect on demand if needed.
type Handler interface {
	// Name returns the datasource name this handler was registered under.
	Name() string

	// Engine returns the engine identifier (e.g. "supabase", "postgres").
	Engine() string

	// Connect establishes the underlying connection and verifies it.
	// Calling Connect on an already-connected handler is a no-op.
	Connect(ctx context.Context) error

	// Disconnect releases the underlying connection. Safe to call when
	// not connected.
	Disconnect() error

	// CheckConnection verifies the datasource is reachable with the
	// configured credentials. If the handler was not connected before the
	// check, it is disconnected again afterwards.
	CheckConnection(ctx context.Context) StatusResponse

	// NativeQuery executes a raw SQL statement against the datasource.
	NativeQuery(ctx context.Context, query string) (*Response, error)

	// GetTables lists the user tables visible in the default schema.
	GetTables(ctx context.Context) (*Response, error)

	// GetColumns describes the columns of one table.
	GetColumns(ctx context.Context, table string) (*Response, error)
}

// LoggerAware is implemented by handlers that accept an injected logger.
// The platform injects a logger scoped to the datasource after
// construction; handlers that don't implement it simply stay quiet.
type LoggerAware interface {
	SetLogger(zerolog.Logger)
}
