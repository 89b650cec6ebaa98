package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedra-io/fedra/internal/errs"
	"github.com/fedra-io/fedra/internal/handler"
)

func validParams() handler.Params {
	return handler.Params{
		"host":     "127.0.0.1",
		"port":     54321,
		"database": "test",
		"user":     "supabase",
		"password": "password",
	}
}

func TestConfigFromParams(t *testing.T) {
	cfg, err := ConfigFromParams(validParams())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 54321, cfg.Port)
	assert.Equal(t, "test", cfg.Database)
	assert.Equal(t, "supabase", cfg.User)
	assert.Equal(t, "password", cfg.Password)
	assert.Equal(t, "prefer", cfg.SSLMode)
}

func TestConfigFromParamsMissingFields(t *testing.T) {
	for _, field := range RequiredArgs {
		t.Run(field, func(t *testing.T) {
			params := validParams()
			delete(params, field)

			_, err := ConfigFromParams(params)
			require.Error(t, err)
			assert.True(t, errs.IsInvalidConfig(err))
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestConfigFromParamsPort(t *testing.T) {
	t.Run("string port accepted", func(t *testing.T) {
		params := validParams()
		params["port"] = "6543"
		cfg, err := ConfigFromParams(params)
		require.NoError(t, err)
		assert.Equal(t, 6543, cfg.Port)
	})

	t.Run("json float port accepted", func(t *testing.T) {
		params := validParams()
		params["port"] = float64(5432)
		cfg, err := ConfigFromParams(params)
		require.NoError(t, err)
		assert.Equal(t, 5432, cfg.Port)
	})

	t.Run("negative port rejected", func(t *testing.T) {
		params := validParams()
		params["port"] = -1
		_, err := ConfigFromParams(params)
		require.Error(t, err)
		assert.True(t, errs.IsInvalidConfig(err))
	})
}

func TestDSN(t *testing.T) {
	cfg, err := ConfigFromParams(validParams())
	require.NoError(t, err)

	assert.Equal(t,
		"host=127.0.0.1 port=54321 user=supabase password=password dbname=test sslmode=prefer",
		cfg.DSN())
}

func TestNewDoesNotConnect(t *testing.T) {
	// Construction must perform no network I/O even for unreachable hosts.
	params := validParams()
	params["host"] = "198.51.100.1" // TEST-NET-2, never routable

	h, err := New("lazy", params)
	require.NoError(t, err)
	assert.Equal(t, "lazy", h.Name())
	assert.Equal(t, Engine, h.Engine())
	assert.False(t, h.connected())
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.ErrKind
	}{
		{"deadline", context.DeadlineExceeded, errs.ErrKindTimeout},
		{"cancel", context.Canceled, errs.ErrKindTimeout},
		{"no rows", pgx.ErrNoRows, errs.ErrKindNotFound},
		{"connection class 08", &pgconn.PgError{Code: "08006", Message: "connection failure"}, errs.ErrKindConnectionFailed},
		{"auth class 28", &pgconn.PgError{Code: "28P01", Message: "password authentication failed"}, errs.ErrKindConnectionFailed},
		{"syntax error", &pgconn.PgError{Code: "42601", Message: "syntax error"}, errs.ErrKindQueryFailed},
		{"undefined table", &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}, errs.ErrKindQueryFailed},
		{"network", errors.New("dial tcp: connection refused"), errs.ErrKindConnectionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(tt.err, "op failed")
			assert.Equal(t, tt.want, mapped.Kind)
			// Original error preserved for callers that need it verbatim.
			assert.ErrorIs(t, mapped, tt.err)
		})
	}

	assert.Nil(t, mapError(nil, "no error"))
}

func TestConnectionArgsMetadata(t *testing.T) {
	args := ConnectionArgs()

	secrets := handler.SecretArgs(args)
	assert.True(t, secrets["password"])

	required := map[string]bool{}
	for _, a := range args {
		if a.Required {
			required[a.Name] = true
		}
	}
	for _, name := range RequiredArgs {
		assert.True(t, required[name], "arg %s must be required", name)
	}
	assert.False(t, required["sslmode"])
}
