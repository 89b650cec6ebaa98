package supabase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedra-io/fedra/internal/errs"
	"github.com/fedra-io/fedra/internal/handler"
	"github.com/fedra-io/fedra/internal/handler/postgres"
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

func TestParseConfigMissingFields(t *testing.T) {
	required := []string{"host", "port", "database", "user", "password"}

	for _, field := range required {
		t.Run("missing "+field, func(t *testing.T) {
			params := validParams()
			delete(params, field)

			_, err := ParseConfig(params)
			require.Error(t, err)
			assert.True(t, errs.IsInvalidConfig(err), "must be a configuration error")
			assert.Contains(t, err.Error(), field, "error must name the missing field")
		})
	}

	t.Run("all fields missing at once", func(t *testing.T) {
		_, err := ParseConfig(handler.Params{})
		require.Error(t, err)
		for _, field := range required {
			assert.Contains(t, err.Error(), field)
		}
	})
}

func TestParseConfigForwardsValuesUnchanged(t *testing.T) {
	cfg, err := ParseConfig(validParams())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Postgres.Host)
	assert.Equal(t, 54321, cfg.Postgres.Port)
	assert.Equal(t, "test", cfg.Postgres.Database)
	assert.Equal(t, "supabase", cfg.Postgres.User)
	assert.Equal(t, "password", cfg.Postgres.Password)
	assert.Nil(t, cfg.Storage)
}

func TestParseConfigMatchesNativePostgres(t *testing.T) {
	// The adapter must yield a connection request identical to what the
	// native PostgreSQL handler builds for the same parameters.
	params := validParams()
	params["sslmode"] = "require"

	native, err := postgres.ConfigFromParams(params)
	require.NoError(t, err)

	cfg, err := ParseConfig(validParams())
	require.NoError(t, err)

	assert.Equal(t, native, cfg.Postgres)
	assert.Equal(t, native.DSN(), cfg.Postgres.DSN())
}

func TestParseConfigSSLModeDefault(t *testing.T) {
	t.Run("defaults to require", func(t *testing.T) {
		cfg, err := ParseConfig(validParams())
		require.NoError(t, err)
		assert.Equal(t, "require", cfg.Postgres.SSLMode)
	})

	t.Run("explicit value wins", func(t *testing.T) {
		params := validParams()
		params["sslmode"] = "disable"
		cfg, err := ParseConfig(params)
		require.NoError(t, err)
		assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	})

	t.Run("caller's parameter block is not mutated", func(t *testing.T) {
		params := validParams()
		_, err := ParseConfig(params)
		require.NoError(t, err)
		_, ok := params["sslmode"]
		assert.False(t, ok)
	})
}

func TestParseConfigStorage(t *testing.T) {
	t.Run("full credential set", func(t *testing.T) {
		params := validParams()
		params["s3_endpoint"] = "xcvefshyvvnbdhwrnrnq.storage.supabase.co"
		params["s3_access_key_id"] = "key"
		params["s3_secret_access_key"] = "secret"

		cfg, err := ParseConfig(params)
		require.NoError(t, err)
		require.NotNil(t, cfg.Storage)
		assert.Equal(t, "xcvefshyvvnbdhwrnrnq.storage.supabase.co", cfg.Storage.Endpoint)
		assert.Equal(t, "key", cfg.Storage.AccessKey)
		assert.Equal(t, "secret", cfg.Storage.SecretKey)
	})

	t.Run("partial credential set rejected", func(t *testing.T) {
		params := validParams()
		params["s3_endpoint"] = "xcvefshyvvnbdhwrnrnq.storage.supabase.co"

		_, err := ParseConfig(params)
		require.Error(t, err)
		assert.True(t, errs.IsInvalidConfig(err))
		assert.Contains(t, err.Error(), "s3_access_key_id")
		assert.Contains(t, err.Error(), "s3_secret_access_key")
	})
}

func TestNewValidatesWithoutConnecting(t *testing.T) {
	// Construction performs validation only — no network I/O.
	params := validParams()
	params["host"] = "198.51.100.1" // TEST-NET-2, never routable

	h, err := New("mysupabase", params)
	require.NoError(t, err)
	assert.Equal(t, "mysupabase", h.Name())
	assert.Equal(t, Engine, h.Engine())
	assert.False(t, h.HasStorage())
}

func TestNewRejectsIncompleteBlock(t *testing.T) {
	_, err := New("broken", handler.Params{"host": "127.0.0.1"})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidConfig(err))
}

func TestStorageWithoutCredentials(t *testing.T) {
	h, err := New("nostore", validParams())
	require.NoError(t, err)

	_, err = h.Storage(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsInvalidConfig(err))
}

func TestRegisteredInDefaultRegistry(t *testing.T) {
	d, err := handler.Default.Lookup(Engine)
	require.NoError(t, err)
	assert.Equal(t, "Supabase", d.Title)

	secrets := handler.SecretArgs(d.Args)
	assert.True(t, secrets["password"])
	assert.True(t, secrets["s3_secret_access_key"])

	h, err := handler.New(Engine, "viaregistry", validParams())
	require.NoError(t, err)
	assert.Equal(t, Engine, h.Engine())
}
