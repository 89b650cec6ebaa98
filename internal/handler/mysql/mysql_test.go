package mysql

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedra-io/fedra/internal/errs"
	"github.com/fedra-io/fedra/internal/handler"
)

func validParams() handler.Params {
	return handler.Params{
		"host":     "127.0.0.1",
		"port":     3306,
		"database": "sakila",
		"user":     "reader",
		"password": "secret",
	}
}

func TestConfigFromParams(t *testing.T) {
	cfg, err := ConfigFromParams(validParams())
	require.NoError(t, err)
	assert.Equal(t, "reader:secret@tcp(127.0.0.1:3306)/sakila?parseTime=true", cfg.DSN())
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

func TestNewDoesNotConnect(t *testing.T) {
	params := validParams()
	params["host"] = "198.51.100.1" // TEST-NET-2, never routable

	h, err := New("lazy", params)
	require.NoError(t, err)
	assert.Equal(t, "lazy", h.Name())
	assert.Equal(t, Engine, h.Engine())
	assert.False(t, h.connected())
}

func TestClassifyCode(t *testing.T) {
	tests := []struct {
		code uint16
		want errs.ErrKind
	}{
		{1045, errs.ErrKindConnectionFailed}, // access denied
		{1049, errs.ErrKindConnectionFailed}, // unknown database
		{1040, errs.ErrKindConnectionFailed}, // too many connections
		{1064, errs.ErrKindQueryFailed},      // syntax error
		{1146, errs.ErrKindQueryFailed},      // table doesn't exist
		{9999, errs.ErrKindQueryFailed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyCode(tt.code), "code %d", tt.code)
	}
}

func TestMapErrorMySQLError(t *testing.T) {
	native := &mysql.MySQLError{Number: 1045, Message: "Access denied for user"}
	mapped := mapError(native, "ping failed")

	assert.Equal(t, errs.ErrKindConnectionFailed, mapped.Kind)
	assert.Contains(t, mapped.Error(), "Access denied")
	assert.ErrorIs(t, mapped, native)
}
