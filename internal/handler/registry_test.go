package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedra-io/fedra/internal/errs"
)

type stubHandler struct {
	name   string
	engine string
}

func (s *stubHandler) Name() string                        { return s.name }
func (s *stubHandler) Engine() string                      { return s.engine }
func (s *stubHandler) Connect(context.Context) error       { return nil }
func (s *stubHandler) Disconnect() error                   { return nil }
func (s *stubHandler) CheckConnection(context.Context) StatusResponse {
	return StatusResponse{Success: true}
}
func (s *stubHandler) NativeQuery(context.Context, string) (*Response, error) {
	return OKResponse(), nil
}
func (s *stubHandler) GetTables(context.Context) (*Response, error) {
	return TableResponse([]string{"table_name"}, nil), nil
}
func (s *stubHandler) GetColumns(context.Context, string) (*Response, error) {
	return TableResponse([]string{"column_name", "data_type"}, nil), nil
}

func stubDescriptor(engine string) Descriptor {
	return Descriptor{
		Engine: engine,
		Title:  engine,
		Factory: func(name string, _ Params) (Handler, error) {
			return &stubHandler{name: name, engine: engine}, nil
		},
	}
}

func TestRegistryNew(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubDescriptor("stub"))

	h, err := reg.New("stub", "mydb", Params{})
	require.NoError(t, err)
	assert.Equal(t, "mydb", h.Name())
	assert.Equal(t, "stub", h.Engine())
}

func TestRegistryUnknownEngine(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.New("nope", "mydb", Params{})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidConfig(err))
	assert.Contains(t, err.Error(), "nope")
}

func TestRegistryDuplicatePanics(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubDescriptor("dup"))
	assert.Panics(t, func() { reg.Register(stubDescriptor("dup")) })
}

func TestRegistryEnginesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubDescriptor("zeta"))
	reg.Register(stubDescriptor("alpha"))
	assert.Equal(t, []string{"alpha", "zeta"}, reg.Engines())
}

func TestSecretArgs(t *testing.T) {
	args := []ConnectionArg{
		{Name: "user", Type: ArgTypeStr, Required: true},
		{Name: "password", Type: ArgTypeStr, Required: true, Secret: true},
	}
	secrets := SecretArgs(args)
	assert.True(t, secrets["password"])
	assert.False(t, secrets["user"])
}
