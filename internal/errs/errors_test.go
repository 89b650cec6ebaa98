package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	e := New(ErrKindInvalidConfig, "missing required connection parameters: host, password")
	assert.Equal(t, "[invalid_config] missing required connection parameters: host, password", e.Error())

	wrapped := Wrap(ErrKindQueryFailed, "query failed", errors.New("syntax error at or near SELEC"))
	assert.Contains(t, wrapped.Error(), "[query_failed]")
	assert.Contains(t, wrapped.Error(), "syntax error")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	e := Wrap(ErrKindConnectionFailed, "could not reach postgres", cause)

	require.ErrorIs(t, e, cause)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		kind ErrKind
		pred func(error) bool
	}{
		{ErrKindInvalidConfig, IsInvalidConfig},
		{ErrKindNotFound, IsNotFound},
		{ErrKindConnectionFailed, IsConnectionFailed},
		{ErrKindTimeout, IsTimeout},
		{ErrKindQueryFailed, IsQueryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := New(tt.kind, "boom")
			assert.True(t, tt.pred(err))

			// Predicates must see through wrapping.
			assert.True(t, tt.pred(fmt.Errorf("outer: %w", err)))

			// And reject other kinds.
			assert.False(t, tt.pred(New(ErrKindUnknown, "other")))
		})
	}
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, ErrKindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, ErrKindUnknown, KindOf(nil))
}
