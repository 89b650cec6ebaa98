package s3

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fedra-io/fedra/internal/errs"
)

func TestSplitEndpoint(t *testing.T) {
	tests := []struct {
		in     string
		host   string
		secure bool
	}{
		{"xcvefshyvvnbdhwrnrnq.storage.supabase.co", "xcvefshyvvnbdhwrnrnq.storage.supabase.co", true},
		{"https://xcvefshyvvnbdhwrnrnq.storage.supabase.co", "xcvefshyvvnbdhwrnrnq.storage.supabase.co", true},
		{"http://localhost:9000", "localhost:9000", false},
		{"localhost:9000", "localhost:9000", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			host, secure := splitEndpoint(tt.in)
			assert.Equal(t, tt.host, host)
			assert.Equal(t, tt.secure, secure)
		})
	}
}

func TestMapErrorContext(t *testing.T) {
	assert.Equal(t, errs.ErrKindTimeout, mapError(context.DeadlineExceeded, "x").Kind)
	assert.Equal(t, errs.ErrKindTimeout, mapError(context.Canceled, "x").Kind)
	assert.Nil(t, mapError(nil, "x"))
}
