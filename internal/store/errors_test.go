package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreError(t *testing.T) {
	t.Parallel()

	base := errors.New("connection refused")

	tests := []struct {
		name string
		err  *StoreError
		want string
	}{
		{
			name: "with wrapped error",
			err:  NewStoreError("todo", "save", "insert failed", base),
			want: "save operation on todo failed: insert failed: connection refused",
		},
		{
			name: "without wrapped error",
			err:  NewStoreError("todo", "list", "scan failed", nil),
			want: "list operation on todo failed: scan failed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}

	wrapped := NewStoreError("todo", "save", "insert failed", base)
	assert.True(t, errors.Is(wrapped, base))
}

func TestUpstreamError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("save todo: %w", &UpstreamError{Operation: "POST", StatusCode: 503})

	assert.True(t, IsUpstreamError(err))
	assert.True(t, errors.Is(err, ErrUpstream))

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, 503, upErr.StatusCode)
	assert.Contains(t, err.Error(), "POST failed with status 503")

	assert.False(t, IsUpstreamError(errors.New("other")))
}
