package shared

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name string `json:"name" validate:"required,max=5"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	var got sampleRequest
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"abc","extra":1}`))
	require.NoError(t, DecodeJSON(req, &got))
	assert.Equal(t, "abc", got.Name)

	req = httptest.NewRequest("POST", "/", nil)
	assert.True(t, errors.Is(DecodeJSON(req, &got), ErrEmptyBody))

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a"} {"name":"b"}`))
	assert.Error(t, DecodeJSON(req, &got))
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(sampleRequest{Name: "ok"}))
	assert.Error(t, ValidateRequest(sampleRequest{}))
	assert.Error(t, ValidateRequest(sampleRequest{Name: "toolong"}))
}
