package redact_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/stretchr/testify/assert"
)

func TestRedactString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no sensitive data",
			input:    "todo 42 not found",
			expected: "todo 42 not found",
		},
		{
			name:     "postgres dsn",
			input:    "failed to connect to postgres://todo:s3cret@db:5432/todos",
			expected: "failed to connect to [REDACTED_CREDENTIAL]db:5432/todos",
		},
		{
			name:     "keyword dsn password",
			input:    "host=db user=todo password=s3cret dbname=todos",
			expected: "host=db user=todo [REDACTED_CREDENTIAL] dbname=todos",
		},
		{
			name:     "bearer token",
			input:    "Authorization: Bearer sk-abcdefghijklmnop rejected",
			expected: "Authorization: [REDACTED_KEY] rejected",
		},
		{
			name:     "openai key alone",
			input:    "invalid key sk-proj_abcdefghijkl",
			expected: "invalid key [REDACTED_KEY]",
		},
		{
			name:     "gemini key in query",
			input:    `Post "https://generativelanguage.googleapis.com/v1beta/models?key=secret123": EOF`,
			expected: `Post "https://generativelanguage.googleapis.com/v1beta/models?key=[REDACTED_KEY]": EOF`,
		},
		{
			name:     "google api key",
			input:    "key AIzaSyA1234567890abcdefghijkl expired",
			expected: "key [REDACTED_KEY] expired",
		},
		{
			name:     "file path",
			input:    "open /var/lib/todo/todos.db: permission denied",
			expected: "open [REDACTED_PATH]: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, redact.String(tt.input))
		})
	}
}

func TestRedactError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", redact.Error(nil))

	err := fmt.Errorf("ping: %w", errors.New("postgres://u:p@localhost/todos unreachable"))
	assert.Equal(t, "ping: [REDACTED_CREDENTIAL]localhost/todos unreachable", redact.Error(err))

	attr := redact.ErrorAttr(err)
	assert.Equal(t, "error", attr.Key)
	assert.NotContains(t, attr.Value.String(), "u:p")
}
