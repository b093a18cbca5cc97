package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/phrazzld/todo-api/internal/generation"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSuggester(t *testing.T, handler http.HandlerFunc) *TitleSuggester {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := NewTitleSuggester(Config{APIKey: "sk-test", BaseURL: srv.URL + "/"}, srv.Client(), discardLogger())
	require.NoError(t, err)
	return s
}

func TestSuggestTitleSendsChatCompletion(t *testing.T) {
	t.Parallel()

	type captured struct {
		path, auth string
		body       chatRequest
	}
	seen := make(chan captured, 1)
	s := newTestSuggester(t, func(w http.ResponseWriter, r *http.Request) {
		c := captured{path: r.URL.Path, auth: r.Header.Get("Authorization")}
		_ = json.NewDecoder(r.Body).Decode(&c.body)
		seen <- c
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"  Acheter du lait \n"}}]}`)
	})

	title, err := s.SuggestTitle(context.Background(), "lait")
	require.NoError(t, err)
	assert.Equal(t, "Acheter du lait", title)

	c := <-seen
	gotPath, gotAuth, got := c.path, c.auth, c.body

	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, DefaultModel, got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "Propose un titre de todo pour : lait", got.Messages[0].Content)
}

func TestSuggestTitleDefaultsOnMissingContent(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"no choices":    `{"choices":[]}`,
		"no message":    `{"choices":[{}]}`,
		"null content":  `{"choices":[{"message":{"content":null}}]}`,
		"blank content": `{"choices":[{"message":{"content":"   "}}]}`,
		"not json":      `oops`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := newTestSuggester(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, body)
			})

			title, err := s.SuggestTitle(context.Background(), "x")
			require.NoError(t, err)
			assert.Equal(t, generation.DefaultTitle, title)
		})
	}
}

func TestSuggestTitleUpstreamStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	s := newTestSuggester(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	})

	_, err := s.SuggestTitle(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, generation.ErrUpstream))

	var upstream *generation.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Equal(t, int32(1), calls.Load(), "no retry")
}

func TestSuggestTitleErrorLogUsesRequestLoggerAndRedactsBody(t *testing.T) {
	t.Parallel()

	s := newTestSuggester(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid key sk-abcdefghijklmnop"}`, http.StatusUnauthorized)
	})

	var buf bytes.Buffer
	reqLogger := slog.New(slog.NewJSONHandler(&buf, nil)).With(slog.String("trace_id", "trace-42"))
	ctx := logger.WithLogger(context.Background(), reqLogger)

	_, err := s.SuggestTitle(ctx, "x")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "openai returned an error status")
	assert.Contains(t, out, `"trace_id":"trace-42"`)
	assert.Contains(t, out, redact.RedactedKeyPlaceholder)
	assert.NotContains(t, out, "sk-abcdefghijklmnop")
}

func TestSuggestTitleCancelledContext(t *testing.T) {
	t.Parallel()

	s := newTestSuggester(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"late"}}]}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SuggestTitle(ctx, "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewTitleSuggesterValidation(t *testing.T) {
	t.Parallel()

	_, err := NewTitleSuggester(Config{}, nil, discardLogger())
	assert.True(t, errors.Is(err, generation.ErrInvalidConfig))

	_, err = NewTitleSuggester(Config{APIKey: "k"}, nil, nil)
	require.Error(t, err)

	s, err := NewTitleSuggester(Config{APIKey: "k"}, nil, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+"/chat/completions", s.endpoint)
	assert.Equal(t, DefaultModel, s.model)
	assert.NotNil(t, s.httpClient)
}
