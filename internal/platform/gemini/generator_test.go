package gemini

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/todo-api/internal/generation"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	resp       *genai.GenerateContentResponse
	err        error
	gotModel   string
	gotContent []*genai.Content
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	_ *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotContent = contents
	return f.resp, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content, FinishReason: genai.FinishReasonStop}},
	}
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	require.NoError(t, validateConfig(Config{APIKey: "k"}))

	err := validateConfig(Config{APIKey: "  "})
	assert.True(t, errors.Is(err, generation.ErrInvalidConfig))

	err = validateConfig(Config{APIKey: "k", Timeout: -1})
	assert.True(t, errors.Is(err, generation.ErrInvalidConfig))
}

func TestNewTitleGeneratorRejectsNilLogger(t *testing.T) {
	t.Parallel()

	_, err := NewTitleGenerator(context.Background(), Config{APIKey: "k"}, nil)
	require.Error(t, err)
}

func TestSuggestTitle(t *testing.T) {
	t.Parallel()

	fake := &fakeModels{resp: textResponse("  Acheter ", "du lait\n")}
	g := newTitleGenerator(fake, "", discardLogger())

	title, err := g.SuggestTitle(context.Background(), "lait")
	require.NoError(t, err)
	assert.Equal(t, "Acheter du lait", title)
	assert.Equal(t, DefaultModel, fake.gotModel)

	require.Len(t, fake.gotContent, 1)
	require.Len(t, fake.gotContent[0].Parts, 1)
	assert.Equal(t, "Propose un titre de todo pour : lait", fake.gotContent[0].Parts[0].Text)
}

func TestSuggestTitleFallsBackToDefault(t *testing.T) {
	t.Parallel()

	blocked := textResponse("should not be used")
	blocked.Candidates[0].FinishReason = genai.FinishReasonSafety

	cases := map[string]*genai.GenerateContentResponse{
		"nil response":  nil,
		"no candidates": {},
		"nil content":   {Candidates: []*genai.Candidate{{}}},
		"blank text":    textResponse("   "),
		"blocked":       blocked,
	}

	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			g := newTitleGenerator(&fakeModels{resp: resp}, "gemini-test", discardLogger())

			title, err := g.SuggestTitle(context.Background(), "x")
			require.NoError(t, err)
			assert.Equal(t, generation.DefaultTitle, title)
		})
	}
}

func TestSuggestTitleUpstreamError(t *testing.T) {
	t.Parallel()

	g := newTitleGenerator(&fakeModels{err: genai.APIError{Code: 503, Message: "unavailable"}}, "m", discardLogger())

	_, err := g.SuggestTitle(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, generation.ErrUpstream))

	var upstream *generation.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, 503, upstream.StatusCode)
	assert.Equal(t, "gemini", upstream.Provider)
}

func TestSuggestTitleTransportError(t *testing.T) {
	t.Parallel()

	g := newTitleGenerator(&fakeModels{err: errors.New("connection reset")}, "m", discardLogger())

	_, err := g.SuggestTitle(context.Background(), "x")
	assert.True(t, errors.Is(err, generation.ErrUpstream))

	g = newTitleGenerator(&fakeModels{err: context.Canceled}, "m", discardLogger())
	_, err = g.SuggestTitle(context.Background(), "x")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, generation.ErrUpstream))
}

func TestSuggestTitleLogsThroughRequestLogger(t *testing.T) {
	t.Parallel()

	fake := &fakeModels{err: errors.New("dial failed: key sk-abcdefghijklmnop rejected")}
	g := newTitleGenerator(fake, "m", discardLogger())

	var buf bytes.Buffer
	reqLogger := slog.New(slog.NewJSONHandler(&buf, nil)).With(slog.String("trace_id", "trace-7"))
	ctx := logger.WithLogger(context.Background(), reqLogger)

	_, err := g.SuggestTitle(ctx, "x")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "gemini request failed")
	assert.Contains(t, out, `"trace_id":"trace-7"`)
	assert.Contains(t, out, redact.RedactedKeyPlaceholder)
	assert.NotContains(t, out, "sk-abcdefghijklmnop")
}
