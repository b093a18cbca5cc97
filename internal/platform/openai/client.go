package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/phrazzld/todo-api/internal/generation"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
)

const (
	// DefaultBaseURL is the public OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel is the chat model used for suggestions.
	DefaultModel = "gpt-4o"

	providerName = "openai"
	// maxErrorBody bounds how much of an error response is logged.
	maxErrorBody = 512
)

// Config holds the OpenAI connection settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// TitleSuggester asks an OpenAI chat model for a todo title.
type TitleSuggester struct {
	apiKey     string
	endpoint   string
	model      string
	httpClient *http.Client
	prompt     *generation.Prompt
	logger     *slog.Logger
}

var _ generation.TitleSuggester = (*TitleSuggester)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewTitleSuggester validates cfg and returns a suggester. A nil client is
// replaced by a pooled cleanhttp client using cfg.Timeout.
func NewTitleSuggester(cfg Config, client *http.Client, logger *slog.Logger) (*TitleSuggester, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
		client.Timeout = cfg.Timeout
	}

	return &TitleSuggester{
		apiKey:     cfg.APIKey,
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		model:      cfg.Model,
		httpClient: client,
		prompt:     generation.MustDefaultPrompt(),
		logger:     logger.With(slog.String("component", "openai_title_suggester")),
	}, nil
}

// SuggestTitle sends a single user message and returns the trimmed content
// of the first choice. Missing or blank content yields
// generation.DefaultTitle. There is no retry.
func (s *TitleSuggester) SuggestTitle(ctx context.Context, hint string) (string, error) {
	prompt, err := s.prompt.Render(hint)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(chatRequest{
		Model:    s.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("openai: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("openai: %w", ctx.Err())
		}
		return "", fmt.Errorf("openai: %w: %w", generation.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	log := logger.FromContextOrDefault(ctx, s.logger)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.ErrorContext(ctx, "openai returned an error status",
			slog.Int("status", resp.StatusCode),
			slog.String("body", redact.String(string(snippet))),
			slog.Duration("elapsed", time.Since(start)))
		return "", fmt.Errorf("openai: %w", &generation.UpstreamError{Provider: providerName, StatusCode: resp.StatusCode})
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.WarnContext(ctx, "openai response could not be decoded, using default title",
			redact.ErrorAttr(err))
		return generation.DefaultTitle, nil
	}

	title := generation.NormalizeTitle(firstContent(decoded))
	log.DebugContext(ctx, "openai suggested title",
		slog.String("model", s.model),
		slog.Int("title_length", len(title)),
		slog.Duration("elapsed", time.Since(start)))
	return title, nil
}

func firstContent(resp chatResponse) string {
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == nil {
		return ""
	}
	return *resp.Choices[0].Message.Content
}
