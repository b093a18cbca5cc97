package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/phrazzld/todo-api/internal/generation"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"google.golang.org/genai"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-2.0-flash"

const providerName = "gemini"

// Config contains the settings needed to reach the Gemini API.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// contentGenerator is the subset of the genai Models service used here.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// TitleGenerator implements generation.TitleSuggester using Gemini.
type TitleGenerator struct {
	logger *slog.Logger
	models contentGenerator
	model  string
	prompt *generation.Prompt
}

var _ generation.TitleSuggester = (*TitleGenerator)(nil)

func validateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("%w: timeout cannot be negative", generation.ErrInvalidConfig)
	}
	return nil
}

// NewTitleGenerator creates a Gemini-backed suggester.
func NewTitleGenerator(ctx context.Context, cfg Config, logger *slog.Logger) (*TitleGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = cfg.Timeout

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %w", generation.ErrInvalidConfig, err)
	}

	return newTitleGenerator(client.Models, cfg.Model, logger), nil
}

func newTitleGenerator(models contentGenerator, model string, logger *slog.Logger) *TitleGenerator {
	if model == "" {
		model = DefaultModel
	}
	return &TitleGenerator{
		logger: logger.With(slog.String("component", "gemini_title_generator")),
		models: models,
		model:  model,
		prompt: generation.MustDefaultPrompt(),
	}
}

// SuggestTitle implements generation.TitleSuggester.
func (g *TitleGenerator) SuggestTitle(ctx context.Context, hint string) (string, error) {
	prompt, err := g.prompt.Render(hint)
	if err != nil {
		return "", err
	}

	log := logger.FromContextOrDefault(ctx, g.logger)
	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		log.ErrorContext(ctx, "gemini request failed",
			slog.String("model", g.model),
			slog.Duration("elapsed", time.Since(start)),
			redact.ErrorAttr(err))
		return "", mapError(err)
	}

	title := generation.NormalizeTitle(responseText(resp))
	log.DebugContext(ctx, "gemini suggested title",
		slog.String("model", g.model),
		slog.Int("title_length", len(title)),
		slog.Duration("elapsed", time.Since(start)))
	return title, nil
}

// responseText concatenates the text parts of the first candidate. Missing
// candidates and safety-blocked answers yield an empty string.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || candidate.FinishReason == genai.FinishReasonSafety {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// mapError turns genai API errors into *generation.UpstreamError. Context
// and transport errors are returned wrapped as they are.
func mapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("gemini: %w", &generation.UpstreamError{Provider: providerName, StatusCode: apiErr.Code})
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return fmt.Errorf("gemini: %w", &generation.UpstreamError{Provider: providerName, StatusCode: apiErrPtr.Code})
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("gemini: %w", err)
	}
	return fmt.Errorf("gemini: %w: %w", generation.ErrUpstream, err)
}
