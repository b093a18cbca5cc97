package generation

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
)

// DefaultTitle is returned whenever a provider answers without usable content.
const DefaultTitle = "Suggestion"

// DefaultPromptTemplate is the instruction sent to the model. The context
// supplied by the caller is embedded verbatim.
const DefaultPromptTemplate = "Propose un titre de todo pour : {{.Context}}"

// TitleSuggester defines the interface for proposing a todo title from free
// text. This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type TitleSuggester interface {
	// SuggestTitle returns a title for the given context. Malformed provider
	// responses degrade to DefaultTitle; transport and status failures are
	// returned as errors.
	SuggestTitle(ctx context.Context, hint string) (string, error)
}

// promptData represents the data passed to the prompt template
type promptData struct {
	Context string
}

// Prompt renders prompt templates for title suggestions.
type Prompt struct {
	tmpl *template.Template
}

// NewPrompt parses text as a prompt template. An empty text selects
// DefaultPromptTemplate.
func NewPrompt(text string) (*Prompt, error) {
	if strings.TrimSpace(text) == "" {
		text = DefaultPromptTemplate
	}

	tmpl, err := template.New("suggest_title").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %w", ErrInvalidConfig, err)
	}
	return &Prompt{tmpl: tmpl}, nil
}

// MustDefaultPrompt returns the prompt built from DefaultPromptTemplate.
func MustDefaultPrompt() *Prompt {
	p, err := NewPrompt(DefaultPromptTemplate)
	if err != nil {
		// ALLOW-PANIC: constant template
		panic(err)
	}
	return p
}

// Render embeds hint as .Context in the template.
func (p *Prompt) Render(hint string) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, promptData{Context: hint}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// NormalizeTitle trims a model answer and falls back to DefaultTitle when
// nothing is left.
func NormalizeTitle(raw string) string {
	title := strings.TrimSpace(raw)
	if title == "" {
		return DefaultTitle
	}
	return title
}

// Static is a TitleSuggester that never calls out and always answers with
// its Title (DefaultTitle when empty).
type Static struct {
	Title string
}

// SuggestTitle implements TitleSuggester.
func (s Static) SuggestTitle(ctx context.Context, _ string) (string, error) {
	return NormalizeTitle(s.Title), nil
}
