// Package openai implements generation.TitleSuggester on top of the OpenAI
// chat completions endpoint.
package openai
