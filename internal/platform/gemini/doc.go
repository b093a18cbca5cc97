// Package gemini provides an implementation of the generation.TitleSuggester
// interface backed by Google's Gemini API.
//
// This package is an infrastructure adapter in the hexagonal architecture. It
// renders the title prompt, sends it through the google.golang.org/genai
// client and reduces the first candidate to a single trimmed title. Empty or
// blocked answers degrade to generation.DefaultTitle; API failures are
// reported as *generation.UpstreamError.
package gemini
