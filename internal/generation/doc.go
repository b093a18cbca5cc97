// Package generation provides interfaces for interacting with external
// AI/LLM services for content generation. It abstracts the details of LLM API
// integration (OpenAI, Gemini), allowing the application to suggest todo
// titles without coupling to a specific external service.
//
// Adapters live in internal/platform/openai and internal/platform/gemini.
// Static is the no-network implementation used when no provider is set up.
package generation
