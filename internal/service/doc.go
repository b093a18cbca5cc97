// Package service holds the todo use cases. Each use case depends only on
// ports (store.TodoRepository, generation.TitleSuggester) so any adapter can
// be wired behind it.
package service
