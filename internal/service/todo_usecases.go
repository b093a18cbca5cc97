package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/generation"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/store"
)

// AddTodoInput is the input of AddTodo.
type AddTodoInput struct {
	Title string
}

// AddTodo creates and persists a new, not-done todo.
type AddTodo struct {
	repo   store.TodoRepository
	logger *slog.Logger
}

// NewAddTodo returns the AddTodo use case.
func NewAddTodo(repo store.TodoRepository, logger *slog.Logger) *AddTodo {
	return &AddTodo{repo: repo, logger: logger}
}

// Execute validates the title before any I/O, then saves.
func (uc *AddTodo) Execute(ctx context.Context, input AddTodoInput) (*domain.Todo, error) {
	todo, err := domain.NewTodo("", input.Title, false)
	if err != nil {
		return nil, err
	}

	saved, err := uc.repo.Save(ctx, todo)
	if err != nil {
		loggerFor(ctx, uc.logger).ErrorContext(ctx, "failed to save todo", redact.ErrorAttr(err))
		return nil, NewTodoServiceError("add_todo", "failed to save todo", err)
	}

	loggerFor(ctx, uc.logger).InfoContext(ctx, "todo created", slog.String("todo_id", saved.ID))
	return saved, nil
}

// ListTodos returns every todo.
type ListTodos struct {
	repo store.TodoRepository
}

// NewListTodos returns the ListTodos use case.
func NewListTodos(repo store.TodoRepository) *ListTodos {
	return &ListTodos{repo: repo}
}

// Execute returns the repository's todos, never a nil slice.
func (uc *ListTodos) Execute(ctx context.Context) ([]*domain.Todo, error) {
	todos, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, NewTodoServiceError("list_todos", "failed to list todos", err)
	}
	if todos == nil {
		todos = []*domain.Todo{}
	}
	return todos, nil
}

// ToggleTodo flips the done flag of an existing todo.
//
// Toggles for the same ID are serialized within the process so two
// concurrent requests never both read the same state.
type ToggleTodo struct {
	repo   store.TodoRepository
	locks  *keyedMutex
	logger *slog.Logger
}

// NewToggleTodo returns the ToggleTodo use case.
func NewToggleTodo(repo store.TodoRepository, logger *slog.Logger) *ToggleTodo {
	return &ToggleTodo{repo: repo, locks: newKeyedMutex(), logger: logger}
}

// Execute returns a *NotFoundError when the ID is unknown.
func (uc *ToggleTodo) Execute(ctx context.Context, id string) (*domain.Todo, error) {
	unlock := uc.locks.Lock(id)
	defer unlock()

	todo, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, NewTodoServiceError("toggle_todo", "failed to load todo", err)
	}
	if todo == nil {
		return nil, &NotFoundError{ID: id}
	}

	todo.Toggle()

	saved, err := uc.repo.Save(ctx, todo)
	if err != nil {
		return nil, NewTodoServiceError("toggle_todo", "failed to save todo", err)
	}

	loggerFor(ctx, uc.logger).InfoContext(ctx, "todo toggled",
		slog.String("todo_id", saved.ID),
		slog.Bool("done", saved.Done))
	return saved, nil
}

// SuggestTodoTitle asks the configured suggester for a title.
type SuggestTodoTitle struct {
	suggester generation.TitleSuggester
	logger    *slog.Logger
}

// NewSuggestTodoTitle returns the SuggestTodoTitle use case.
func NewSuggestTodoTitle(suggester generation.TitleSuggester, logger *slog.Logger) *SuggestTodoTitle {
	return &SuggestTodoTitle{suggester: suggester, logger: logger}
}

// Execute forwards hint unchanged. The returned title is not validated
// or persisted.
func (uc *SuggestTodoTitle) Execute(ctx context.Context, hint string) (string, error) {
	title, err := uc.suggester.SuggestTitle(ctx, hint)
	if err != nil {
		loggerFor(ctx, uc.logger).WarnContext(ctx, "title suggestion failed", redact.ErrorAttr(err))
		return "", NewTodoServiceError("suggest_title", "failed to suggest title", err)
	}
	return title, nil
}

// loggerFor prefers the request-scoped logger so use case logs carry the
// trace ID.
func loggerFor(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	return logger.FromContextOrDefault(ctx, fallback)
}

// Usecases groups the operations exposed to inbound adapters.
type Usecases struct {
	AddTodo          *AddTodo
	ListTodos        *ListTodos
	ToggleTodo       *ToggleTodo
	SuggestTodoTitle *SuggestTodoTitle
}

// NewUsecases builds every use case over the given ports.
func NewUsecases(repo store.TodoRepository, suggester generation.TitleSuggester, logger *slog.Logger) *Usecases {
	logger = logger.With(slog.String("component", "todo_service"))
	return &Usecases{
		AddTodo:          NewAddTodo(repo, logger),
		ListTodos:        NewListTodos(repo),
		ToggleTodo:       NewToggleTodo(repo, logger),
		SuggestTodoTitle: NewSuggestTodoTitle(suggester, logger),
	}
}
