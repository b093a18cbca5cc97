// Package memory provides a process-local implementation of store.TodoRepository.
// Nothing survives a restart; it backs development runs and tests.
package memory

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// TodoStore keeps todos in a map keyed by ID and hands out copies only.
// IDs are generated from a counter starting at 1.
type TodoStore struct {
	mu     sync.RWMutex
	todos  map[string]*domain.Todo
	order  []string
	seq    int
	logger *slog.Logger
}

// Ensure TodoStore implements store.TodoRepository interface
var _ store.TodoRepository = (*TodoStore)(nil)

// NewTodoStore creates an empty in-memory store.
// If logger is nil, a default logger will be used.
func NewTodoStore(logger *slog.Logger) *TodoStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &TodoStore{
		todos:  make(map[string]*domain.Todo),
		seq:    1,
		logger: logger.With(slog.String("component", "memory_todo_store")),
	}
}

// Save implements store.TodoRepository.Save.
// A todo without ID takes the next counter value. A todo with an ID
// overwrites whatever is stored under it, whether or not it existed.
func (s *TodoStore) Save(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	id := todo.ID
	if id == "" {
		id = strconv.Itoa(s.seq)
		s.seq++
	}

	stored := todo.WithID(id)
	if _, exists := s.todos[id]; !exists {
		s.order = append(s.order, id)
	}
	s.todos[id] = stored

	log.Debug("todo saved", slog.String("todo_id", id), slog.Bool("done", stored.Done))
	return stored.Clone(), nil
}

// FindByID implements store.TodoRepository.FindByID.
func (s *TodoStore) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.todos[id]
	if !ok {
		return nil, nil
	}
	return t.Clone(), nil
}

// ListAll implements store.TodoRepository.ListAll, in insertion order.
func (s *TodoStore) ListAll(ctx context.Context) ([]*domain.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]*domain.Todo, 0, len(s.order))
	for _, id := range s.order {
		todos = append(todos, s.todos[id].Clone())
	}
	return todos, nil
}
