package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/phrazzld/todo-api/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockRepository lets tests inject failures around a map-backed store.
type mockRepository struct {
	mu        sync.Mutex
	todos     map[string]*domain.Todo
	saveErr   error
	findErr   error
	listErr   error
	saveCalls int
	listNil   bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{todos: make(map[string]*domain.Todo)}
}

func (m *mockRepository) Save(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	stored := todo.Clone()
	if stored.ID == "" {
		stored.ID = "generated"
	}
	m.todos[stored.ID] = stored
	return stored.Clone(), nil
}

func (m *mockRepository) FindByID(_ context.Context, id string) (*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	if t, ok := m.todos[id]; ok {
		return t.Clone(), nil
	}
	return nil, nil
}

func (m *mockRepository) ListAll(_ context.Context) ([]*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	if m.listNil {
		return nil, nil
	}
	out := make([]*domain.Todo, 0, len(m.todos))
	for _, t := range m.todos {
		out = append(out, t.Clone())
	}
	return out, nil
}

type mockSuggester struct {
	title      string
	err        error
	gotContext string
}

func (m *mockSuggester) SuggestTitle(_ context.Context, hint string) (string, error) {
	m.gotContext = hint
	return m.title, m.err
}
