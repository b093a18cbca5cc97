package store

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// TodoRepository defines the persistence port for todos.
// Implementations must hand out copies: callers may mutate what they
// receive without affecting stored state.
type TodoRepository interface {
	// Save inserts or overwrites a todo.
	// If todo.ID is empty the adapter assigns one. If it is set, the record
	// with that ID is overwritten, or created when it does not exist yet.
	// Returns the stored copy carrying its ID.
	Save(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)

	// FindByID looks up a todo by ID.
	// A miss is not an error: it returns nil, nil and the caller decides
	// what absence means.
	FindByID(ctx context.Context, id string) (*domain.Todo, error)

	// ListAll returns every stored todo. Ordering is adapter-defined;
	// all bundled adapters return creation order.
	ListAll(ctx context.Context) ([]*domain.Todo, error)
}
