package remote

import (
	"fmt"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// document is the wire shape of a todo in the remote collection.
type document struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// payload is what gets sent on create and update. The id travels in the URL,
// never in the body.
type payload struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

func toPayload(t *domain.Todo) payload {
	return payload{Title: t.Title, Done: t.Done}
}

func (d document) toDomain() (*domain.Todo, error) {
	todo, err := domain.NewTodo(d.ID, d.Title, d.Done)
	if err != nil {
		return nil, fmt.Errorf("%w: remote document %q: %v", store.ErrInvalidEntity, d.ID, err)
	}
	return todo, nil
}
