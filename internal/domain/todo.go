package domain

import "strings"

// Todo is a single task with a title and a completion flag.
//
// An empty ID means the todo has not been persisted yet; repository
// adapters assign the ID on first save.
type Todo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// NewTodo creates a Todo with the given identity, title and state.
// The title is trimmed of surrounding whitespace. Returns a ValidationError
// wrapping ErrEmptyTitle if nothing is left after trimming.
func NewTodo(id, title string, done bool) (*Todo, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, NewValidationError("title", "cannot be blank", ErrEmptyTitle)
	}

	return &Todo{
		ID:    id,
		Title: trimmed,
		Done:  done,
	}, nil
}

// Toggle flips the completion state.
func (t *Todo) Toggle() {
	t.Done = !t.Done
}

// IsPersisted reports whether a repository has assigned an ID.
func (t *Todo) IsPersisted() bool {
	return t.ID != ""
}

// Clone returns an independent copy of the todo.
func (t *Todo) Clone() *Todo {
	c := *t
	return &c
}

// WithID returns a copy of the todo bound to the given ID.
func (t *Todo) WithID(id string) *Todo {
	c := t.Clone()
	c.ID = id
	return c
}
