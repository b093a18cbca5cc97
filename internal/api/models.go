package api

import "github.com/phrazzld/todo-api/internal/domain"

// CreateTodoRequest is the body of POST /todos.
type CreateTodoRequest struct {
	Title string `json:"title" validate:"required,min=1,max=140"`
}

// SuggestTitleRequest is the body of POST /todos/suggest-title.
type SuggestTitleRequest struct {
	Context string `json:"context" validate:"required"`
}

// TodoResponse is the wire form of a todo.
// ID is null when the repository did not assign one.
type TodoResponse struct {
	ID    *string `json:"id"`
	Title string  `json:"title"`
	Done  bool    `json:"done"`
}

// SuggestTitleResponse is the body returned by POST /todos/suggest-title.
type SuggestTitleResponse struct {
	Title string `json:"title"`
}

func toTodoResponse(t *domain.Todo) TodoResponse {
	resp := TodoResponse{Title: t.Title, Done: t.Done}
	if t.ID != "" {
		id := t.ID
		resp.ID = &id
	}
	return resp
}

func toTodoResponses(todos []*domain.Todo) []TodoResponse {
	out := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoResponse(t))
	}
	return out
}
