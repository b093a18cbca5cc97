package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/service"
)

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	usecases *service.Usecases
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(usecases *service.Usecases) *TodoHandler {
	return &TodoHandler{usecases: usecases}
}

// CreateTodo handles POST /todos requests
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	todo, err := h.usecases.AddTodo.Execute(r.Context(), service.AddTodoInput{Title: req.Title})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toTodoResponse(todo))
}

// ListTodos handles GET /todos requests
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.usecases.ListTodos.Execute(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toTodoResponses(todos))
}

// ToggleTodo handles POST /todos/{id}/toggle requests
func (h *TodoHandler) ToggleTodo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	todo, err := h.usecases.ToggleTodo.Execute(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toTodoResponse(todo))
}

// SuggestTitle handles POST /todos/suggest-title requests
func (h *TodoHandler) SuggestTitle(w http.ResponseWriter, r *http.Request) {
	var req SuggestTitleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	title, err := h.usecases.SuggestTodoTitle.Execute(r.Context(), req.Context)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SuggestTitleResponse{Title: title})
}

// decodeAndValidate writes a 400 (or 413) and returns false when the body
// cannot be decoded or fails validation.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := shared.DecodeJSON(r, dst); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge, GetSafeErrorMessage(err), err)
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}

	if err := shared.ValidateRequest(dst); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
