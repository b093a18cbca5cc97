package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/todo-api/internal/api/middleware"
	"github.com/phrazzld/todo-api/internal/service"
)

// DefaultBodyLimit caps request bodies when RouterConfig.BodyLimitBytes is zero.
const DefaultBodyLimit int64 = 16 * 1024

// RouterConfig holds the HTTP-level settings of the router.
type RouterConfig struct {
	BodyLimitBytes int64
}

// NewRouter builds the chi router exposing the todo endpoints.
func NewRouter(cfg RouterConfig, usecases *service.Usecases, logger *slog.Logger) http.Handler {
	limit := cfg.BodyLimitBytes
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Trace(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestSize(limit))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	h := NewTodoHandler(usecases)
	r.Route("/todos", func(r chi.Router) {
		r.Post("/", h.CreateTodo)
		r.Get("/", h.ListTodos)
		r.Post("/suggest-title", h.SuggestTitle)
		r.Post("/{id}/toggle", h.ToggleTodo)
	})

	return r
}
