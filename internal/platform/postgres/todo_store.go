package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// PostgresTodoStore implements the store.TodoRepository interface
// using a PostgreSQL database as the storage backend.
type PostgresTodoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresTodoStore implements store.TodoRepository interface
var _ store.TodoRepository = (*PostgresTodoStore)(nil)

// NewPostgresTodoStore creates a new PostgreSQL implementation of the TodoRepository interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTodoStore(db store.DBTX, logger *slog.Logger) *PostgresTodoStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTodoStore{
		db:     db,
		logger: logger.With(slog.String("component", "todo_store")),
	}
}

// Save implements store.TodoRepository.Save.
// New todos get a random UUID. Existing IDs are upserted, so saving an ID
// that was never stored creates it.
func (s *PostgresTodoStore) Save(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id := todo.ID
	if id == "" {
		id = uuid.NewString()
	}

	query := `
		INSERT INTO todos (id, title, done)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title, done = EXCLUDED.done, updated_at = now()
		RETURNING id, title, done
	`

	var saved domain.Todo
	err := s.db.QueryRowContext(ctx, query, id, todo.Title, todo.Done).
		Scan(&saved.ID, &saved.Title, &saved.Done)
	if err != nil {
		log.Error("failed to save todo",
			slog.String("error", err.Error()),
			slog.String("todo_id", id))
		return nil, store.NewStoreError("todo", "save", "upsert failed", MapError(err))
	}

	log.Debug("todo saved", slog.String("todo_id", saved.ID), slog.Bool("done", saved.Done))
	return &saved, nil
}

// FindByID implements store.TodoRepository.FindByID.
func (s *PostgresTodoStore) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, done
		FROM todos
		WHERE id = $1
	`

	var todo domain.Todo
	err := s.db.QueryRowContext(ctx, query, id).Scan(&todo.ID, &todo.Title, &todo.Done)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("todo not found", slog.String("todo_id", id))
			return nil, nil
		}
		log.Error("failed to get todo by ID",
			slog.String("error", err.Error()),
			slog.String("todo_id", id))
		return nil, store.NewStoreError("todo", "find", "select failed", MapError(err))
	}

	return &todo, nil
}

// ListAll implements store.TodoRepository.ListAll in creation order.
func (s *PostgresTodoStore) ListAll(ctx context.Context) ([]*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, done
		FROM todos
		ORDER BY seq ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list todos", slog.String("error", err.Error()))
		return nil, store.NewStoreError("todo", "list", "select failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	todos := make([]*domain.Todo, 0)
	for rows.Next() {
		var todo domain.Todo
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Done); err != nil {
			return nil, store.NewStoreError("todo", "list", "scan failed", err)
		}
		todos = append(todos, &todo)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("todo", "list", "row iteration failed", err)
	}

	return todos, nil
}
