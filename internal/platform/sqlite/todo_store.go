package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/store"
)

// SQLiteTodoStore implements store.TodoRepository on a SQLite database.
type SQLiteTodoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure SQLiteTodoStore implements store.TodoRepository interface
var _ store.TodoRepository = (*SQLiteTodoStore)(nil)

// NewSQLiteTodoStore creates a store over db, which may be a *sql.DB or *sql.Tx.
// If logger is nil, a default logger will be used.
func NewSQLiteTodoStore(db store.DBTX, logger *slog.Logger) *SQLiteTodoStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteTodoStore{
		db:     db,
		logger: logger.With(slog.String("component", "todo_store")),
	}
}

// Save implements store.TodoRepository.Save with upsert semantics.
func (s *SQLiteTodoStore) Save(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	id := todo.ID
	if id == "" {
		id = uuid.NewString()
	}

	query := `
		INSERT INTO todos (id, title, done)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET title = excluded.title, done = excluded.done, updated_at = CURRENT_TIMESTAMP
		RETURNING id, title, done
	`

	var saved domain.Todo
	err := s.db.QueryRowContext(ctx, query, id, todo.Title, todo.Done).
		Scan(&saved.ID, &saved.Title, &saved.Done)
	if err != nil {
		log.Error("failed to save todo",
			redact.ErrorAttr(err),
			slog.String("todo_id", id))
		return nil, store.NewStoreError("todo", "save", "upsert failed", MapError(err))
	}

	log.Debug("todo saved", slog.String("todo_id", saved.ID), slog.Bool("done", saved.Done))
	return &saved, nil
}

// FindByID implements store.TodoRepository.FindByID.
func (s *SQLiteTodoStore) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	var todo domain.Todo
	err := s.db.QueryRowContext(ctx, `SELECT id, title, done FROM todos WHERE id = ?`, id).
		Scan(&todo.ID, &todo.Title, &todo.Done)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get todo by ID",
			slog.String("error", err.Error()),
			slog.String("todo_id", id))
		return nil, store.NewStoreError("todo", "find", "select failed", err)
	}
	return &todo, nil
}

// ListAll implements store.TodoRepository.ListAll in creation order.
func (s *SQLiteTodoStore) ListAll(ctx context.Context) ([]*domain.Todo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, done FROM todos ORDER BY seq ASC`)
	if err != nil {
		return nil, store.NewStoreError("todo", "list", "select failed", err)
	}
	defer func() { _ = rows.Close() }()

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
