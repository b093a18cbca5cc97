package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/phrazzld/todo-api/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, filepath.Join(t.TempDir(), "todos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db, nil))
	return db
}

func TestSQLiteTodoStore_Contract(t *testing.T) {
	storetest.RunTodoRepositoryTests(t, func(t *testing.T) store.TodoRepository {
		return NewSQLiteTodoStore(openTestDB(t), nil)
	})
}

func TestSQLiteTodoStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todos.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db, nil))

	todo, err := domain.NewTodo("", "survive restart", false)
	require.NoError(t, err)
	saved, err := NewSQLiteTodoStore(db, nil).Save(ctx, todo)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	require.NoError(t, Migrate(ctx, reopened, nil), "migrating twice is a no-op")

	found, err := NewSQLiteTodoStore(reopened, nil).FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "survive restart", found.Title)
}

func TestSQLiteTodoStore_RejectsBlankTitleAtSchemaLevel(t *testing.T) {
	s := NewSQLiteTodoStore(openTestDB(t), nil)

	// Built directly to reach the schema CHECK constraint.
	_, err := s.Save(context.Background(), &domain.Todo{Title: "   "})
	require.Error(t, err)

	var storeErr *store.StoreError
	assert.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "save", storeErr.Operation)
	assert.True(t, errors.Is(err, store.ErrInvalidEntity))
}
