// Package storetest holds a behavioural test suite that every
// store.TodoRepository implementation must pass.
package storetest

import (
	"context"
	"testing"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty repository for one subtest.
type Factory func(t *testing.T) store.TodoRepository

// RunTodoRepositoryTests exercises the repository contract against
// repositories produced by newRepo.
func RunTodoRepositoryTests(t *testing.T, newRepo Factory) {
	t.Helper()

	t.Run("save assigns id", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		input := mustTodo(t, "", "  Acheter du lait ")
		saved, err := repo.Save(ctx, input)
		require.NoError(t, err)

		assert.NotEmpty(t, saved.ID)
		assert.Equal(t, "Acheter du lait", saved.Title)
		assert.False(t, saved.Done)
		assert.Empty(t, input.ID, "the argument must not be modified")
	})

	t.Run("save then find round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		saved, err := repo.Save(ctx, mustTodo(t, "", "Lire un livre"))
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, saved.ID, found.ID)
		assert.Equal(t, saved.Title, found.Title)
		assert.Equal(t, saved.Done, found.Done)
	})

	t.Run("find miss returns nil without error", func(t *testing.T) {
		repo := newRepo(t)

		found, err := repo.FindByID(context.Background(), "does-not-exist")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("save with id overwrites", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		saved, err := repo.Save(ctx, mustTodo(t, "", "draft"))
		require.NoError(t, err)

		saved.Title = "final"
		saved.Toggle()
		updated, err := repo.Save(ctx, saved)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, updated.ID)
		assert.True(t, updated.Done)

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1, "overwrite must not create a second record")
		assert.Equal(t, "final", all[0].Title)
		assert.True(t, all[0].Done)
	})

	t.Run("save with unknown id inserts", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		saved, err := repo.Save(ctx, mustTodo(t, "external-7", "imported"))
		require.NoError(t, err)
		assert.Equal(t, "external-7", saved.ID)

		found, err := repo.FindByID(ctx, "external-7")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "imported", found.Title)
	})

	t.Run("list preserves creation order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		empty, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, empty)

		titles := []string{"one", "two", "three", "four"}
		ids := make([]string, 0, len(titles))
		for _, title := range titles {
			saved, err := repo.Save(ctx, mustTodo(t, "", title))
			require.NoError(t, err)
			ids = append(ids, saved.ID)
		}

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, len(titles))
		for i, todo := range all {
			assert.Equal(t, ids[i], todo.ID)
			assert.Equal(t, titles[i], todo.Title)
		}
	})

	t.Run("returned values are copies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		saved, err := repo.Save(ctx, mustTodo(t, "", "stable"))
		require.NoError(t, err)
		saved.Title = "mutated"
		saved.Toggle()

		found, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "stable", found.Title)
		assert.False(t, found.Done)
	})
}

func mustTodo(t *testing.T, id, title string) *domain.Todo {
	t.Helper()
	todo, err := domain.NewTodo(id, title, false)
	require.NoError(t, err)
	return todo
}
