package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTodoServiceError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewTodoServiceError("op", "msg", nil))

	base := errors.New("underlying")
	err := NewTodoServiceError("list_todos", "failed to list", base)
	assert.True(t, errors.Is(err, base))
	assert.Equal(t, "todo service list_todos failed: failed to list: underlying", err.Error())

	nf := fmt.Errorf("lookup: %w", &NotFoundError{ID: "7"})
	err = NewTodoServiceError("toggle_todo", "x", nf)
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "todo 7 not found", err.Error())

	var svcErr *TodoServiceError
	assert.False(t, errors.As(err, &svcErr))
}

func TestKeyedMutexReleasesKeys(t *testing.T) {
	t.Parallel()

	k := newKeyedMutex()
	unlockA := k.Lock("a")
	unlockB := k.Lock("b")
	assert.Equal(t, 2, k.size())

	unlockA()
	unlockB()
	assert.Zero(t, k.size())
}
