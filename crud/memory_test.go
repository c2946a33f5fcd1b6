package crud

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	ID   int
	Name string
}

func newUsers(t *testing.T, n int) *MemoryRepository[user, int] {
	t.Helper()
	repo := NewMemoryRepository(func(u user) int { return u.ID })
	for i := 1; i <= n; i++ {
		_, err := repo.Save(context.Background(), user{ID: i, Name: fmt.Sprintf("user%d", i)})
		require.NoError(t, err)
	}
	return repo
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := newUsers(t, 3)

	t.Run("FindByID", func(t *testing.T) {
		got, err := repo.FindByID(ctx, 2)
		require.NoError(t, err)
		v, ok := got.Get()
		require.True(t, ok)
		assert.Equal(t, "user2", v.Name)

		got, err = repo.FindByID(ctx, 42)
		require.NoError(t, err)
		assert.False(t, got.IsPresent())
	})

	t.Run("Save replaces in place", func(t *testing.T) {
		_, err := repo.Save(ctx, user{ID: 1, Name: "renamed"})
		require.NoError(t, err)
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []user{{1, "renamed"}, {2, "user2"}, {3, "user3"}}, all)
	})

	t.Run("FindPage", func(t *testing.T) {
		page, err := repo.FindPage(ctx, PageRequestOf(1, 2))
		require.NoError(t, err)
		assert.Equal(t, []user{{3, "user3"}}, page.Content)
		assert.EqualValues(t, 3, page.Total)

		page, err = repo.FindPage(ctx, PageRequestOf(0, MaxPageSize))
		require.NoError(t, err)
		assert.Len(t, page.Content, 3)
	})

	t.Run("Filter", func(t *testing.T) {
		got, err := repo.Filter(ctx, func(u user) bool { return strings.HasPrefix(u.Name, "user") })
		require.NoError(t, err)
		assert.Equal(t, []user{{2, "user2"}, {3, "user3"}}, got)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		require.NoError(t, repo.DeleteByID(ctx, 2))
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []user{{1, "renamed"}, {3, "user3"}}, all)

		err = repo.DeleteByID(ctx, 2)
		require.ErrorIs(t, err, ErrNotFound)
		assert.True(t, IsNotFound(err))
		assert.Equal(t, "crud: user not found (id=2)", err.Error())
	})
}

func TestMemoryRepositoryCanceled(t *testing.T) {
	repo := newUsers(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Save(ctx, user{ID: 2})
	require.ErrorIs(t, err, context.Canceled)
	_, err = repo.FindByID(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
	_, err = repo.FindPage(ctx, Unpaged())
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, repo.DeleteByID(ctx, 1), context.Canceled)
}

func TestMemoryRepositoryConcurrent(t *testing.T) {
	repo := NewMemoryRepository(func(u user) int { return u.ID })
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Save(context.Background(), user{ID: i})
		}()
	}
	wg.Wait()
	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 50)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("user", nil)
	assert.Equal(t, "crud: user not found", err.Error())
	assert.Equal(t, "user", err.Label())
	assert.Nil(t, err.ID())
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsNotFound(errors.New("other")))
	assert.False(t, IsNotFound(nil))
}
