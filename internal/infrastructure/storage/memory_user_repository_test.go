package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restoration-lab/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreatesUser(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, u.State)
	require.Equal(t, int64(10), u.ChatID)
}

func TestMemoryUserRepository_GetReturnsCopy(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	u.SetState(entity.StateProcessing)

	stored, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, stored.State)
}

func TestMemoryUserRepository_UpdateStateUnconditional(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u, ok, err := repo.UpdateState(ctx, 1, 10, nil, entity.StateAwaitingPhoto)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entity.StateAwaitingPhoto, u.State)

	stored, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, stored.State)
}

func TestMemoryUserRepository_UpdateStateConditional(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u, ok, err := repo.UpdateState(ctx, 1, 10, []entity.UserState{entity.StateProcessing}, entity.StateMainMenu)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, entity.StateMainMenu, u.State)

	_, _, err = repo.UpdateState(ctx, 1, 10, nil, entity.StateAwaitingPhoto)
	require.NoError(t, err)

	u, ok, err = repo.UpdateState(ctx, 1, 10, []entity.UserState{entity.StateProcessing}, entity.StateMainMenu)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, entity.StateAwaitingPhoto, u.State)
}

func TestMemoryUserRepository_UpdateStateSingleWinner(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()
	_, _, err := repo.UpdateState(ctx, 5, 50, nil, entity.StateAwaitingPhoto)
	require.NoError(t, err)

	from := []entity.UserState{entity.StateAwaitingPhoto}
	var started atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := repo.UpdateState(ctx, 5, 50, from, entity.StateProcessing)
			assert.NoError(t, err)
			if ok {
				started.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), started.Load())
}
