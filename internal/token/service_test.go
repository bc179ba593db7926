package token_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bouzuya/pushrelay/internal/token"
)

func TestService_CreateAndGet(t *testing.T) {
	service := token.NewService(token.NewInMemoryRepository())
	ctx := context.Background()

	id, err := service.Create(ctx, "device-token-abc")
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.NotEqual(t, "device-token-abc", id, "registration ID must be distinct from the push token")
	assert.Len(t, id, 72, "ID is 36 random bytes hex-encoded")

	got, err := service.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "device-token-abc", got.Token)
	assert.NotZero(t, got.CreatedAt)
}

func TestService_CreateGeneratesDistinctIDs(t *testing.T) {
	service := token.NewService(token.NewInMemoryRepository())
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := service.Create(ctx, "same-token")
		require.NoError(t, err)
		assert.False(t, seen[id], "IDs must be unique")
		seen[id] = true
	}
}

func TestService_DeleteIdempotent(t *testing.T) {
	service := token.NewService(token.NewInMemoryRepository())
	ctx := context.Background()

	id, err := service.Create(ctx, "device-token")
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, id))
	require.NoError(t, service.Delete(ctx, id))
	require.NoError(t, service.Delete(ctx, "unknown-id"))
}

func TestService_ResolveDropsUnknown(t *testing.T) {
	service := token.NewService(token.NewInMemoryRepository())
	ctx := context.Background()

	id, err := service.Create(ctx, "device-token")
	require.NoError(t, err)

	resolved, err := service.Resolve(ctx, []string{id, "unknown-id"})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, id, resolved[0].ID)
}

func TestService_ConcurrentCreate(t *testing.T) {
	service := token.NewService(token.NewInMemoryRepository())
	ctx := context.Background()

	const n = 50

	var wg sync.WaitGroup
	ids := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = service.Create(ctx, "concurrent-token")
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[ids[i]])
		seen[ids[i]] = true
	}

	items, err := service.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, n)
	for _, it := range items {
		assert.True(t, seen[it.ID])
	}
}
