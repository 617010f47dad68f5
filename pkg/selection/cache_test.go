package selection

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const def = "General Support"

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()

	c, err := NewCache(ttl)
	require.NoError(t, err, "Failed to create cache")
	t.Cleanup(func() {
		require.NoError(t, c.Close())
	})
	return c
}

func TestCache_TakeOrDefault_NoSelection(t *testing.T) {
	c := newTestCache(t, time.Minute)

	require.Equal(t, def, c.TakeOrDefault("u1", def))
	require.Equal(t, def, c.TakeOrDefault("u1", def))
}

func TestCache_TakeOrDefault_ConsumesOnce(t *testing.T) {
	c := newTestCache(t, time.Minute)

	require.NoError(t, c.Set("u1", "Billing"))
	require.Equal(t, 1, c.Len())

	require.Equal(t, "Billing", c.TakeOrDefault("u1", def))
	require.Equal(t, def, c.TakeOrDefault("u1", def))
	require.Equal(t, 0, c.Len())
}

func TestCache_Set_LastWriteWins(t *testing.T) {
	c := newTestCache(t, time.Minute)

	require.NoError(t, c.Set("u1", "Billing"))
	require.NoError(t, c.Set("u1", "Technical"))
	require.NoError(t, c.Set("u2", "Billing"))

	require.Equal(t, "Technical", c.TakeOrDefault("u1", def))
	require.Equal(t, "Billing", c.TakeOrDefault("u2", def))
}

func TestCache_ConcurrentUsers(t *testing.T) {
	c := newTestCache(t, time.Minute)

	users := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			require.NoError(t, c.Set(u, "cat-"+u))
		}(u)
	}
	wg.Wait()

	for _, u := range users {
		require.Equal(t, "cat-"+u, c.TakeOrDefault(u, def))
	}
}

func TestCache_ConcurrentTake(t *testing.T) {
	c := newTestCache(t, time.Minute)
	require.NoError(t, c.Set("u1", "Billing"))

	const takers = 16
	results := make(chan string, takers)

	var wg sync.WaitGroup
	for i := 0; i < takers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- c.TakeOrDefault("u1", def)
		}()
	}
	wg.Wait()
	close(results)

	got := 0
	for r := range results {
		if r == "Billing" {
			got++
		}
	}
	require.Equal(t, 1, got, "the selection must be handed out exactly once")
}
