package llmcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_Deterministic(t *testing.T) {
	vars := map[string]string{"gap": "kubernetes", "entity": "Built Go services"}
	first := Fingerprint("tailoring", "v1", vars)
	second := Fingerprint("tailoring", "v1", map[string]string{"entity": "Built Go services", "gap": "kubernetes"})
	assert.Equal(t, first, second)
}

func TestFingerprint_SensitiveToEveryInput(t *testing.T) {
	base := Fingerprint("tailoring", "v1", map[string]string{"gap": "kubernetes"})

	assert.NotEqual(t, base, Fingerprint("analyzing", "v1", map[string]string{"gap": "kubernetes"}))
	assert.NotEqual(t, base, Fingerprint("tailoring", "v2", map[string]string{"gap": "kubernetes"}))
	assert.NotEqual(t, base, Fingerprint("tailoring", "v1", map[string]string{"gap": "terraform"}))
	assert.NotEqual(t, base, Fingerprint("tailoring", "v1", nil))
}

func TestGetOrFill_MissThenHit(t *testing.T) {
	cache := New(nil)
	ctx := context.Background()

	calls := 0
	fill := func(ctx context.Context) (string, error) {
		calls++
		return "response", nil
	}

	response, cached, err := cache.GetOrFill(ctx, "fp-1", fill)
	require.NoError(t, err)
	assert.Equal(t, "response", response)
	assert.False(t, cached)

	response, cached, err = cache.GetOrFill(ctx, "fp-1", fill)
	require.NoError(t, err)
	assert.Equal(t, "response", response)
	assert.True(t, cached)
	assert.Equal(t, 1, calls)
}

func TestGetOrFill_ConcurrentCallsCollapse(t *testing.T) {
	cache := New(nil)
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	fill := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			response, _, err := cache.GetOrFill(ctx, "fp-shared", fill)
			assert.NoError(t, err)
			results[i] = response
		}(i)
	}

	// Let all workers pile onto the flight before releasing the fill
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
}

func TestGetOrFill_ErrorNotCached(t *testing.T) {
	cache := New(nil)
	ctx := context.Background()

	calls := 0
	failing := func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("provider down")
		}
		return "recovered", nil
	}

	_, _, err := cache.GetOrFill(ctx, "fp-err", failing)
	require.Error(t, err)

	response, cached, err := cache.GetOrFill(ctx, "fp-err", failing)
	require.NoError(t, err)
	assert.Equal(t, "recovered", response)
	assert.False(t, cached)
	assert.Equal(t, 2, calls)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "fp", "value"))

	_, ok, err := store.Get(ctx, "fp")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, err = store.Get(ctx, "fp")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Invalidate(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "fp", "value"))
	require.NoError(t, store.Invalidate(ctx, "fp"))

	_, ok, err := store.Get(ctx, "fp")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}
