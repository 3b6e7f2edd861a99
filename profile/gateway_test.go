package profile

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

// countingSource wraps a MemoryStore and counts fetches.
type countingSource struct {
	store   *MemoryStore
	fetches atomic.Int64
}

func (c *countingSource) FetchProfile(ctx context.Context, candidateID string) (string, error) {
	c.fetches.Add(1)
	return c.store.FetchProfile(ctx, candidateID)
}

func TestGateway_CacheMissFillsCache(t *testing.T) {
	source := &countingSource{store: NewMemoryStore()}
	require.NoError(t, source.store.Put(context.Background(), "cand-1", "resume text"))

	cache := NewMemoryStore()
	gw := NewGateway(cache, source)

	text, err := gw.Fetch(context.Background(), "cand-1")
	require.NoError(t, err)
	assert.Equal(t, "resume text", text)
	assert.EqualValues(t, 1, source.fetches.Load())

	// Second fetch is served from the cache.
	text, err = gw.Fetch(context.Background(), "cand-1")
	require.NoError(t, err)
	assert.Equal(t, "resume text", text)
	assert.EqualValues(t, 1, source.fetches.Load())
}

func TestGateway_NotFound(t *testing.T) {
	gw := NewGateway(NewMemoryStore(), NewMemoryStore())

	_, err := gw.Fetch(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGateway_InvalidID(t *testing.T) {
	gw := NewGateway(nil, NewMemoryStore())

	_, err := gw.Fetch(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestGateway_NilCacheReadsSource(t *testing.T) {
	source := &countingSource{store: NewMemoryStore()}
	require.NoError(t, source.store.Put(context.Background(), "cand-1", "text"))

	gw := NewGateway(nil, source)

	text, err := gw.Fetch(context.Background(), "cand-1")
	require.NoError(t, err)
	assert.Equal(t, "text", text)
}

// blockingSource blocks fetches until released, to exercise coalescing.
type blockingSource struct {
	entered chan struct{}
	release chan struct{}
	fetches atomic.Int64
}

func (b *blockingSource) FetchProfile(ctx context.Context, candidateID string) (string, error) {
	b.fetches.Add(1)
	close(b.entered)
	<-b.release
	return "slow profile", nil
}

func TestGateway_CoalescesConcurrentFetches(t *testing.T) {
	source := &blockingSource{entered: make(chan struct{}), release: make(chan struct{})}
	gw := NewGateway(nil, source)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text, err := gw.Fetch(context.Background(), "cand-1")
			require.NoError(t, err)
			results[i] = text
		}(i)
	}

	// Wait until the first caller holds the flight, give the rest a moment to
	// join it, then let the fetch finish.
	<-source.entered
	time.Sleep(20 * time.Millisecond)
	close(source.release)
	wg.Wait()

	assert.EqualValues(t, 1, source.fetches.Load(), "concurrent fetches were not coalesced")
	for _, r := range results {
		assert.Equal(t, "slow profile", r)
	}
}

func TestGateway_SourceErrorPropagates(t *testing.T) {
	boom := errors.New("store down")
	gw := NewGateway(nil, sourceFunc(func(context.Context, string) (string, error) {
		return "", boom
	}))

	_, err := gw.Fetch(context.Background(), "cand-1")
	assert.ErrorIs(t, err, boom)
}

type sourceFunc func(ctx context.Context, candidateID string) (string, error)

func (f sourceFunc) FetchProfile(ctx context.Context, candidateID string) (string, error) {
	return f(ctx, candidateID)
}
