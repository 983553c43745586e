package resources

import (
	"errors"
	"sync"
	"testing"

	"github.com/atgiannako/neuroner/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingCache(t *testing.T) {
	params := writeFixture(t, t.TempDir())
	cache, err := NewEmbeddingCache(2)
	require.NoError(t, err)

	first, err := cache.Get(params)
	require.NoError(t, err)
	// The vocabulary flags do not change what is loaded.
	flagged := params
	flagged.CheckForLowercase = true
	second, err := cache.Get(flagged)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	hits, misses := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
	assert.Equal(t, 1, cache.Len())

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

func TestEmbeddingCacheEvicts(t *testing.T) {
	loads := 0
	cache, err := NewEmbeddingCache(1)
	require.NoError(t, err)
	cache.load = func(params types.Parameters) (Embeddings, error) {
		loads++
		return Embeddings{params.Language: types.Vector{1}}, nil
	}
	english := fixtureParameters("/embeddings")
	german := english
	german.Language = "de"

	_, err = cache.Get(english)
	require.NoError(t, err)
	_, err = cache.Get(german)
	require.NoError(t, err)
	embeddings, err := cache.Get(english)
	require.NoError(t, err)

	assert.True(t, embeddings.Contains("en"))
	assert.Equal(t, 3, loads)
	assert.Equal(t, 1, cache.Len())
	hits, misses := cache.Stats()
	assert.Equal(t, 0, hits)
	assert.Equal(t, 3, misses)

	// The table loaded last is still resident.
	_, err = cache.Get(english)
	require.NoError(t, err)
	assert.Equal(t, 3, loads)
}

func TestEmbeddingCacheConcurrentGet(t *testing.T) {
	params := writeFixture(t, t.TempDir())
	cache, err := NewEmbeddingCache(2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			embeddings, getErr := cache.Get(params)
			assert.NoError(t, getErr)
			assert.True(t, embeddings.Contains("the"))
			cache.Len()
			cache.Stats()
		}()
	}
	wg.Wait()

	hits, misses := cache.Stats()
	assert.Equal(t, 1, misses)
	assert.Equal(t, 7, hits)
	assert.Equal(t, 1, cache.Len())
}

func TestEmbeddingCacheDoesNotCacheFailures(t *testing.T) {
	cache, err := NewEmbeddingCache(0)
	require.NoError(t, err)
	failures := 0
	cache.load = func(types.Parameters) (Embeddings, error) {
		failures++
		return nil, errors.New("boom")
	}
	params := fixtureParameters("/embeddings")
	_, err = cache.Get(params)
	assert.Error(t, err)
	_, err = cache.Get(params)
	assert.Error(t, err)
	assert.Equal(t, 2, failures)
	assert.Equal(t, 0, cache.Len())
}
