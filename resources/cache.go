package resources

import (
	"sync"

	"github.com/atgiannako/neuroner/types"
	lru "github.com/hashicorp/golang-lru"
)

const EMBEDDING_CACHE_SZ = 4

// EmbeddingCache memoizes LoadPretrainedTokenEmbeddings per embedding
// location, evicting the least recently used table. Loading stays a pure
// function of the parameters; callers that want to share tables across
// calls hold an EmbeddingCache. All methods are safe for concurrent use.
type EmbeddingCache struct {
	cache  *lru.Cache
	load   func(types.Parameters) (Embeddings, error)
	mu     sync.Mutex
	hits   int
	misses int
}

// NewEmbeddingCache returns a cache holding at most `size` embedding
// tables. A non-positive size uses EMBEDDING_CACHE_SZ.
func NewEmbeddingCache(size int) (*EmbeddingCache, error) {
	if size <= 0 {
		size = EMBEDDING_CACHE_SZ
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &EmbeddingCache{
		cache: cache,
		load:  LoadPretrainedTokenEmbeddings,
	}, nil
}

// cacheKey identifies the files a parameter record loads from; the
// vocabulary check flags do not affect loading.
func cacheKey(params types.Parameters) string {
	return GetVocabFilePath(params) + "\x00" + GetEmbeddingFilePath(params)
}

// Get returns the embeddings for `params`, loading them on first use.
// Failed loads are not cached.
func (ec *EmbeddingCache) Get(params types.Parameters) (Embeddings, error) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	key := cacheKey(params)
	if cached, ok := ec.cache.Get(key); ok {
		ec.hits++
		return cached.(Embeddings), nil
	}
	ec.misses++
	embeddings, err := ec.load(params)
	if err != nil {
		return nil, err
	}
	ec.cache.Add(key, embeddings)
	return embeddings, nil
}

// Purge drops every cached table.
func (ec *EmbeddingCache) Purge() {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.cache.Purge()
}

// Len returns the number of cached tables.
func (ec *EmbeddingCache) Len() int {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.cache.Len()
}

// Stats returns the number of Get calls served from the cache and the
// number that had to load.
func (ec *EmbeddingCache) Stats() (hits int, misses int) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.hits, ec.misses
}
