package cached

import (
	"errors"

	"github.com/poiesic/toolsearch/ai"
	"github.com/poiesic/toolsearch/storage"
)

// Provider wraps an ai.Provider so its embedder goes through a cache.
// Closing the provider closes the cache and the wrapped provider.
type Provider struct {
	inner    ai.Provider
	cache    storage.EmbeddingCache
	embedder *Embedder
}

var _ ai.Provider = (*Provider)(nil)

// NewProvider wraps inner's embedder with cache.
func NewProvider(inner ai.Provider, cache storage.EmbeddingCache, opts ...Option) (*Provider, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}
	embedder, err := NewEmbedder(inner.Embedder(), cache, opts...)
	if err != nil {
		return nil, err
	}
	return &Provider{
		inner:    inner,
		cache:    cache,
		embedder: embedder,
	}, nil
}

// Embedder returns the caching embedder.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// CachedEmbedder returns the concrete caching embedder, for statistics.
func (p *Provider) CachedEmbedder() *Embedder {
	return p.embedder
}

// Close closes the cache and the wrapped provider.
func (p *Provider) Close() error {
	return errors.Join(p.cache.Close(), p.inner.Close())
}
