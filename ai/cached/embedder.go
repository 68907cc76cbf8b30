// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cached

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/poiesic/toolsearch/ai"
	"github.com/poiesic/toolsearch/core"
	"github.com/poiesic/toolsearch/storage"
)

// Option configures an Embedder.
type Option func(*Embedder) error

// WithModel namespaces cache entries by model so vectors from different
// models never mix.
func WithModel(model string) Option {
	return func(e *Embedder) error {
		e.model = model
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Embedder) error {
		if logger != nil {
			e.logger = logger
		}
		return nil
	}
}

// Embedder wraps an ai.Embedder with an embedding cache.
type Embedder struct {
	inner  ai.Embedder
	cache  storage.EmbeddingCache
	model  string
	logger *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

var _ ai.Embedder = (*Embedder)(nil)

// NewEmbedder creates a caching embedder around inner.
func NewEmbedder(inner ai.Embedder, cache storage.EmbeddingCache, opts ...Option) (*Embedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}
	if cache == nil {
		return nil, ErrCacheRequired
	}

	e := &Embedder{
		inner:  inner,
		cache:  cache,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "cached-embedder", "model", e.model)
	return e, nil
}

// Key returns the cache key for text under the configured model.
func (e *Embedder) Key(text string) core.ID {
	return core.IDFromContent(e.model + "\x00" + text)
}

// Stats returns the number of cache hits and misses served so far.
func (e *Embedder) Stats() (hits, misses int64) {
	return e.hits.Load(), e.misses.Load()
}

// EmbedText embeds a single text without consulting the cache.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return e.inner.EmbedText(ctx, text)
}

// EmbedTexts returns one vector per text, in input order. Only texts that
// are not cached are sent to the wrapped embedder, in a single call.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	keys := make([]core.ID, len(texts))
	for i, text := range texts {
		keys[i] = e.Key(text)
	}

	found, err := e.cache.GetMany(ctx, keys...)
	if err != nil {
		e.logger.Warn("embedding cache lookup failed, embedding all texts", "err", err)
		found = nil
	}

	vectors := make([][]float32, len(texts))
	missIdx := make(map[core.ID]int)
	var missTexts []string
	for i, key := range keys {
		if vector, ok := found[key]; ok {
			vectors[i] = vector
			continue
		}
		if _, queued := missIdx[key]; !queued {
			missIdx[key] = len(missTexts)
			missTexts = append(missTexts, texts[i])
		}
	}

	hits := int64(len(texts) - len(missTexts))
	e.hits.Add(hits)
	e.misses.Add(int64(len(missTexts)))
	e.logger.Debug("embedding cache lookup", "texts", len(texts), "hits", hits, "misses", len(missTexts))

	if len(missTexts) == 0 {
		return vectors, nil
	}

	embedded, err := e.inner.EmbedTexts(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(missTexts) {
		return nil, fmt.Errorf("%w: expected %d, received %d", ai.ErrEmbeddingCountMismatch, len(missTexts), len(embedded))
	}

	entries := make(map[core.ID][]float32, len(missTexts))
	for i, key := range keys {
		if vectors[i] != nil {
			continue
		}
		vector := embedded[missIdx[key]]
		vectors[i] = vector
		entries[key] = vector
	}

	if err := e.cache.PutMany(ctx, entries); err != nil {
		e.logger.Warn("failed to store embeddings in cache", "count", len(entries), "err", err)
	}

	return vectors, nil
}
