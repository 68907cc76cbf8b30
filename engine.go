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

package toolsearch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poiesic/toolsearch/ai"
	"github.com/poiesic/toolsearch/ai/cached"
	"github.com/poiesic/toolsearch/ai/openai"
	"github.com/poiesic/toolsearch/core"
	"github.com/poiesic/toolsearch/ingestion"
	"github.com/poiesic/toolsearch/ranking"
	"github.com/poiesic/toolsearch/search"
	"github.com/poiesic/toolsearch/storage/badger"
)

// Engine loads tool records, indexes them and answers searches.
type Engine struct {
	provider ai.Provider
	config   *Config
	loader   *ingestion.Loader
	index    *search.Index
	logger   *slog.Logger

	reloadMu sync.Mutex
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	config     *Config
	aiConfig   *ai.Config
	cacheDir   string
	logger     *slog.Logger
	loaderOpts []ingestion.Option
	indexOpts  []search.Option
}

// WithConfig sets the search and data configuration.
func WithConfig(config *Config) Option {
	return func(o *engineOptions) {
		o.config = config
	}
}

// WithAIConfig sets the embedding service configuration used by Open.
func WithAIConfig(config *ai.Config) Option {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithCacheDir makes Open keep an embedding cache in dir so restarts only
// embed records that changed.
func WithCacheDir(dir string) Option {
	return func(o *engineOptions) {
		o.cacheDir = dir
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithLoaderOptions passes extra options to the corpus loader.
func WithLoaderOptions(opts ...ingestion.Option) Option {
	return func(o *engineOptions) {
		o.loaderOpts = append(o.loaderOpts, opts...)
	}
}

// WithIndexOptions passes extra options to the search index.
func WithIndexOptions(opts ...search.Option) Option {
	return func(o *engineOptions) {
		o.indexOpts = append(o.indexOpts, opts...)
	}
}

func applyOptions(opts []Option) *engineOptions {
	options := &engineOptions{
		config:   DefaultConfig(),
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.config == nil {
		options.config = DefaultConfig()
	}
	if options.aiConfig == nil {
		options.aiConfig = ai.DefaultConfig()
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	return options
}

// Open creates an Engine backed by an OpenAI-compatible embedding service,
// optionally with a persistent embedding cache. The engine owns the provider
// and closes it on Close. Call Reload before searching.
func Open(opts ...Option) (*Engine, error) {
	options := applyOptions(opts)

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		return nil, err
	}

	if options.cacheDir != "" {
		cache, err := badger.OpenEmbeddingCacheWithLogger(options.cacheDir, false, options.logger)
		if err != nil {
			provider.Close()
			return nil, err
		}
		wrapped, err := cached.NewProvider(provider, cache,
			cached.WithModel(options.aiConfig.EmbeddingModel),
			cached.WithLogger(options.logger),
		)
		if err != nil {
			cache.Close()
			provider.Close()
			return nil, err
		}
		provider = wrapped
	}

	engine, err := newEngine(provider, options)
	if err != nil {
		provider.Close()
		return nil, err
	}
	return engine, nil
}

// NewEngine creates an Engine around an existing provider.
// The engine takes ownership of the provider and closes it on Close.
func NewEngine(provider ai.Provider, opts ...Option) (*Engine, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}
	return newEngine(provider, applyOptions(opts))
}

func newEngine(provider ai.Provider, options *engineOptions) (*Engine, error) {
	// Work on a copy so callers can keep reusing their Config.
	config := *options.config
	if err := config.Validate(); err != nil {
		return nil, err
	}
	strategy, err := ranking.ByName(config.Strategy)
	if err != nil {
		return nil, err
	}

	logger := options.logger

	loaderOpts := append([]ingestion.Option{
		ingestion.WithColumns(config.Columns),
		ingestion.WithLogger(logger),
	}, options.loaderOpts...)
	loader, err := ingestion.NewLoader(loaderOpts...)
	if err != nil {
		return nil, err
	}

	indexOpts := append([]search.Option{
		search.WithStrategy(strategy),
		search.WithLogger(logger),
	}, options.indexOpts...)
	index, err := search.NewIndex(provider.Embedder(), indexOpts...)
	if err != nil {
		loader.Release()
		return nil, err
	}

	return &Engine{
		provider: provider,
		config:   &config,
		loader:   loader,
		index:    index,
		logger:   logger.With("component", "engine"),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// Reload rescans the data folder, reloads every data file and rebuilds the
// index. The new index replaces the old one only when the build succeeds;
// queries keep being served from the old index meanwhile.
func (e *Engine) Reload(ctx context.Context) (*ingestion.Result, error) {
	sources, err := ingestion.Discover(e.config.DataFolder)
	if err != nil {
		e.logger.Error("failed to scan data folder", "folder", e.config.DataFolder, "err", err)
		return nil, err
	}
	if len(sources) == 0 {
		e.logger.Warn("no data files found", "folder", e.config.DataFolder)
	}
	return e.ReloadFrom(ctx, sources...)
}

// ReloadFrom is Reload with an explicit list of sources.
func (e *Engine) ReloadFrom(ctx context.Context, sources ...ingestion.Source) (*ingestion.Result, error) {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	result := e.loader.Load(ctx, sources...)
	if err := e.index.Build(ctx, result.Corpus); err != nil {
		return result, err
	}

	if hits, misses, ok := e.cacheStats(); ok {
		e.logger.Info("embedding cache", "hits", hits, "misses", misses)
	}
	return result, nil
}

func (e *Engine) cacheStats() (hits, misses int64, ok bool) {
	p, ok := e.provider.(*cached.Provider)
	if !ok {
		return 0, 0, false
	}
	hits, misses = p.CachedEmbedder().Stats()
	return hits, misses, true
}

// Search returns the configured number of best matches for query.
// It never fails; problems are logged and yield an empty result.
func (e *Engine) Search(ctx context.Context, query string) []core.RankedResult {
	return e.index.Query(ctx, query, e.config.TopK, e.config.Threshold)
}

// SearchTopK is Search with an explicit result limit.
func (e *Engine) SearchTopK(ctx context.Context, query string, topK int) []core.RankedResult {
	return e.index.Query(ctx, query, topK, e.config.Threshold)
}

// SearchWithMonitor is Search with query stage callbacks.
func (e *Engine) SearchWithMonitor(ctx context.Context, query string, monitor search.QueryMonitor) []core.RankedResult {
	return e.index.QueryWithMonitor(ctx, query, e.config.TopK, e.config.Threshold, monitor)
}

// Status reports whether the engine has an index to search.
func (e *Engine) Status() search.Status {
	return e.index.Status()
}

// Close releases the loader and closes the provider.
func (e *Engine) Close() error {
	e.loader.Release()
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
		return err
	}
	return nil
}
