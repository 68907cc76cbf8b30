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

package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/poiesic/toolsearch/ai"
	"github.com/poiesic/toolsearch/core"
	"github.com/poiesic/toolsearch/ranking"
)

// Status describes the currently served snapshot.
type Status struct {
	Ready       bool
	RecordCount int
	BuiltAt     time.Time
}

// snapshot is an immutable (corpus, matrix) pair. Row i of matrix is the
// embedding of corpus[i].
type snapshot struct {
	corpus  core.Corpus
	matrix  [][]float32
	builtAt time.Time
}

func (s *snapshot) ready() bool {
	return s != nil && len(s.corpus) > 0
}

// Index serves semantic queries over a corpus.
type Index struct {
	embedder ai.Embedder
	strategy ranking.Strategy
	logger   *slog.Logger

	buildMu sync.Mutex
	current atomic.Pointer[snapshot]
}

// Option configures an Index.
type Option func(*Index) error

// WithStrategy sets the ranking strategy.
// Default is ranking.Cosine.
func WithStrategy(strategy ranking.Strategy) Option {
	return func(i *Index) error {
		if strategy == nil {
			strategy = ranking.Default
		}
		i.strategy = strategy
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
		return nil
	}
}

// NewIndex creates an empty, not ready index.
func NewIndex(embedder ai.Embedder, opts ...Option) (*Index, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	i := &Index{
		embedder: embedder,
		strategy: ranking.Default,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	i.logger = i.logger.With("component", "index")
	return i, nil
}

// Build embeds the corpus and swaps it in as the served snapshot.
//
// An empty corpus publishes a not ready snapshot without calling the
// embedder. On error the previously served snapshot stays in place.
// Builds are serialized; queries are never blocked.
func (i *Index) Build(ctx context.Context, corpus core.Corpus) error {
	i.buildMu.Lock()
	defer i.buildMu.Unlock()

	if corpus.IsEmpty() {
		i.current.Store(&snapshot{builtAt: time.Now().UTC()})
		i.logger.Warn("empty corpus, index not ready")
		return nil
	}

	start := time.Now()
	i.logger.Info("building index", "records", len(corpus))

	matrix, err := i.embedder.EmbedTexts(ctx, corpus.Texts())
	if err != nil {
		i.logger.Error("failed to embed corpus", "records", len(corpus), "err", err)
		return err
	}
	if err := validateMatrix(matrix, len(corpus)); err != nil {
		i.logger.Error("embedder returned an unusable matrix", "err", err)
		return err
	}

	// Copy the corpus so later changes to the caller's slice cannot leak
	// into a published snapshot.
	owned := make(core.Corpus, len(corpus))
	copy(owned, corpus)

	i.current.Store(&snapshot{
		corpus:  owned,
		matrix:  matrix,
		builtAt: time.Now().UTC(),
	})
	i.logger.Info("index ready", "records", len(owned), "dimension", len(matrix[0]), "elapsed", time.Since(start))
	return nil
}

func validateMatrix(matrix [][]float32, rows int) error {
	if len(matrix) != rows {
		return fmt.Errorf("%w: %d vectors for %d records", ErrMatrixMismatch, len(matrix), rows)
	}
	dim := len(matrix[0])
	if dim == 0 {
		return fmt.Errorf("%w: row 0 is empty", ErrInconsistentDimension)
	}
	for r, row := range matrix {
		if len(row) != dim {
			return fmt.Errorf("%w: row %d has %d dimensions, expected %d", ErrInconsistentDimension, r, len(row), dim)
		}
	}
	return nil
}

// Status reports whether the index can serve queries and how many records it holds.
func (i *Index) Status() Status {
	s := i.current.Load()
	if s == nil {
		return Status{}
	}
	return Status{
		Ready:       s.ready(),
		RecordCount: len(s.corpus),
		BuiltAt:     s.builtAt,
	}
}

// Corpus returns the records of the served snapshot. Callers must not modify it.
func (i *Index) Corpus() core.Corpus {
	s := i.current.Load()
	if s == nil {
		return nil
	}
	return s.corpus
}

// Query returns up to topK records scoring above threshold for text.
func (i *Index) Query(ctx context.Context, text string, topK int, threshold float32) []core.RankedResult {
	return i.QueryWithMonitor(ctx, text, topK, threshold, nil)
}

// QueryWithMonitor is Query with callbacks at each stage.
// The monitor is not called for queries rejected before embedding.
func (i *Index) QueryWithMonitor(ctx context.Context, text string, topK int, threshold float32, monitor QueryMonitor) (results []core.RankedResult) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	query := strings.TrimSpace(text)
	if query == "" || topK < 1 {
		return []core.RankedResult{}
	}

	s := i.current.Load()
	if !s.ready() {
		i.logger.Debug("query against index that is not ready", "query", query)
		return []core.RankedResult{}
	}

	var queryErr error
	defer func() {
		if r := recover(); r != nil {
			queryErr = fmt.Errorf("panic during query: %v", r)
		}
		if queryErr != nil {
			i.logger.Error("search failed", "query", query, "err", queryErr)
			results = []core.RankedResult{}
		}
		monitor.Finish(results, queryErr)
	}()
	monitor.Start(query)

	vector, err := i.embedder.EmbedText(ctx, query)
	if err != nil {
		queryErr = fmt.Errorf("embedding query: %w", err)
		return nil
	}
	monitor.AfterQueryEmbedding(vector)

	ranked, err := i.strategy.Rank(vector, s.matrix, s.corpus, topK, threshold)
	if err != nil {
		queryErr = fmt.Errorf("ranking: %w", err)
		return nil
	}
	if ranked == nil {
		ranked = []core.RankedResult{}
	}
	monitor.AfterRanking(ranked)

	i.logger.Debug("query complete", "query", query, "results", len(ranked))
	return ranked
}
