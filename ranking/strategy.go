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

package ranking

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/poiesic/toolsearch/core"
)

// Strategy ranks corpus records against a query vector.
type Strategy interface {
	Rank(query []float32, matrix [][]float32, corpus core.Corpus, topK int, threshold float32) ([]core.RankedResult, error)
}

// StrategyFunc adapts an ordinary function to the Strategy interface.
type StrategyFunc func(query []float32, matrix [][]float32, corpus core.Corpus, topK int, threshold float32) ([]core.RankedResult, error)

// Rank calls f.
func (f StrategyFunc) Rank(query []float32, matrix [][]float32, corpus core.Corpus, topK int, threshold float32) ([]core.RankedResult, error) {
	return f(query, matrix, corpus, topK, threshold)
}

// ScoreFunc computes the similarity of two vectors of equal length.
type ScoreFunc func(a, b []float32) float32

// Cosine ranks by cosine similarity. Zero-magnitude vectors score 0.
var Cosine = BruteForce("cosine", CosineSimilarity)

// DotProduct ranks by the raw dot product.
var DotProduct = BruteForce("dot", core.Dot)

// Default is the strategy used when none is configured.
var Default = Cosine

// ByName resolves a strategy from its configuration name.
func ByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cosine":
		return Cosine, nil
	case "dot", "dotproduct", "dot-product":
		return DotProduct, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// CosineSimilarity returns the cosine of the angle between a and b in [-1, 1].
func CosineSimilarity(a, b []float32) float32 {
	magA := core.Magnitude(a)
	magB := core.Magnitude(b)
	if magA == 0 || magB == 0 {
		return 0
	}
	return core.Dot(a, b) / (magA * magB)
}

// BruteForce builds a Strategy that scores every row with score and
// applies the package selection rules.
func BruteForce(name string, score ScoreFunc) Strategy {
	return &bruteForce{name: name, score: score}
}

type bruteForce struct {
	name  string
	score ScoreFunc
}

func (b *bruteForce) String() string {
	return b.name
}

func (b *bruteForce) Rank(query []float32, matrix [][]float32, corpus core.Corpus, topK int, threshold float32) ([]core.RankedResult, error) {
	if len(matrix) != len(corpus) {
		return nil, fmt.Errorf("%w: %d rows, %d records", ErrRowCountMismatch, len(matrix), len(corpus))
	}
	if topK < 1 || len(matrix) == 0 {
		return []core.RankedResult{}, nil
	}

	type candidate struct {
		index int
		score float32
	}
	candidates := make([]candidate, 0, len(matrix))
	for i, row := range matrix {
		if len(row) != len(query) {
			return nil, fmt.Errorf("%w: query has %d dimensions, row %d has %d", ErrDimensionMismatch, len(query), i, len(row))
		}
		s := b.score(query, row)
		if s > threshold {
			candidates = append(candidates, candidate{index: i, score: s})
		}
	}

	// Candidates are in corpus order, so a stable sort keeps ties in corpus order.
	slices.SortStableFunc(candidates, func(x, y candidate) int {
		return cmp.Compare(y.score, x.score)
	})
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	results := make([]core.RankedResult, len(candidates))
	for i, c := range candidates {
		results[i] = core.RankedResult{
			Record: corpus[c.index],
			Score:  c.score,
		}
	}
	return results, nil
}
