package mock

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/poiesic/toolsearch/core"
)

// ErrVocabularyFull is returned when a text introduces more distinct terms
// than the embedder has dimensions.
var ErrVocabularyFull = errors.New("vocabulary exceeds embedding dimension")

// VocabularyEmbedder is a deterministic bag-of-words embedder for tests.
//
// Every distinct lowercase term is assigned the next free dimension the first
// time it is seen, and a text is embedded as its unit-length term-frequency
// vector. Texts sharing terms therefore have positive cosine similarity and
// texts with no terms in common are exactly orthogonal. Assignments are never
// revised, so a text always maps to the same vector.
type VocabularyEmbedder struct {
	dim   int
	mu    sync.Mutex
	terms map[string]int
	calls int
}

// NewVocabularyEmbedder creates a vocabulary embedder producing vectors of size dim.
func NewVocabularyEmbedder(dim int) *VocabularyEmbedder {
	if dim < 1 {
		dim = DefaultDimension
	}
	return &VocabularyEmbedder{
		dim:   dim,
		terms: make(map[string]int),
	}
}

// EmbedText embeds a single text.
func (v *VocabularyEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++
	return v.embed(text)
}

// EmbedTexts embeds each text in order.
func (v *VocabularyEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := v.embed(text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}

// CallCount returns the number of EmbedText and EmbedTexts calls.
func (v *VocabularyEmbedder) CallCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.calls
}

// VocabularySize returns the number of distinct terms seen so far.
func (v *VocabularyEmbedder) VocabularySize() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.terms)
}

// embed must be called with the lock held.
func (v *VocabularyEmbedder) embed(text string) ([]float32, error) {
	vector := make([]float32, v.dim)
	for _, term := range Tokenize(text) {
		idx, ok := v.terms[term]
		if !ok {
			if len(v.terms) >= v.dim {
				return nil, ErrVocabularyFull
			}
			idx = len(v.terms)
			v.terms[term] = idx
		}
		vector[idx]++
	}
	return core.NormalizeVector(vector), nil
}

// Tokenize lowercases text and splits it on anything that is not a letter or digit.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
