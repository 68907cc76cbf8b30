package ai

import "errors"

var (
	// ErrEmbeddingCountMismatch is returned when a batch embedding call yields
	// a different number of vectors than texts it was given.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")

	// ErrEmptyEmbedding is returned when the service answers with no vector.
	ErrEmptyEmbedding = errors.New("embedding service returned no vector")
)
