package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
//
// Both methods must be deterministic for a fixed configuration: the same text
// yields the same vector. Vectors from different models or versions are not
// comparable.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Used for queries.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains exactly one embedding per input text, in the
	// same order as the input texts. Callers rely on this to align rows with
	// the records they were computed from.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider owns the embedding service for the lifetime of the process.
// A provider is created once, passed by reference to the components that
// need it and closed on shutdown.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
