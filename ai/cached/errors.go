package cached

import "errors"

var (
	// ErrEmbedderRequired is returned when no embedder is given to wrap.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrCacheRequired is returned when no cache is given.
	ErrCacheRequired = errors.New("embedding cache is required")
)
