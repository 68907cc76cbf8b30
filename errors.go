package toolsearch

import "errors"

var (
	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")

	// ErrInvalidConfig is returned when the engine configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
