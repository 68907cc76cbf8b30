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

package storage

import (
	"context"

	"github.com/poiesic/toolsearch/core"
)

// EmbeddingCache stores embedding vectors keyed by content ID.
// Implementations must be thread-safe and support concurrent access.
type EmbeddingCache interface {
	// GetMany looks up the vectors for the given keys.
	// The returned map only holds keys that were found; missing keys are
	// not an error.
	GetMany(ctx context.Context, keys ...core.ID) (map[core.ID][]float32, error)

	// PutMany stores the given vectors, replacing existing entries.
	PutMany(ctx context.Context, entries map[core.ID][]float32) error

	// Count returns the number of cached vectors.
	Count(ctx context.Context) (int, error)

	// Close releases resources held by the cache.
	Close() error
}
