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

// Package storage provides the storage abstraction layer for toolsearch.
//
// The search index itself lives in memory and is rebuilt on every start.
// Storage is used for the embedding cache, which remembers vectors that
// were already computed for a given model and text so that a reload only
// sends new or changed records to the embedding service.
//
// # Architecture
//
//   - EmbeddingCache: vector lookup and storage keyed by content ID
//   - VectorMUS: binary encoding of vectors, implementing mus.Serializer
//
// # Usage
//
// Open a persistent cache:
//
//	cache, err := badger.OpenEmbeddingCache("/path/to/cache", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cache.Close()
//
// Use in tests with in-memory storage:
//
//	cache, err := badger.NewMemoryCache()
//
// # Thread Safety
//
// All implementations must be safe for concurrent use.
package storage
