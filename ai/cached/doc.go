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

// Package cached provides an ai.Embedder decorator that remembers corpus
// embeddings in a storage.EmbeddingCache.
//
// Entries are keyed by the embedding model and the exact text, so a reload
// of an unchanged corpus makes no calls to the embedding service and an edited
// record only re-embeds its own text. Query embeddings pass straight through.
//
// The cache is advisory. Lookup or write failures are logged and the call
// falls back to the wrapped embedder; they never fail an embedding request.
//
//	cache, _ := badger.OpenEmbeddingCache(dir, false)
//	provider, _ := cached.NewProvider(inner, cache, cached.WithModel("all-minilm"))
package cached
