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

// Package search provides the in-memory semantic search index.
//
// An Index owns a corpus and the embedding matrix computed from it. Build
// embeds every record in a single batch call and publishes the pair as an
// immutable snapshot; queries read whichever snapshot is current without
// locking, so a rebuild never exposes a partial index and in-flight queries
// finish against the snapshot they started on.
//
// Query never fails. Blank queries, unready indexes, embedding failures and
// ranking failures all produce an empty result, and failures are logged.
// Scoring and selection are delegated to a ranking.Strategy.
package search
