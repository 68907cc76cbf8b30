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

// Package toolsearch finds SDLC tool documentation by meaning.
//
// An Engine loads tool records (tool, action, summary and documentation
// link) from the spreadsheets in a data folder, embeds them once through an
// embedding service and answers free-text searches by ranking the records
// against the query embedding.
//
//	engine, err := toolsearch.Open(
//	    toolsearch.WithAIConfig(ai.NewConfig(ai.WithEmbeddingModel("all-minilm"))),
//	    toolsearch.WithConfig(toolsearch.NewConfig(toolsearch.WithDataFolder("data"))),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	if _, err := engine.Reload(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	for _, result := range engine.Search(ctx, "configure gitlab pipeline") {
//	    fmt.Println(result.Tool(), result.Action(), result.Score)
//	}
//
// Reload can be called at any time. Searches keep using the previous index
// until the new one is completely built.
package toolsearch
