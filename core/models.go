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

package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent derives a 64-bit ID from the given text using blake2b.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// RecordKey returns the ID identifying a (tool, action) pair.
// Two records with the same key are duplicates of each other.
func RecordKey(tool, action string) ID {
	return IDFromContent(tool + "\x00" + action)
}

// Record is a single searchable entry of the corpus.
// Records are immutable once loaded.
type Record struct {
	Id             ID
	Tool           string
	Action         string
	Summary        string
	Link           string
	SearchableText string // Tool + " " + Action + " " + Summary
}

// NewRecord builds a Record from raw field values.
// All fields are trimmed and the searchable text is derived once here.
func NewRecord(tool, action, summary, link string) Record {
	tool = strings.TrimSpace(tool)
	action = strings.TrimSpace(action)
	summary = strings.TrimSpace(summary)
	link = strings.TrimSpace(link)

	return Record{
		Id:             RecordKey(tool, action),
		Tool:           tool,
		Action:         action,
		Summary:        summary,
		Link:           link,
		SearchableText: tool + " " + action + " " + summary,
	}
}

// Corpus is the ordered, deduplicated collection of records available for search.
type Corpus []Record

// Len returns the number of records in the corpus.
func (c Corpus) Len() int {
	return len(c)
}

// IsEmpty reports whether the corpus holds no records.
func (c Corpus) IsEmpty() bool {
	return len(c) == 0
}

// Texts returns the searchable text of every record, in corpus order.
func (c Corpus) Texts() []string {
	texts := make([]string, len(c))
	for i, record := range c {
		texts[i] = record.SearchableText
	}
	return texts
}

// RankedResult pairs a record with the similarity score used to rank it.
type RankedResult struct {
	Record Record
	Score  float32
}

// Tool returns the tool of the ranked record.
func (r RankedResult) Tool() string { return r.Record.Tool }

// Action returns the action of the ranked record.
func (r RankedResult) Action() string { return r.Record.Action }

// Summary returns the summary of the ranked record.
func (r RankedResult) Summary() string { return r.Record.Summary }

// Link returns the documentation link of the ranked record.
func (r RankedResult) Link() string { return r.Record.Link }
