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

package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/toolsearch/core"
)

// Columns names the header cells holding each record field.
type Columns struct {
	Tool    string
	Action  string
	Summary string
	Link    string
}

// DefaultColumns returns the standard column names.
func DefaultColumns() Columns {
	return Columns{
		Tool:    "Tool",
		Action:  "Action",
		Summary: "Summary",
		Link:    "Confluence Link",
	}
}

func (c Columns) names() []string {
	return []string{c.Tool, c.Action, c.Summary, c.Link}
}

// Result is the outcome of a load.
type Result struct {
	// Corpus holds the deduplicated records in source order.
	Corpus core.Corpus
	// Sources is the number of sources that were parsed successfully.
	Sources int
	// Duplicates is the number of rows dropped because an earlier row had
	// the same (tool, action) pair.
	Duplicates int
	// Incomplete is the number of loaded rows with an empty tool or action.
	Incomplete int
	// Skipped lists the sources that were ignored and why.
	Skipped []*SourceError
}

// Empty reports whether the load produced no records.
func (r *Result) Empty() bool {
	return r == nil || len(r.Corpus) == 0
}

// Loader turns tabular sources into a Corpus.
type Loader struct {
	pool     *ants.Pool
	columns  Columns
	observer Observer
	logger   *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithPoolSize sets the number of sources parsed concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if l.pool != nil {
			l.pool.Release()
		}
		l.pool = pool
		return nil
	}
}

// WithColumns overrides the required column names.
func WithColumns(columns Columns) Option {
	return func(l *Loader) error {
		for _, name := range columns.names() {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("%w: column names cannot be blank", ErrMissingColumns)
			}
		}
		l.columns = columns
		return nil
	}
}

// WithObserver sets an observer for load progress.
func WithObserver(observer Observer) Option {
	return func(l *Loader) error {
		if observer == nil {
			observer = noopObserver{}
		}
		l.observer = observer
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a Loader. Call Release when done to free the worker pool.
func NewLoader(opts ...Option) (*Loader, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		pool:     pool,
		columns:  DefaultColumns(),
		observer: noopObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(l); optErr != nil {
			l.Release()
			return nil, optErr
		}
	}
	l.logger = l.logger.With("component", "loader")
	return l, nil
}

// Release frees the worker pool. The loader should not be used afterwards.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}

type parsed struct {
	records    []core.Record
	incomplete int
	err        *SourceError
}

// Load parses every source and combines their rows into one corpus.
//
// Sources are parsed concurrently but combined in argument order, and rows
// keep their order within a source. A source that cannot be read or lacks a
// required column is skipped and reported in Result.Skipped. When two rows
// share a (tool, action) pair the first one wins.
func (l *Loader) Load(ctx context.Context, sources ...Source) *Result {
	result := &Result{}
	if len(sources) == 0 {
		l.logger.Warn("no data sources to load")
		return result
	}

	slots := make([]parsed, len(sources))
	var wg sync.WaitGroup
	for i, source := range sources {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			slots[i] = l.parse(ctx, source)
		}
		if err := l.pool.Submit(task); err != nil {
			l.logger.Debug("worker pool unavailable, parsing inline", "source", source.Name(), "err", err)
			task()
		}
	}
	wg.Wait()

	type pair struct{ tool, action string }
	seen := make(map[pair]struct{})
	for _, slot := range slots {
		if slot.err != nil {
			result.Skipped = append(result.Skipped, slot.err)
			continue
		}
		result.Sources++
		result.Incomplete += slot.incomplete
		for _, record := range slot.records {
			key := pair{record.Tool, record.Action}
			if _, dup := seen[key]; dup {
				result.Duplicates++
				continue
			}
			seen[key] = struct{}{}
			result.Corpus = append(result.Corpus, record)
		}
	}

	if result.Duplicates > 0 {
		l.logger.Info("removed duplicate entries", "count", result.Duplicates)
	}
	l.observer.DuplicatesRemoved(result.Duplicates)

	if result.Empty() {
		l.logger.Warn("no records loaded", "sources", len(sources), "skipped", len(result.Skipped))
	} else {
		l.logger.Info("corpus loaded", "records", len(result.Corpus), "sources", result.Sources, "skipped", len(result.Skipped))
	}
	return result
}

// parse reads one source. Failures, including panics, become a SourceError.
func (l *Loader) parse(ctx context.Context, source Source) (out parsed) {
	name := source.Name()
	defer func() {
		if r := recover(); r != nil {
			out = parsed{err: l.skip(name, fmt.Errorf("%w: panic: %v", ErrUnreadableSource, r))}
		}
	}()

	if err := ctx.Err(); err != nil {
		return parsed{err: l.skip(name, fmt.Errorf("%w: %w", ErrUnreadableSource, err))}
	}

	header, rows, err := source.Read(ctx)
	if err != nil {
		return parsed{err: l.skip(name, fmt.Errorf("%w: %w", ErrUnreadableSource, err))}
	}

	idx, missing := l.columnIndex(header)
	if len(missing) > 0 {
		return parsed{err: l.skip(name, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", ")))}
	}

	out.records = make([]core.Record, 0, len(rows))
	for _, row := range rows {
		record := core.NewRecord(cell(row, idx[0]), cell(row, idx[1]), cell(row, idx[2]), cell(row, idx[3]))
		if record.Tool == "" && record.Action == "" && record.Summary == "" && record.Link == "" {
			continue
		}
		if err := core.ValidateRecord(&record); err != nil {
			out.incomplete++
			l.logger.Debug("loading incomplete row", "source", name, "err", err)
		}
		out.records = append(out.records, record)
	}

	l.logger.Info("loaded records", "source", name, "count", len(out.records))
	l.observer.SourceLoaded(name, len(out.records))
	return out
}

func (l *Loader) skip(name string, err error) *SourceError {
	serr := &SourceError{Source: name, Err: err}
	l.logger.Warn("skipping source", "source", name, "err", err)
	l.observer.SourceSkipped(serr)
	return serr
}

// columnIndex locates the required columns in header.
// The first header cell may carry a UTF-8 byte order mark.
func (l *Loader) columnIndex(header []string) ([4]int, []string) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, ok := positions[name]; !ok {
			positions[name] = i
		}
	}

	var idx [4]int
	var missing []string
	for i, name := range l.columns.names() {
		pos, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[i] = pos
	}
	return idx, missing
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
