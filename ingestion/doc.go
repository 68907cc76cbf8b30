// Package ingestion loads tool records from tabular sources into a corpus.
//
// The Loader reads CSV files, Excel workbooks and in-memory tables, checks
// that each one carries the Tool, Action, Summary and Confluence Link
// columns, and combines the rows into a single deduplicated core.Corpus:
//   - Sources are parsed concurrently on a worker pool
//   - Results are combined in source order, keeping row order within a source
//   - The first row for a given (tool, action) pair wins
//   - A bad source is skipped and reported; it never fails the whole load
//
// Discover lists the data files of a folder in the order they are loaded.
package ingestion
