package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumns is returned when a source lacks one or more required columns.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrUnreadableSource is returned when a source cannot be opened or parsed.
	ErrUnreadableSource = errors.New("unreadable source")

	// ErrUnsupportedFormat is returned for files that are neither .csv nor .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// SourceError describes why a source was skipped.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
