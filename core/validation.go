package core

import "fmt"

// ValidateRecord checks that a record carries the fields that identify it.
// Summary and Link may be empty.
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.Tool == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyTool)
	}

	if record.Action == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyAction)
	}

	return nil
}

// ValidateCorpus checks that no two records share the same (tool, action) pair.
func ValidateCorpus(corpus Corpus) error {
	seen := make(map[ID]int, len(corpus))
	for i, record := range corpus {
		key := RecordKey(record.Tool, record.Action)
		if first, ok := seen[key]; ok {
			return fmt.Errorf("%w: records %d and %d (%s, %s)",
				ErrDuplicateRecord, first, i, record.Tool, record.Action)
		}
		seen[key] = i
	}
	return nil
}
