package ingestion

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Discover lists the data files in dir: every .xlsx workbook followed by
// every .csv file, each group in lexical order. Office lock files (~$name)
// are ignored. A missing directory yields no sources and no error.
func Discover(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableSource, err)
	}

	var workbooks, csvs []Source
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		path := filepath.Join(dir, name)
		switch strings.ToLower(filepath.Ext(name)) {
		case ".xlsx":
			workbooks = append(workbooks, XLSXFile(path))
		case ".csv":
			csvs = append(csvs, CSVFile(path))
		}
	}
	return append(workbooks, csvs...), nil
}
