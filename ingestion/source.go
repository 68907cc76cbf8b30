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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Source is a tabular input: a header row followed by data rows.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string

	// Read returns the header and the data rows. Rows may be shorter or
	// longer than the header.
	Read(ctx context.Context) (header []string, rows [][]string, err error)
}

// FileSource returns a Source for path based on its extension.
func FileSource(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSVFile(path), nil
	case ".xlsx":
		return XLSXFile(path), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

type csvFile struct {
	path string
}

// CSVFile returns a Source reading a comma separated file.
func CSVFile(path string) Source {
	return &csvFile{path: path}
}

func (s *csvFile) Name() string { return s.path }

func (s *csvFile) Read(ctx context.Context) ([]string, [][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

type xlsxFile struct {
	path string
}

// XLSXFile returns a Source reading the first worksheet of an Excel workbook.
func XLSXFile(path string) Source {
	return &xlsxFile{path: path}
}

func (s *xlsxFile) Name() string { return s.path }

func (s *xlsxFile) Read(ctx context.Context) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no worksheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[0], rows[1:], nil
}

type table struct {
	name   string
	header []string
	rows   [][]string
}

// Table returns an in-memory Source.
func Table(name string, header []string, rows [][]string) Source {
	return &table{name: name, header: header, rows: rows}
}

func (s *table) Name() string { return s.name }

func (s *table) Read(context.Context) ([]string, [][]string, error) {
	return s.header, s.rows, nil
}
