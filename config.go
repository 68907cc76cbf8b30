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

package toolsearch

import (
	"fmt"
	"strings"

	"github.com/poiesic/toolsearch/ingestion"
	"github.com/poiesic/toolsearch/ranking"
)

// Config holds search and data settings for an Engine.
type Config struct {
	// DataFolder is scanned for .xlsx and .csv files on every reload.
	// Default: "data"
	DataFolder string

	// TopK is the maximum number of results returned by Search.
	// Default: 5
	TopK int

	// Threshold is the similarity a result must exceed to be returned.
	// Default: 0.1
	Threshold float32

	// Strategy names the ranking strategy: "cosine" or "dot".
	// Default: "cosine"
	Strategy string

	// Columns names the required header cells of every data file.
	Columns ingestion.Columns
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithDataFolder sets the folder scanned for data files.
func WithDataFolder(folder string) ConfigOption {
	return func(c *Config) {
		c.DataFolder = folder
	}
}

// WithTopK sets the maximum number of results per search.
func WithTopK(topK int) ConfigOption {
	return func(c *Config) {
		c.TopK = topK
	}
}

// WithThreshold sets the minimum similarity of returned results.
func WithThreshold(threshold float32) ConfigOption {
	return func(c *Config) {
		c.Threshold = threshold
	}
}

// WithStrategy sets the ranking strategy by name.
func WithStrategy(name string) ConfigOption {
	return func(c *Config) {
		c.Strategy = name
	}
}

// WithColumns sets the required column names.
func WithColumns(columns ingestion.Columns) ConfigOption {
	return func(c *Config) {
		c.Columns = columns
	}
}

// DefaultConfig returns a Config with the default search settings.
func DefaultConfig() *Config {
	return &Config{
		DataFolder: "data",
		TopK:       5,
		Threshold:  0.1,
		Strategy:   "cosine",
		Columns:    ingestion.DefaultColumns(),
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize trims string settings and fills in an empty strategy name.
func (c *Config) Normalize() {
	c.DataFolder = strings.TrimSpace(c.DataFolder)
	c.Strategy = strings.ToLower(strings.TrimSpace(c.Strategy))
	if c.Strategy == "" {
		c.Strategy = "cosine"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.DataFolder == "" {
		return fmt.Errorf("%w: DataFolder is required", ErrInvalidConfig)
	}
	if c.TopK < 1 {
		return fmt.Errorf("%w: TopK must be at least 1", ErrInvalidConfig)
	}
	strategy, err := ranking.ByName(c.Strategy)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	// Cosine scores are bounded; dot products of unnormalized vectors are not.
	if strategy == ranking.Cosine && (c.Threshold < -1 || c.Threshold > 1) {
		return fmt.Errorf("%w: Threshold must be between -1 and 1", ErrInvalidConfig)
	}
	for _, name := range []string{c.Columns.Tool, c.Columns.Action, c.Columns.Summary, c.Columns.Link} {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: column names cannot be blank", ErrInvalidConfig)
		}
	}
	return nil
}
