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

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/toolsearch"
	"github.com/poiesic/toolsearch/ai"
	"github.com/poiesic/toolsearch/format"
	"github.com/poiesic/toolsearch/ingestion"
	"github.com/urfave/cli/v2"
)

// engineFactory builds the engine for a command from its flags.
type engineFactory func(c *cli.Context) (*toolsearch.Engine, error)

func main() {
	app := newApp(openEngine, os.Stdin, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(factory engineFactory, in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "toolsearch",
		Usage:     "Semantic search over SDLC tool documentation",
		Reader:    in,
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"TOOLSEARCH_LOG_LEVEL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search the tool records once and print the results",
				ArgsUsage: "<query>",
				Action: func(c *cli.Context) error {
					return searchCommand(c, factory)
				},
				Flags: engineFlags(),
			},
			{
				Name:  "status",
				Usage: "Load the data folder and report what was indexed",
				Action: func(c *cli.Context) error {
					return statusCommand(c, factory)
				},
				Flags: engineFlags(),
			},
			{
				Name:  "chat",
				Usage: "Interactive search session; type a query per line",
				Action: func(c *cli.Context) error {
					return chatCommand(c, factory)
				},
				Flags: engineFlags(),
			},
		},
	}
}

func engineFlags() []cli.Flag {
	defaults := toolsearch.DefaultConfig()
	aiDefaults := ai.DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "Folder containing .xlsx and .csv tool data files",
			Value:   defaults.DataFolder,
			EnvVars: []string{"TOOLSEARCH_DATA"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			Value:   aiDefaults.EmbeddingHost,
			EnvVars: []string{"TOOLSEARCH_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   aiDefaults.EmbeddingModel,
			EnvVars: []string{"TOOLSEARCH_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "api-token",
			Usage:   "Token for the embedding service",
			EnvVars: []string{"TOOLSEARCH_API_TOKEN", "OPENAI_API_KEY"},
		},
		&cli.IntFlag{
			Name:    "batch-size",
			Usage:   "Number of texts sent per embedding request",
			Value:   aiDefaults.BatchSize,
			EnvVars: []string{"TOOLSEARCH_BATCH_SIZE"},
		},
		&cli.StringFlag{
			Name:    "cache-dir",
			Usage:   "Directory for the embedding cache (disabled when empty)",
			EnvVars: []string{"TOOLSEARCH_CACHE_DIR"},
		},
		&cli.IntFlag{
			Name:    "top-k",
			Aliases: []string{"k"},
			Usage:   "Maximum number of results",
			Value:   defaults.TopK,
			EnvVars: []string{"TOOLSEARCH_TOP_K"},
		},
		&cli.Float64Flag{
			Name:    "threshold",
			Usage:   "Minimum similarity score of returned results",
			Value:   float64(defaults.Threshold),
			EnvVars: []string{"TOOLSEARCH_THRESHOLD"},
		},
		&cli.StringFlag{
			Name:    "strategy",
			Usage:   "Ranking strategy (cosine, dot)",
			Value:   defaults.Strategy,
			EnvVars: []string{"TOOLSEARCH_STRATEGY"},
		},
	}
}

// configFromFlags maps command flags onto the engine configuration.
func configFromFlags(c *cli.Context) *toolsearch.Config {
	return toolsearch.NewConfig(
		toolsearch.WithDataFolder(c.String("data")),
		toolsearch.WithTopK(c.Int("top-k")),
		toolsearch.WithThreshold(float32(c.Float64("threshold"))),
		toolsearch.WithStrategy(c.String("strategy")),
	)
}

// aiConfigFromFlags maps command flags onto the embedding service configuration.
func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAPIToken(c.String("api-token")),
		ai.WithBatchSize(c.Int("batch-size")),
	)
}

func openEngine(c *cli.Context) (*toolsearch.Engine, error) {
	aiConfig := aiConfigFromFlags(c)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	return toolsearch.Open(
		toolsearch.WithAIConfig(aiConfig),
		toolsearch.WithConfig(configFromFlags(c)),
		toolsearch.WithCacheDir(c.String("cache-dir")),
	)
}

// loadEngine creates the engine and performs the initial load.
func loadEngine(ctx context.Context, c *cli.Context, factory engineFactory) (*toolsearch.Engine, *ingestion.Result, error) {
	engine, err := factory(c)
	if err != nil {
		return nil, nil, err
	}

	result, err := engine.Reload(ctx)
	if err != nil {
		engine.Close()
		return nil, nil, fmt.Errorf("failed to build index: %w", err)
	}
	return engine, result, nil
}

func searchCommand(c *cli.Context, factory engineFactory) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	ctx := context.Background()
	engine, _, err := loadEngine(ctx, c, factory)
	if err != nil {
		return err
	}
	defer engine.Close()

	out := c.App.Writer
	if !engine.Status().Ready {
		return format.Status(out, false, 0)
	}
	return format.Results(out, query, engine.Search(ctx, query))
}

func statusCommand(c *cli.Context, factory engineFactory) error {
	ctx := context.Background()
	engine, result, err := loadEngine(ctx, c, factory)
	if err != nil {
		return err
	}
	defer engine.Close()

	out := c.App.Writer
	status := engine.Status()
	if err := format.Status(out, status.Ready, status.RecordCount); err != nil {
		return err
	}

	fmt.Fprintf(out, "Data folder: %s\n", engine.Config().DataFolder)
	fmt.Fprintf(out, "Sources loaded: %d\n", result.Sources)
	if result.Duplicates > 0 {
		fmt.Fprintf(out, "Duplicates removed: %d\n", result.Duplicates)
	}
	if result.Incomplete > 0 {
		fmt.Fprintf(out, "Rows missing a tool or action: %d\n", result.Incomplete)
	}
	for _, skipped := range result.Skipped {
		fmt.Fprintf(out, "Skipped %s\n", skipped)
	}
	return nil
}

func chatCommand(c *cli.Context, factory engineFactory) error {
	ctx := context.Background()
	engine, _, err := loadEngine(ctx, c, factory)
	if err != nil {
		return err
	}
	defer engine.Close()

	logger := slog.Default().With("component", "chat")
	out := c.App.Writer
	status := engine.Status()
	if err := format.Status(out, status.Ready, status.RecordCount); err != nil {
		return err
	}
	fmt.Fprintln(out, "Type a query and press enter. :reload reloads the data folder, :quit exits.")

	scanner := bufio.NewScanner(c.App.Reader)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit", ":exit", "quit", "exit":
			return nil
		case ":reload":
			if _, err := engine.Reload(ctx); err != nil {
				logger.Error("reload failed, keeping previous data", "err", err)
			}
			status := engine.Status()
			if err := format.Status(out, status.Ready, status.RecordCount); err != nil {
				return err
			}
			continue
		}

		if err := format.Results(out, line, engine.Search(ctx, line)); err != nil {
			return err
		}
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
