package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/toolsearch"
	"github.com/poiesic/toolsearch/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func vocabularyFactory(c *cli.Context) (*toolsearch.Engine, error) {
	provider := mock.NewMockProviderWithEmbedder(mock.NewVocabularyEmbedder(512))
	return toolsearch.NewEngine(provider, toolsearch.WithConfig(configFromFlags(c)))
}

func runApp(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(vocabularyFactory, strings.NewReader(input), &out)
	err := app.Run(append([]string{"toolsearch"}, args...))
	return out.String(), err
}

func findFlag[T cli.Flag](t *testing.T, cmd *cli.Command, name string) T {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(T); ok && flag.Names()[0] == name {
			return f
		}
	}
	require.Failf(t, "flag not found", "command %s has no flag %s", cmd.Name, name)
	var zero T
	return zero
}

func TestCommandFlags(t *testing.T) {
	app := newApp(vocabularyFactory, strings.NewReader(""), &bytes.Buffer{})
	require.Len(t, app.Commands, 3)

	for _, cmd := range app.Commands {
		t.Run(cmd.Name, func(t *testing.T) {
			data := findFlag[*cli.StringFlag](t, cmd, "data")
			assert.Equal(t, "data", data.Value)
			assert.Contains(t, data.EnvVars, "TOOLSEARCH_DATA")

			host := findFlag[*cli.StringFlag](t, cmd, "embedding-host")
			assert.Equal(t, "http://localhost:11434/v1", host.Value)

			model := findFlag[*cli.StringFlag](t, cmd, "embedding-model")
			assert.Equal(t, "all-minilm", model.Value)

			topK := findFlag[*cli.IntFlag](t, cmd, "top-k")
			assert.Equal(t, 5, topK.Value)

			threshold := findFlag[*cli.Float64Flag](t, cmd, "threshold")
			assert.Equal(t, float64(toolsearch.DefaultConfig().Threshold), threshold.Value)

			strategy := findFlag[*cli.StringFlag](t, cmd, "strategy")
			assert.Equal(t, "cosine", strategy.Value)

			cacheDir := findFlag[*cli.StringFlag](t, cmd, "cache-dir")
			assert.Empty(t, cacheDir.Value)
		})
	}
}

func TestSearchCommand(t *testing.T) {
	t.Run("prints ranked results", func(t *testing.T) {
		out, err := runApp(t, "", "search", "--data", "../../testdata", "configure", "gitlab", "pipeline")
		require.NoError(t, err)
		assert.Contains(t, out, "result(s) for: 'configure gitlab pipeline'")
		assert.Contains(t, out, "1. GitLab - Setup CI/CD Pipeline (")
		assert.Contains(t, out, "   Documentation: https://confluence.company.com/gitlab-cicd")
	})

	t.Run("respects top-k", func(t *testing.T) {
		out, err := runApp(t, "", "search", "--data", "../../testdata", "--top-k", "1", "gitlab pipeline")
		require.NoError(t, err)
		assert.Contains(t, out, "Found 1 result(s)")
		assert.NotContains(t, out, "2. ")
	})

	t.Run("prints tips when nothing matches", func(t *testing.T) {
		out, err := runApp(t, "", "search", "--data", "../../testdata", "zebra marmalade")
		require.NoError(t, err)
		assert.Contains(t, out, "No relevant results found for: 'zebra marmalade'")
		assert.Contains(t, out, "Tips:")
	})

	t.Run("requires a query", func(t *testing.T) {
		_, err := runApp(t, "", "search", "--data", "../../testdata")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query")
	})

	t.Run("reports missing data", func(t *testing.T) {
		out, err := runApp(t, "", "search", "--data", t.TempDir(), "gitlab")
		require.NoError(t, err)
		assert.Contains(t, out, "Data status: not ready")
	})

	t.Run("rejects unknown strategy", func(t *testing.T) {
		_, err := runApp(t, "", "search", "--data", "../../testdata", "--strategy", "bm25", "gitlab")
		assert.ErrorIs(t, err, toolsearch.ErrInvalidConfig)
	})
}

func TestStatusCommand(t *testing.T) {
	out, err := runApp(t, "", "status", "--data", "../../testdata")
	require.NoError(t, err)
	assert.Contains(t, out, "Data status: ready, 12 records loaded")
	assert.Contains(t, out, "Sources loaded: 1")
}

func TestStatusCommand_IncompleteRows(t *testing.T) {
	dir := t.TempDir()
	content := "Tool,Action,Summary,Confluence Link\n" +
		"GitLab,Merge Request,Review changes,https://mr\n" +
		",Deploy,Ship a release,https://deploy\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tools.csv"), []byte(content), 0644))

	out, err := runApp(t, "", "status", "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Data status: ready, 2 records loaded")
	assert.Contains(t, out, "Rows missing a tool or action: 1")
}

func TestChatCommand(t *testing.T) {
	input := "configure gitlab pipeline\n\nzebra marmalade\n:quit\nsonarqube\n"
	out, err := runApp(t, input, "chat", "--data", "../../testdata")
	require.NoError(t, err)

	assert.Contains(t, out, "Data status: ready, 12 records loaded")
	assert.Contains(t, out, "1. GitLab - Setup CI/CD Pipeline (")
	assert.Contains(t, out, "No relevant results found for: 'zebra marmalade'")
	assert.NotContains(t, out, "for: 'sonarqube'")
}

func TestChatCommand_EndOfInput(t *testing.T) {
	out, err := runApp(t, ":reload\n", "chat", "--data", "../../testdata")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Data status: ready, 12 records loaded"))
}

// failingWriter fails every write after the first limit writes.
type failingWriter struct {
	limit  int
	writes int
}

var errWriteFailed = errors.New("write failed")

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.limit {
		return 0, errWriteFailed
	}
	return len(p), nil
}

func TestChatCommand_ReloadWriteError(t *testing.T) {
	// status line, help line and prompt succeed; the status after :reload fails
	out := &failingWriter{limit: 3}
	app := newApp(vocabularyFactory, strings.NewReader(":reload\n"), out)

	err := app.Run([]string{"toolsearch", "chat", "--data", "../../testdata"})
	assert.ErrorIs(t, err, errWriteFailed)
	assert.Equal(t, 4, out.writes)
}

func TestSetupLogger(t *testing.T) {
	t.Run("accepts known levels", func(t *testing.T) {
		for _, level := range []string{"debug", "INFO", "warn", "error"} {
			_, err := runApp(t, "", "--log-level", level, "status", "--data", "../../testdata")
			assert.NoError(t, err, level)
		}
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := runApp(t, "", "--log-level", "verbose", "status")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
