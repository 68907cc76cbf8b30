// Package format renders search results for people.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/toolsearch/core"
)

// Tips are printed when a query has no matches.
var Tips = []string{
	"Try different keywords",
	"Use tool names (GitLab, Jira, SonarQube, etc.)",
	"Search for actions (setup, configure, deploy, etc.)",
}

// Percent converts a similarity score to a whole percentage, truncating.
func Percent(score float32) int {
	return int(score * 100)
}

// Results writes a numbered list of results. With no results it writes
// the NoResults message instead.
func Results(w io.Writer, query string, results []core.RankedResult) error {
	if len(results) == 0 {
		return NoResults(w, query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d result(s) for: '%s'\n\n", len(results), query)
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s - %s (%d%% match)\n", i+1, r.Tool(), r.Action(), Percent(r.Score))
		fmt.Fprintf(&b, "   Summary: %s\n", r.Summary())
		fmt.Fprintf(&b, "   Documentation: %s\n\n", r.Link())
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// NoResults writes the empty-result message with search tips.
func NoResults(w io.Writer, query string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "No relevant results found for: '%s'\n\nTips:\n", query)
	for _, tip := range Tips {
		fmt.Fprintf(&b, "- %s\n", tip)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Status writes the one-line data status.
func Status(w io.Writer, ready bool, count int) error {
	var err error
	if ready {
		_, err = fmt.Fprintf(w, "Data status: ready, %d records loaded\n", count)
	} else {
		_, err = fmt.Fprintln(w, "Data status: not ready, no records loaded")
	}
	return err
}
