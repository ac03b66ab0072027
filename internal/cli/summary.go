package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/callgraphtool/callgraphtool/internal/fileutil"
)

// RunSummary describes one completed run.
type RunSummary struct {
	RunID      string   `json:"run_id"`
	Root       string   `json:"root"`
	Language   string   `json:"language"`
	Start      string   `json:"start"`
	Selector   string   `json:"selector"`
	Output     string   `json:"output,omitempty"`
	Tree       string   `json:"tree,omitempty"`
	Subset     string   `json:"subset,omitempty"`
	Roots      int      `json:"roots"`
	TreeLines  int      `json:"tree_lines"`
	Warnings   []string `json:"warnings"`
	DurationMS int64    `json:"duration_ms"`
}

// PrintRunSummary writes each produced artifact path on its own line, or the
// whole summary as JSON.
func PrintRunSummary(w io.Writer, summary RunSummary, asJSON bool) error {
	if asJSON {
		if summary.Warnings == nil {
			summary.Warnings = []string{}
		}
		return fileutil.PrintJSON(w, summary)
	}

	for _, path := range []string{summary.Output, summary.Tree, summary.Subset} {
		if path == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, path); err != nil {
			return err
		}
	}
	return nil
}

func SummarizePaths(paths []string, max int) string {
	if len(paths) <= max {
		return strings.Join(paths, ", ")
	}
	return fmt.Sprintf("%s ... (+%d more)", strings.Join(paths[:max], ", "), len(paths)-max)
}
