package calltree

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/callgraphtool/callgraphtool/internal/fileutil"
	"github.com/callgraphtool/callgraphtool/internal/graph"
	"github.com/callgraphtool/callgraphtool/internal/subset"
)

// Options describes one post-processing pass over the tool's artifacts.
type Options struct {
	// GraphPath is the graph description written by the tool. Required.
	GraphPath string
	// SubsetPath is the subset-source artifact. Empty or missing disables
	// location lookups and the header splice.
	SubsetPath string
	// TreePath receives the rendered tree as plain text. Empty skips it.
	TreePath string
	// ScanRoot is the directory the tool scanned.
	ScanRoot string
	// CommentMarker prefixes each header line in the subset artifact.
	CommentMarker  string
	HighlightColor string
	Logger         *slog.Logger
}

// Result reports what post-processing produced.
type Result struct {
	Lines           []string
	Roots           int
	Nodes           int
	Edges           int
	TreeWritten     bool
	SubsetAnnotated bool
	Warnings        []string
}

func (r *Result) warn(logger *slog.Logger, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	logger.Debug("post-processing warning", "warning", msg)
}

// Annotate decodes the graph description, reconciles labels against the
// subset listing, renders the tree, writes the tree file and splices the
// tree into the subset artifact. Only an unreadable graph description is an
// error; every later failure is reported as a warning.
func Annotate(opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	graphText, err := fileutil.ReadTextLossy(opts.GraphPath)
	if err != nil {
		return nil, err
	}
	g := graph.Decode(graphText, graph.DecodeOptions{HighlightColor: opts.HighlightColor})
	roots := g.Roots()

	result := &Result{Roots: len(roots), Nodes: len(g.Nodes), Edges: g.EdgeCount()}
	logger.Debug("decoded graph", "path", opts.GraphPath, "nodes", result.Nodes, "edges", result.Edges, "roots", result.Roots,
		"highlighted", len(roots) > 0 && g.Highlighted(roots[0]))

	var subsetText string
	haveSubset := false
	if opts.SubsetPath != "" {
		if text, err := fileutil.ReadTextLossy(opts.SubsetPath); err == nil {
			subsetText = text
			haveSubset = true
		} else if !errors.Is(err, os.ErrNotExist) {
			result.warn(logger, "could not read subset file %s: %v", opts.SubsetPath, err)
		}
	}

	occurrences := subset.ParseOccurrences(subsetText)
	reconciler := subset.NewReconciler(opts.ScanRoot, subset.NewIndex(occurrences))
	result.Lines = Render(g, roots, NodeLabeler(g, reconciler))

	if len(result.Lines) == 0 {
		if result.Edges > 0 {
			result.warn(logger, "every function in the graph has a caller; no root to start the call tree from")
		}
		return result, nil
	}

	if opts.TreePath != "" {
		data := []byte(fileutil.EnsureTrailingNewline(strings.Join(result.Lines, "\n")))
		if err := fileutil.WriteIfChanged(opts.TreePath, data); err != nil {
			result.warn(logger, "could not write call tree %s: %v", opts.TreePath, err)
		} else {
			result.TreeWritten = true
		}
	}

	if haveSubset {
		marker := opts.CommentMarker
		if marker == "" {
			marker = "#"
		}
		if err := subset.SpliceFile(opts.SubsetPath, result.Lines, marker); err != nil {
			result.warn(logger, "could not add call tree header to %s: %v", opts.SubsetPath, err)
		} else {
			result.SubsetAnnotated = true
		}
	}

	return result, nil
}
