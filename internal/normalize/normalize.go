// Package normalize rewrites a scratch copy of a source tree so that the
// external tool's pattern-based definition and call detection can see
// through syntax it does not understand. The original tree is never touched.
package normalize

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/callgraphtool/callgraphtool/internal/fileutil"
	"github.com/callgraphtool/callgraphtool/internal/ignore"
)

// Normalizer rewrites one source language line by line.
type Normalizer interface {
	// Language returns the tool language code the normalizer applies to.
	Language() string
	// Extensions returns the file extensions copied into the scratch tree.
	Extensions() []string
	// NormalizeLine rewrites a single line. It must not look at other lines.
	NormalizeLine(line string) string
}

var registry = map[string]Normalizer{
	"rust": RustNormalizer{},
}

// ForLanguage returns the normalizer registered for a language code.
func ForLanguage(code string) (Normalizer, bool) {
	n, ok := registry[strings.ToLower(strings.TrimSpace(code))]
	return n, ok
}

// ProgressFunc is called after each file is written to the scratch tree.
type ProgressFunc func(relPath string, count int)

// Tree is a normalized scratch copy of a source tree.
type Tree struct {
	Root  string
	Files int
}

// Cleanup removes the scratch tree. It is safe to call more than once.
func (t *Tree) Cleanup() error {
	if t == nil || t.Root == "" {
		return nil
	}
	root := t.Root
	t.Root = ""
	return os.RemoveAll(root)
}

// NormalizeTree copies every file under sourceRoot with one of n's extensions
// into a fresh temporary directory, preserving relative paths, and rewrites
// each line. The caller owns the returned Tree and must call Cleanup.
func NormalizeTree(sourceRoot string, n Normalizer, matcher *ignore.Matcher, progress ProgressFunc) (*Tree, error) {
	scratch, err := os.MkdirTemp("", "callgraphtool-"+n.Language()+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	tree := &Tree{Root: scratch}

	exts := make(map[string]bool, len(n.Extensions()))
	for _, ext := range n.Extensions() {
		exts[strings.ToLower(ext)] = true
	}

	walkErr := filepath.WalkDir(sourceRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(sourceRoot, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}
		if matcher != nil && matcher.ShouldIgnore(relPath, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		if err := normalizeFile(path, filepath.Join(scratch, relPath), n); err != nil {
			return err
		}
		tree.Files++
		if progress != nil {
			progress(relPath, tree.Files)
		}
		return nil
	})
	if walkErr != nil {
		_ = tree.Cleanup()
		return nil, fmt.Errorf("failed to normalize %s: %w", sourceRoot, walkErr)
	}
	return tree, nil
}

func normalizeFile(src, dst string, n Normalizer) error {
	text, err := fileutil.ReadTextLossy(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, []byte(NormalizeText(text, n)), 0o644)
}

// NormalizeText applies n to every line of text, keeping line endings.
func NormalizeText(text string, n Normalizer) string {
	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder
	b.Grow(len(text))
	for _, line := range lines {
		body := strings.TrimRight(line, "\r\n")
		b.WriteString(n.NormalizeLine(body))
		b.WriteString(line[len(body):])
	}
	return b.String()
}
