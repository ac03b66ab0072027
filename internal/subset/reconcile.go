package subset

import (
	"path"
	"path/filepath"
	"strings"
)

// Reconciler turns a node's (file, function) label into the text shown in
// the call tree, preferring exact source locations from the subset listing.
type Reconciler struct {
	roots []string
	index *Index
}

// NewReconciler creates a reconciler for graph labels produced by a scan of
// scanRoot. A nil index disables location lookups.
func NewReconciler(scanRoot string, index *Index) *Reconciler {
	if index == nil {
		index = NewIndex(nil)
	}
	r := &Reconciler{index: index}
	if abs, err := filepath.Abs(scanRoot); err == nil {
		r.roots = append(r.roots, abs)
		if real, err := filepath.EvalSymlinks(abs); err == nil && real != abs {
			r.roots = append(r.roots, real)
		}
	}
	return r
}

// Label resolves a display label in three tiers: the exact relative path, a
// basename match that must be unique, then the best available fragment.
func (r *Reconciler) Label(file, function string) string {
	rel := r.Relativize(file)

	if rel != "" {
		if loc, ok := r.index.Exact(rel, function); ok {
			return function + " (" + loc + ")"
		}
	}

	if file != "" {
		base := path.Base(filepath.ToSlash(file))
		if loc, ok := r.index.ByBasename(base, function); ok {
			return function + " (" + loc + ")"
		}
	}

	switch {
	case rel != "":
		return function + " (" + rel + ")"
	case file != "":
		return function + " (" + file + ")"
	default:
		return function
	}
}

// Relativize maps a file label that looks like a path onto a slash-separated
// path relative to the scan root. Labels without a separator, and paths
// outside the root, yield "".
func (r *Reconciler) Relativize(file string) string {
	if !strings.ContainsAny(file, `/\`) {
		return ""
	}
	if !filepath.IsAbs(file) {
		rel := cleanRel(file)
		if rel == ".." || strings.HasPrefix(rel, "../") {
			return ""
		}
		return rel
	}

	candidates := []string{filepath.Clean(file)}
	if real, err := filepath.EvalSymlinks(file); err == nil && real != candidates[0] {
		candidates = append(candidates, real)
	}
	for _, candidate := range candidates {
		for _, root := range r.roots {
			rel, err := filepath.Rel(root, candidate)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
				continue
			}
			return rel
		}
	}
	return ""
}
