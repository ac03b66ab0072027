// Package calltree renders a decoded call graph as an indented text tree and
// splices it into the subset-source artifact.
package calltree

import (
	"strings"

	"github.com/callgraphtool/callgraphtool/internal/graph"
	"github.com/callgraphtool/callgraphtool/internal/subset"
)

const (
	Header      = "Call tree:"
	Indent      = "  "
	CycleSuffix = " (cycle)"
	SeenSuffix  = " (seen)"
)

// LabelFunc returns the display text for a node ID.
type LabelFunc func(id string) string

// NodeLabeler displays labeled nodes through r and unlabeled IDs verbatim.
func NodeLabeler(g *graph.Graph, r *subset.Reconciler) LabelFunc {
	return func(id string) string {
		n, ok := g.Nodes[id]
		if !ok {
			return id
		}
		return r.Label(n.File, n.Function)
	}
}

// visit tracks the walk. path holds the ancestors of the node being
// expanded; seen holds every node printed so far, across all roots.
type visit struct {
	path map[string]bool
	seen map[string]bool
}

// Render walks g depth first from roots. Children are visited in
// (function, file) order. A child already on the current path is printed with
// a cycle marker, one printed elsewhere with a seen marker; neither is
// expanded. Roots already printed under an earlier root are skipped. No roots
// yields no lines at all.
func Render(g *graph.Graph, roots []string, label LabelFunc) []string {
	if len(roots) == 0 {
		return nil
	}

	lines := []string{Header}
	v := visit{path: make(map[string]bool), seen: make(map[string]bool)}
	printed := 0
	for _, root := range roots {
		if v.seen[root] {
			continue
		}
		if printed > 0 {
			lines = append(lines, "")
		}
		printed++

		v.seen[root] = true
		lines = append(lines, label(root))
		v.path[root] = true
		lines = walk(g, root, 1, v, label, lines)
		delete(v.path, root)
	}
	return lines
}

func walk(g *graph.Graph, id string, depth int, v visit, label LabelFunc, lines []string) []string {
	prefix := strings.Repeat(Indent, depth)
	for _, child := range g.Callees(id) {
		switch {
		case v.path[child]:
			lines = append(lines, prefix+label(child)+CycleSuffix)
		case v.seen[child]:
			lines = append(lines, prefix+label(child)+SeenSuffix)
		default:
			lines = append(lines, prefix+label(child))
			v.seen[child] = true
			v.path[child] = true
			lines = walk(g, child, depth+1, v, label, lines)
			delete(v.path, child)
		}
	}
	return lines
}
