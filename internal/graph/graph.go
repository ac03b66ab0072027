// Package graph holds the call graph decoded from the external tool's
// graph description.
package graph

import "sort"

// Node is a labeled function node. Nodes are immutable after decode.
type Node struct {
	ID       string
	File     string // raw path as emitted by the tool; may be empty
	Function string
}

// Graph is a deduplicated call graph. Only nodes with a non-placeholder label
// are present in Nodes; edge endpoints without a label are still tracked.
type Graph struct {
	Nodes       map[string]*Node
	highlighted map[string]bool
	adjacency   map[string]map[string]bool
	inDegree    map[string]int
	edgeCount   int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:       make(map[string]*Node),
		highlighted: make(map[string]bool),
		adjacency:   make(map[string]map[string]bool),
		inDegree:    make(map[string]int),
	}
}

// AddNode records a labeled node. A later declaration of the same ID wins.
func (g *Graph) AddNode(n Node) {
	node := n
	g.Nodes[n.ID] = &node
}

// MarkHighlighted flags id as a designated start node.
func (g *Graph) MarkHighlighted(id string) {
	g.highlighted[id] = true
}

// AddEdge records caller -> callee. Repeated edges collapse to one.
func (g *Graph) AddEdge(caller, callee string) {
	if _, ok := g.adjacency[callee]; !ok {
		g.adjacency[callee] = make(map[string]bool)
	}
	out, ok := g.adjacency[caller]
	if !ok {
		out = make(map[string]bool)
		g.adjacency[caller] = out
	}
	if out[callee] {
		return
	}
	out[callee] = true
	g.inDegree[callee]++
	g.edgeCount++
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Callees returns the distinct callees of id in canonical order.
func (g *Graph) Callees(id string) []string {
	out := make([]string, 0, len(g.adjacency[id]))
	for callee := range g.adjacency[id] {
		out = append(out, callee)
	}
	g.SortIDs(out)
	return out
}

// InDegree returns the number of distinct callers of id.
func (g *Graph) InDegree(id string) int {
	return g.inDegree[id]
}

// Highlighted reports whether id carries the tool's start-node marker.
func (g *Graph) Highlighted(id string) bool {
	return g.highlighted[id]
}

// Labels returns (function, file) for id. Unlabeled IDs display as
// themselves with no file.
func (g *Graph) Labels(id string) (function, file string) {
	if n, ok := g.Nodes[id]; ok {
		return n.Function, n.File
	}
	return id, ""
}

// SortIDs orders ids by (function, file), then ID, ascending.
func (g *Graph) SortIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		fi, pi := g.Labels(ids[i])
		fj, pj := g.Labels(ids[j])
		if fi != fj {
			return fi < fj
		}
		if pi != pj {
			return pi < pj
		}
		return ids[i] < ids[j]
	})
}

// Roots returns the highlighted nodes, or when none is highlighted, every
// edge endpoint with no incoming edge. Both are in canonical order. An empty
// result means there is nothing to render.
func (g *Graph) Roots() []string {
	roots := make([]string, 0)
	for id := range g.highlighted {
		roots = append(roots, id)
	}
	if len(roots) == 0 {
		for id := range g.adjacency {
			if g.InDegree(id) == 0 {
				roots = append(roots, id)
			}
		}
	}
	g.SortIDs(roots)
	return roots
}
