package graph

import (
	"bufio"
	"regexp"
	"strings"
)

// DefaultHighlightColor is the fill color the external tool gives the node
// it was asked to start from.
const DefaultHighlightColor = "greenyellow"

// placeholderLabel tells the renderer to print the node ID verbatim.
const placeholderLabel = `\N`

const idExpr = `"(?:[^"\\]|\\.)*"|[A-Za-z0-9_.]+`

var (
	edgeLinePattern = regexp.MustCompile(`^\s*(` + idExpr + `)\s*->\s*(` + idExpr + `)`)
	// Attribute lists end at the first unquoted ']'; one line may hold
	// several node statements.
	nodeStmtPattern = regexp.MustCompile(`(` + idExpr + `)\s*\[((?:"(?:[^"\\]|\\.)*"|[^\]"])*)\]`)
	attrPattern     = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*=\s*("(?:[^"\\]|\\.)*"|[^,;\s\]]+)`)
	lineBreakToken  = regexp.MustCompile(`\\[nlr]`)
)

var statementKeywords = map[string]bool{
	"node":     true,
	"edge":     true,
	"graph":    true,
	"digraph":  true,
	"subgraph": true,
}

// DecodeOptions tunes how the graph description is read.
type DecodeOptions struct {
	// HighlightColor is the fillcolor value marking the start node.
	// Empty means DefaultHighlightColor.
	HighlightColor string
}

// Decode parses a line-oriented graph description. Node and edge statements
// may appear in any order. Lines that are neither are skipped.
func Decode(text string, opts DecodeOptions) *Graph {
	highlight := strings.ToLower(strings.TrimSpace(opts.HighlightColor))
	if highlight == "" {
		highlight = DefaultHighlightColor
	}

	g := NewGraph()
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if m := edgeLinePattern.FindStringSubmatch(line); m != nil {
			g.AddEdge(unquoteID(m[1]), unquoteID(m[2]))
			continue
		}

		for _, m := range nodeStmtPattern.FindAllStringSubmatch(line, -1) {
			if statementKeywords[m[1]] {
				continue
			}
			decodeNode(g, unquoteID(m[1]), parseAttrs(m[2]), highlight)
		}
	}
	return g
}

func decodeNode(g *Graph, id string, attrs map[string]string, highlight string) {
	if strings.EqualFold(attrs["fillcolor"], highlight) {
		g.MarkHighlighted(id)
	}
	label, ok := attrs["label"]
	if !ok {
		return
	}
	if node, ok := nodeFromLabel(id, label); ok {
		g.AddNode(node)
	}
}

func nodeFromLabel(id, label string) (Node, bool) {
	label = strings.TrimSpace(label)
	if label == "" || label == placeholderLabel {
		return Node{}, false
	}

	segments := make([]string, 0, 2)
	for _, part := range lineBreakToken.Split(label, -1) {
		if part = strings.TrimSpace(part); part != "" {
			segments = append(segments, part)
		}
	}
	switch len(segments) {
	case 0:
		return Node{}, false
	case 1:
		return Node{ID: id, Function: segments[0]}, true
	default:
		return Node{ID: id, File: segments[0], Function: segments[len(segments)-1]}, true
	}
}

func parseAttrs(list string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrPattern.FindAllStringSubmatch(list, -1) {
		attrs[strings.ToLower(m[1])] = unquoteValue(m[2])
	}
	return attrs
}

func unquoteID(raw string) string {
	return unquoteValue(strings.TrimSpace(raw))
}

// unquoteValue strips surrounding quotes and unescapes \" only, so label
// line-break tokens survive for splitting.
func unquoteValue(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return strings.ReplaceAll(raw[1:len(raw)-1], `\"`, `"`)
	}
	return raw
}
