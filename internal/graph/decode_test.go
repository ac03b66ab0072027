package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDot = `digraph callgraph {
    graph [rankdir=LR];
    node [shape=box, style=rounded];
    "/repo/src/main.py:main" -> "/repo/src/util.py:helper";
    "/repo/src/main.py:main" -> "/repo/src/util.py:helper" [color=gray];
    "/repo/src/main.py:main" [label="/repo/src/main.py\nmain", style=filled, fillcolor=greenyellow];
    "/repo/src/util.py:helper" [label="/repo/src/util.py\nhelper"];
    "/repo/src/util.py:helper" -> orphan;
    bare [label="onlyname"];
    anon [label="\N"];
    multi [label="a/b.py\lclass Foo\lrun"];
}
`

func TestDecodeNodesAndEdges(t *testing.T) {
	g := Decode(sampleDot, DecodeOptions{})

	require.Contains(t, g.Nodes, "/repo/src/main.py:main")
	main := g.Nodes["/repo/src/main.py:main"]
	assert.Equal(t, "/repo/src/main.py", main.File)
	assert.Equal(t, "main", main.Function)
	assert.True(t, g.Highlighted(main.ID))

	helper := g.Nodes["/repo/src/util.py:helper"]
	require.NotNil(t, helper)
	assert.False(t, g.Highlighted(helper.ID))

	require.Contains(t, g.Nodes, "bare")
	assert.Equal(t, "", g.Nodes["bare"].File)
	assert.Equal(t, "onlyname", g.Nodes["bare"].Function)

	assert.NotContains(t, g.Nodes, "anon")
	assert.NotContains(t, g.Nodes, "graph")
	assert.NotContains(t, g.Nodes, "node")

	require.Contains(t, g.Nodes, "multi")
	assert.Equal(t, "a/b.py", g.Nodes["multi"].File)
	assert.Equal(t, "run", g.Nodes["multi"].Function)

	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []string{"/repo/src/util.py:helper"}, g.Callees("/repo/src/main.py:main"))
	assert.Equal(t, []string{"orphan"}, g.Callees("/repo/src/util.py:helper"))
	assert.Empty(t, g.Callees("orphan"))
	assert.Equal(t, 1, g.InDegree("/repo/src/util.py:helper"))
	assert.Equal(t, 1, g.InDegree("orphan"))
	assert.Equal(t, 0, g.InDegree("/repo/src/main.py:main"))
}

func TestDecodeOrderIndependent(t *testing.T) {
	edgesFirst := "a -> b;\nb -> c;\na [label=\"x.py\\na\"];\nb [label=\"x.py\\nb\"];\n"
	nodesFirst := "b [label=\"x.py\\nb\"];\na [label=\"x.py\\na\"];\nb -> c;\na -> b;\n"

	g1 := Decode(edgesFirst, DecodeOptions{})
	g2 := Decode(nodesFirst, DecodeOptions{})

	for _, id := range []string{"a", "b", "c"} {
		assert.Equal(t, g1.Callees(id), g2.Callees(id))
	}
	assert.Equal(t, g1.EdgeCount(), g2.EdgeCount())
	assert.Equal(t, g1.Nodes, g2.Nodes)
	assert.Equal(t, g1.Roots(), g2.Roots())
}

func TestUnlabeledEndpointsFallBackToID(t *testing.T) {
	g := Decode("x -> y;\n", DecodeOptions{})

	fn, file := g.Labels("y")
	assert.Equal(t, "y", fn)
	assert.Equal(t, "", file)
	assert.Equal(t, []string{"x"}, g.Roots())
}

func TestRootsPreferHighlighted(t *testing.T) {
	text := `a -> b;
c -> b;
b [label="m.py\nb", fillcolor="GreenYellow"];
`
	g := Decode(text, DecodeOptions{})
	assert.Equal(t, []string{"b"}, g.Roots())
}

func TestRootsSortedByLabel(t *testing.T) {
	text := `z -> shared;
a -> shared;
z [label="b.py\nalpha"];
a [label="a.py\nomega"];
`
	g := Decode(text, DecodeOptions{})
	assert.Equal(t, []string{"z", "a"}, g.Roots())
}

func TestCustomHighlightColor(t *testing.T) {
	text := "s [label=\"k.go\\nStart\", fillcolor=\"#ffcc00\"];\n"

	assert.Empty(t, Decode(text, DecodeOptions{}).Roots())
	assert.Equal(t, []string{"s"}, Decode(text, DecodeOptions{HighlightColor: "#FFCC00"}).Roots())
}

func TestRootsEmptyWhenEveryNodeHasCaller(t *testing.T) {
	g := Decode("a -> b;\nb -> a;\n", DecodeOptions{})
	assert.Empty(t, g.Roots())
	assert.Equal(t, 2, g.EdgeCount())
}

func TestDecodeEmptyText(t *testing.T) {
	g := Decode("", DecodeOptions{})
	assert.Empty(t, g.Nodes)
	assert.Zero(t, g.EdgeCount())
	assert.Empty(t, g.Roots())
}

func TestQuotedIDsWithEscapes(t *testing.T) {
	g := Decode(`"say \"hi\"" -> "b c";`+"\n", DecodeOptions{})
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, []string{"b c"}, g.Callees(`say "hi"`))
}

func TestDecodeSeveralNodesOnOneLine(t *testing.T) {
	g := Decode(`a [label="a.py\nfoo"]; b [label="b.py\nbar", fillcolor=greenyellow];`+"\n", DecodeOptions{})

	require.Contains(t, g.Nodes, "a")
	require.Contains(t, g.Nodes, "b")
	assert.Equal(t, Node{ID: "a", File: "a.py", Function: "foo"}, *g.Nodes["a"])
	assert.Equal(t, Node{ID: "b", File: "b.py", Function: "bar"}, *g.Nodes["b"])
	assert.False(t, g.Highlighted("a"))
	assert.True(t, g.Highlighted("b"))
}

func TestDecodeBracketInsideQuotedLabel(t *testing.T) {
	g := Decode(`"x.py:get" [label="x.py\nget[0]", shape=box]; y [label="y.py\nrun"];`+"\n", DecodeOptions{})

	require.Contains(t, g.Nodes, "x.py:get")
	assert.Equal(t, "get[0]", g.Nodes["x.py:get"].Function)
	require.Contains(t, g.Nodes, "y")
	assert.Equal(t, "run", g.Nodes["y"].Function)
}
