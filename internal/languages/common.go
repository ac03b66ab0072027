package languages

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/callgraphtool/callgraphtool/internal/parser"
)

func parseSource(p *sitter.Parser, content []byte) (*sitter.Tree, error) {
	return p.ParseCtx(context.Background(), nil, content)
}

func nodeLine(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

func fieldContent(node *sitter.Node, field string, content []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Content(content)
}

// firstOfType returns node itself or its first descendant of type typ, in
// document order.
func firstOfType(node *sitter.Node, typ string) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.Type() == typ {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstOfType(node.Child(i), typ); found != nil {
			return found
		}
	}
	return nil
}

func definitionAt(node *sitter.Node, name, owner string) parser.Definition {
	kind := parser.DefinitionFunction
	if owner != "" {
		kind = parser.DefinitionMethod
	}
	return parser.Definition{Name: name, Kind: kind, Line: nodeLine(node), Owner: owner}
}
