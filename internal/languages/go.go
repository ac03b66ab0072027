package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/callgraphtool/callgraphtool/internal/parser"
)

// GoParser finds function and method definitions in Go source files
type GoParser struct {
	parser *sitter.Parser
}

// NewGoParser creates a new Go parser
func NewGoParser() *GoParser {
	p := sitter.NewParser()
	p.SetLanguage(golang.GetLanguage())
	return &GoParser{parser: p}
}

func (g *GoParser) Language() string {
	return "go"
}

func (g *GoParser) Extensions() []string {
	return []string{".go"}
}

func (g *GoParser) Definitions(filename string, content []byte) ([]parser.Definition, error) {
	tree, err := parseSource(g.parser, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	defs := make([]parser.Definition, 0)
	g.extractDefinitions(tree.RootNode(), content, &defs)
	return defs, nil
}

func (g *GoParser) extractDefinitions(node *sitter.Node, content []byte, defs *[]parser.Definition) {
	switch node.Type() {
	case "function_declaration":
		if name := fieldContent(node, "name", content); name != "" {
			*defs = append(*defs, definitionAt(node, name, ""))
		}

	case "method_declaration":
		name := fieldContent(node, "name", content)
		if name == "" {
			break
		}
		owner := ""
		if typeNode := firstOfType(node.ChildByFieldName("receiver"), "type_identifier"); typeNode != nil {
			owner = typeNode.Content(content)
		}
		*defs = append(*defs, definitionAt(node, name, owner))
	}

	// Recurse into children
	for i := 0; i < int(node.ChildCount()); i++ {
		g.extractDefinitions(node.Child(i), content, defs)
	}
}
