package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/callgraphtool/callgraphtool/internal/parser"
)

// PythonParser finds function and method definitions in Python source files
type PythonParser struct {
	parser *sitter.Parser
}

// NewPythonParser creates a new Python parser
func NewPythonParser() *PythonParser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &PythonParser{parser: p}
}

func (p *PythonParser) Language() string {
	return "py"
}

func (p *PythonParser) Extensions() []string {
	return []string{".py"}
}

func (p *PythonParser) Definitions(filename string, content []byte) ([]parser.Definition, error) {
	tree, err := parseSource(p.parser, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	defs := make([]parser.Definition, 0)
	p.extractDefinitions(tree.RootNode(), content, &defs, "")
	return defs, nil
}

func (p *PythonParser) extractDefinitions(node *sitter.Node, content []byte, defs *[]parser.Definition, className string) {
	switch node.Type() {
	case "function_definition":
		if name := fieldContent(node, "name", content); name != "" {
			*defs = append(*defs, definitionAt(node, name, className))
		}
		// Nested functions are visible to the call-graph tool too, but never
		// as methods.
		if body := node.ChildByFieldName("body"); body != nil {
			p.extractDefinitions(body, content, defs, "")
		}
		return

	case "class_definition":
		name := fieldContent(node, "name", content)
		if body := node.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.ChildCount()); i++ {
				p.extractDefinitions(body.Child(i), content, defs, name)
			}
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		p.extractDefinitions(node.Child(i), content, defs, className)
	}
}
