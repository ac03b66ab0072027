package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/callgraphtool/callgraphtool/internal/parser"
)

// JavaScriptParser finds function declarations, class methods and functions
// bound to variables in JavaScript source files
type JavaScriptParser struct {
	parser *sitter.Parser
}

// NewJavaScriptParser creates a new JavaScript parser
func NewJavaScriptParser() *JavaScriptParser {
	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())
	return &JavaScriptParser{parser: p}
}

func (j *JavaScriptParser) Language() string {
	return "js"
}

func (j *JavaScriptParser) Extensions() []string {
	return []string{".js"}
}

func (j *JavaScriptParser) Definitions(filename string, content []byte) ([]parser.Definition, error) {
	tree, err := parseSource(j.parser, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	defs := make([]parser.Definition, 0)
	j.extractDefinitions(tree.RootNode(), content, &defs, "")
	return defs, nil
}

func (j *JavaScriptParser) extractDefinitions(node *sitter.Node, content []byte, defs *[]parser.Definition, className string) {
	switch node.Type() {
	case "function_declaration", "generator_function_declaration":
		if name := fieldContent(node, "name", content); name != "" {
			*defs = append(*defs, definitionAt(node, name, ""))
		}
		if body := node.ChildByFieldName("body"); body != nil {
			j.extractDefinitions(body, content, defs, "")
		}
		return

	case "method_definition":
		if name := fieldContent(node, "name", content); name != "" {
			*defs = append(*defs, definitionAt(node, name, className))
		}
		if body := node.ChildByFieldName("body"); body != nil {
			j.extractDefinitions(body, content, defs, "")
		}
		return

	case "class_declaration", "class":
		name := fieldContent(node, "name", content)
		if body := node.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.ChildCount()); i++ {
				j.extractDefinitions(body.Child(i), content, defs, name)
			}
		}
		return

	case "variable_declarator":
		value := node.ChildByFieldName("value")
		if value != nil && isFunctionValue(value.Type()) {
			if name := fieldContent(node, "name", content); name != "" {
				*defs = append(*defs, definitionAt(node, name, ""))
			}
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		j.extractDefinitions(node.Child(i), content, defs, className)
	}
}

func isFunctionValue(nodeType string) bool {
	switch nodeType {
	case "arrow_function", "function", "function_expression", "generator_function":
		return true
	}
	return false
}
