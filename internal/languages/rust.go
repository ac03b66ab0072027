package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/callgraphtool/callgraphtool/internal/parser"
)

// RustParser finds fn items, including those inside impl and trait blocks
type RustParser struct {
	parser *sitter.Parser
}

// NewRustParser creates a new Rust parser
func NewRustParser() *RustParser {
	p := sitter.NewParser()
	p.SetLanguage(rust.GetLanguage())
	return &RustParser{parser: p}
}

func (r *RustParser) Language() string {
	return "rust"
}

func (r *RustParser) Extensions() []string {
	return []string{".rs"}
}

func (r *RustParser) Definitions(filename string, content []byte) ([]parser.Definition, error) {
	tree, err := parseSource(r.parser, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	defs := make([]parser.Definition, 0)
	r.extractDefinitions(tree.RootNode(), content, &defs, "")
	return defs, nil
}

func (r *RustParser) extractDefinitions(node *sitter.Node, content []byte, defs *[]parser.Definition, owner string) {
	switch node.Type() {
	case "function_item":
		if name := fieldContent(node, "name", content); name != "" {
			*defs = append(*defs, definitionAt(node, name, owner))
		}
		// Functions nested in a body are free functions.
		if body := node.ChildByFieldName("body"); body != nil {
			r.extractDefinitions(body, content, defs, "")
		}
		return

	case "impl_item":
		owner := ""
		if typeNode := firstOfType(node.ChildByFieldName("type"), "type_identifier"); typeNode != nil {
			owner = typeNode.Content(content)
		}
		if body := node.ChildByFieldName("body"); body != nil {
			r.extractDefinitions(body, content, defs, owner)
		}
		return

	case "trait_item":
		if body := node.ChildByFieldName("body"); body != nil {
			r.extractDefinitions(body, content, defs, fieldContent(node, "name", content))
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		r.extractDefinitions(node.Child(i), content, defs, owner)
	}
}
