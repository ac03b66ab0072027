package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/callgraphtool/callgraphtool/internal/parser"
)

// RubyParser finds method definitions in Ruby source files
type RubyParser struct {
	parser *sitter.Parser
}

// NewRubyParser creates a new Ruby parser
func NewRubyParser() *RubyParser {
	p := sitter.NewParser()
	p.SetLanguage(ruby.GetLanguage())
	return &RubyParser{parser: p}
}

func (r *RubyParser) Language() string {
	return "ruby"
}

func (r *RubyParser) Extensions() []string {
	return []string{".rb"}
}

func (r *RubyParser) Definitions(filename string, content []byte) ([]parser.Definition, error) {
	tree, err := parseSource(r.parser, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	defs := make([]parser.Definition, 0)
	r.extractDefinitions(tree.RootNode(), content, &defs, "")
	return defs, nil
}

func (r *RubyParser) extractDefinitions(node *sitter.Node, content []byte, defs *[]parser.Definition, owner string) {
	switch node.Type() {
	case "method", "singleton_method":
		if name := fieldContent(node, "name", content); name != "" {
			*defs = append(*defs, definitionAt(node, name, owner))
		}
		return

	case "class", "module":
		name := fieldContent(node, "name", content)
		if owner != "" && name != "" {
			name = owner + "::" + name
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			r.extractDefinitions(node.Child(i), content, defs, name)
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		r.extractDefinitions(node.Child(i), content, defs, owner)
	}
}
