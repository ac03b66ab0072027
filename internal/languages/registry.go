package languages

import "github.com/callgraphtool/callgraphtool/internal/parser"

// NewDefaultRegistry creates a registry with every language that has a grammar
func NewDefaultRegistry() *parser.Registry {
	r := parser.NewRegistry()

	r.Register(NewGoParser())
	r.Register(NewPythonParser())
	r.Register(NewRubyParser())
	r.Register(NewRustParser())
	r.Register(NewJavaScriptParser())

	return r
}
