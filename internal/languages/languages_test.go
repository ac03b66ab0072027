package languages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callgraphtool/callgraphtool/internal/ignore"
	"github.com/callgraphtool/callgraphtool/internal/parser"
)

func names(defs []parser.Definition) []string {
	out := make([]string, 0, len(defs))
	for _, def := range defs {
		if def.Owner != "" {
			out = append(out, def.Owner+"."+def.Name)
			continue
		}
		out = append(out, def.Name)
	}
	return out
}

func TestGoDefinitions(t *testing.T) {
	defs, err := NewGoParser().Definitions("main.go", []byte(`package main

func main() {
	run()
}

type Server struct{}

func (s *Server) Run() {}

func (l List[T]) Len() int { return 0 }
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "Server.Run", "List.Len"}, names(defs))
	assert.Equal(t, 3, defs[0].Line)
	assert.Equal(t, parser.DefinitionMethod, defs[1].Kind)
}

func TestPythonDefinitions(t *testing.T) {
	defs, err := NewPythonParser().Definitions("app.py", []byte(`import os

def main():
    def inner():
        pass
    inner()

class Worker:
    @staticmethod
    def run():
        pass
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "inner", "Worker.run"}, names(defs))
	assert.Equal(t, 3, defs[0].Line)
}

func TestRubyDefinitions(t *testing.T) {
	defs, err := NewRubyParser().Definitions("app.rb", []byte(`module Billing
  class Invoice
    def total
    end

    def self.build
    end
  end
end

def helper
end
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Billing::Invoice.total", "Billing::Invoice.build", "helper"}, names(defs))
}

func TestRustDefinitions(t *testing.T) {
	defs, err := NewRustParser().Definitions("lib.rs", []byte(`pub fn main() {
    fn local() {}
}

struct Cache<T> { items: Vec<T> }

impl<T> Cache<T> {
    pub async fn get(&self) {}
}

trait Store {
    fn put(&self) {}
}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "local", "Cache.get", "Store.put"}, names(defs))
}

func TestJavaScriptDefinitions(t *testing.T) {
	defs, err := NewJavaScriptParser().Definitions("app.js", []byte(`function main() {}

const handler = (req) => req;
let legacy = function () {};
const value = 3;

class Router {
  route() {}
}

export function exported() {}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "handler", "legacy", "Router.route", "exported"}, names(defs))
}

func TestDefaultRegistryFindsDuplicates(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "a/util.py", "def helper():\n    pass\n")
	writeSource(t, root, "b/util.py", "class X:\n    def helper(self):\n        pass\n")
	writeSource(t, root, "c/other.py", "def unrelated():\n    pass\n")
	writeSource(t, root, "d/util.go", "package d\n\nfunc helper() {}\n")

	result, err := NewDefaultRegistry().FindDefinitions(root, "py", "helper", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/util.py", "b/util.py"}, result.Files())
}

func TestTableLookups(t *testing.T) {
	assert.Equal(t, "//", CommentMarker("rust"))
	assert.Equal(t, "--", CommentMarker("lua"))
	assert.Equal(t, "#", CommentMarker("unknown"))
	assert.Equal(t, ".py", SourceExtension("py"))
	assert.Equal(t, ".f90", SourceExtension("fortran"))
	assert.Equal(t, ".zz", SourceExtension("zz"))

	code, ok := ForExtension(".PM")
	require.True(t, ok)
	assert.Equal(t, "pl", code)

	_, ok = Lookup("cobol")
	assert.False(t, ok)
	assert.Contains(t, Codes(), "tcl")
}

func TestInferPicksMostFrequent(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "a.py", "")
	writeSource(t, root, "pkg/b.py", "")
	writeSource(t, root, "c.go", "")
	writeSource(t, root, "node_modules/x.js", "")
	writeSource(t, root, "node_modules/y.js", "")
	writeSource(t, root, "node_modules/z.js", "")
	writeSource(t, root, "README.md", "")

	result := Infer(root, nil)
	assert.Equal(t, "py", result.Code)
	assert.Equal(t, map[string]int{"py": 2, "go": 1}, result.Counts)
	assert.False(t, result.Ambiguous())
}

func TestInferTieYieldsNothing(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "a.py", "")
	writeSource(t, root, "b.rb", "")

	result := Infer(root, nil)
	assert.Empty(t, result.Code)
	assert.True(t, result.Ambiguous())
}

func TestInferHonorsMatcher(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "a.py", "")
	writeSource(t, root, "gen/a.rs", "")
	writeSource(t, root, "gen/b.rs", "")

	result := Infer(root, ignore.NewMatcher([]string{"gen/"}))
	assert.Equal(t, "py", result.Code)

	empty := Infer(t.TempDir(), nil)
	assert.Empty(t, empty.Code)
	assert.False(t, empty.Ambiguous())
}

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFixtureDefinitions(t *testing.T) {
	registry := NewDefaultRegistry()
	fixtures := filepath.Join("..", "..", "fixtures")

	goDefs, err := registry.FindDefinitions(filepath.Join(fixtures, "go"), "go", "Run", nil)
	require.NoError(t, err)
	require.Len(t, goDefs.Definitions, 1, "interface method specs are not definitions")
	assert.Equal(t, "Worker", goDefs.Definitions[0].Owner)

	push, err := registry.FindDefinitions(filepath.Join(fixtures, "go"), "go", "Push", nil)
	require.NoError(t, err)
	require.Len(t, push.Definitions, 1)
	assert.Equal(t, "Queue", push.Definitions[0].Owner)

	pyDefs, err := registry.FindDefinitions(filepath.Join(fixtures, "py"), "py", "run", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py", "lib/util.py"}, pyDefs.Files())

	rustDefs, err := registry.FindDefinitions(filepath.Join(fixtures, "rust"), "rust", "run", nil)
	require.NoError(t, err)
	require.Len(t, rustDefs.Definitions, 2)
	assert.Equal(t, "Parser", rustDefs.Definitions[0].Owner)
	assert.Empty(t, rustDefs.Definitions[1].Owner)
}
